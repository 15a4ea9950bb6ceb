package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// ErrInvalidRole is returned when a role outside {user, secretary, admin}
// is requested.
var ErrInvalidRole = errors.New("invalid role")

// AdminUserService exposes the admin-only account management surface.
// Secretaries have no access here; role checks happen at the router.
type AdminUserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.AdminUserCreateRequest) (dto.UserResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.AdminUserUpdateRequest) (dto.UserResponse, error)
	UpdateRole(ctx context.Context, actor Actor, id uint, role string) (dto.UserResponse, error)
	SetLock(ctx context.Context, actor Actor, id uint, locked bool) (dto.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type adminUserService struct {
	repo      repository.UserRepository
	audit     AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(repo repository.UserRepository, audit AuditRecorder, validate *validator.Validate, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		repo:      repo,
		audit:     audit,
		validator: validate,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

func (s *adminUserService) Create(ctx context.Context, actor Actor, payload dto.AdminUserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	studentID := strings.TrimSpace(payload.StudentID)

	if taken, err := s.repo.EmailTaken(ctx, email, 0); err != nil {
		return dto.UserResponse{}, err
	} else if taken {
		return dto.UserResponse{}, ErrEmailTaken
	}

	if taken, err := s.repo.StudentIDTaken(ctx, studentID, 0); err != nil {
		return dto.UserResponse{}, err
	} else if taken {
		return dto.UserResponse{}, ErrStudentIDTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		FullName:     strings.TrimSpace(payload.FullName),
		StudentID:    studentID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrEmailTaken
		}
		return dto.UserResponse{}, err
	}

	s.recordUserAudit(ctx, actor, "create", user.ID, map[string]interface{}{"role": user.Role})

	return toUserResponse(user), nil
}

func (s *adminUserService) Update(ctx context.Context, actor Actor, id uint, payload dto.AdminUserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	studentID := strings.TrimSpace(payload.StudentID)

	if taken, err := s.repo.EmailTaken(ctx, email, id); err != nil {
		return dto.UserResponse{}, err
	} else if taken {
		return dto.UserResponse{}, ErrEmailTaken
	}

	if taken, err := s.repo.StudentIDTaken(ctx, studentID, id); err != nil {
		return dto.UserResponse{}, err
	} else if taken {
		return dto.UserResponse{}, ErrStudentIDTaken
	}

	user.FullName = strings.TrimSpace(payload.FullName)
	user.StudentID = studentID
	user.Email = email
	user.Role = payload.Role

	if err := s.repo.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.recordUserAudit(ctx, actor, "update", user.ID, map[string]interface{}{"role": user.Role})

	return toUserResponse(user), nil
}

func (s *adminUserService) UpdateRole(ctx context.Context, actor Actor, id uint, role string) (dto.UserResponse, error) {
	if !models.ValidRole(role) {
		return dto.UserResponse{}, ErrInvalidRole
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.recordUserAudit(ctx, actor, "update_role", id, map[string]interface{}{"role": role})

	return toUserResponse(user), nil
}

func (s *adminUserService) SetLock(ctx context.Context, actor Actor, id uint, locked bool) (dto.UserResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if err := s.repo.SetLocked(ctx, id, locked); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.recordUserAudit(ctx, actor, "set_lock", id, map[string]interface{}{"locked": locked})

	return toUserResponse(user), nil
}

func (s *adminUserService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordUserAudit(ctx, actor, "delete", id, nil)

	return nil
}

func (s *adminUserService) recordUserAudit(ctx context.Context, actor Actor, action string, userID uint, metadata map[string]interface{}) {
	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     action,
		EntityType: "user",
		EntityID:   strconv.FormatUint(uint64(userID), 10),
		Metadata:   metadata,
	})
}
