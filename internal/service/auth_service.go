package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// Auth service errors mapped to HTTP statuses by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrEmailTaken         = errors.New("email already exists")
	ErrStudentIDTaken     = errors.New("student id already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

const bcryptCost = 10

// TokenConfig carries the signing secret and the per-audience lifetimes.
type TokenConfig struct {
	Secret   string
	UserTTL  time.Duration
	AdminTTL time.Duration
}

// AuthService handles account registration, login and password changes.
// Logins accept either the email or the student id as identity.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, identity, password string) (dto.LoginResponse, error)
	// AdminLogin authenticates staff only (admin or secretary) and issues a
	// shorter-lived token.
	AdminLogin(ctx context.Context, identity, password string) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error
}

type authService struct {
	repo      repository.UserRepository
	tokens    TokenConfig
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.UserRepository, tokens TokenConfig, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
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
		Role:         models.RoleUser,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		// Concurrent registration with the same email or student id: the
		// unique index wins the race; report the conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrEmailTaken
		}
		return dto.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, identity, password string) (dto.LoginResponse, error) {
	user, err := s.repo.FindByIdentity(ctx, strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	return s.issueLogin(user, password, s.tokens.UserTTL)
}

func (s *authService) AdminLogin(ctx context.Context, identity, password string) (dto.LoginResponse, error) {
	user, err := s.repo.FindStaffByIdentity(ctx, strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	return s.issueLogin(user, password, s.tokens.AdminTTL)
}

func (s *authService) issueLogin(user models.User, password string, ttl time.Duration) (dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if user.Locked {
		return dto.LoginResponse{}, ErrAccountLocked
	}

	token, err := s.signToken(user, ttl)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) signToken(user models.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.tokens.Secret))
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		StudentID: user.StudentID,
		Email:     user.Email,
		Role:      user.Role,
		Locked:    user.Locked,
	}
}
