package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// RegistrationService maintains the user/activity relation with idempotent
// mutations: double registration and cancelling a missing registration both
// report success.
type RegistrationService interface {
	Register(ctx context.Context, userID uint, activityID string) error
	Unregister(ctx context.Context, userID uint, activityID string) error
	ListForUser(ctx context.Context, userID uint) ([]dto.RegisteredActivityResponse, error)
	ListAll(ctx context.Context) ([]dto.AdminRegistrationResponse, error)
}

type registrationService struct {
	repo   repository.RegistrationRepository
	logger zerolog.Logger
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo repository.RegistrationRepository, logger zerolog.Logger) RegistrationService {
	return &registrationService{
		repo:   repo,
		logger: logger.With().Str("component", "registration_service").Logger(),
	}
}

func (s *registrationService) Register(ctx context.Context, userID uint, activityID string) error {
	// Explicit existence check so an unknown activity yields a clean 404
	// instead of a foreign-key error.
	exists, err := s.repo.ActivityExists(ctx, activityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrActivityNotFound
	}

	registration := models.Registration{UserID: userID, ActivityID: activityID}
	if err := s.repo.Create(ctx, &registration); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Already registered. The unique index caught the race; the
			// caller sees success either way.
			return nil
		}
		return err
	}

	return nil
}

func (s *registrationService) Unregister(ctx context.Context, userID uint, activityID string) error {
	return s.repo.Delete(ctx, userID, activityID)
}

func (s *registrationService) ListForUser(ctx context.Context, userID uint) ([]dto.RegisteredActivityResponse, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RegisteredActivityResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.RegisteredActivityResponse{
			ActivityResponse: dto.ActivityResponse{
				ID:           row.ID,
				Code:         row.Code,
				Title:        row.Title,
				Type:         row.Type,
				Unit:         row.Unit,
				ActivityDate: row.ActivityDate,
				Location:     row.Location,
				Status:       row.Status,
				Description:  row.Description,
			},
			RegisteredAt: row.RegisteredAt,
		})
	}
	return responses, nil
}

func (s *registrationService) ListAll(ctx context.Context) ([]dto.AdminRegistrationResponse, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminRegistrationResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.AdminRegistrationResponse{
			ID:           row.ID,
			RegisteredAt: row.RegisteredAt,
			User:         dto.RegistrationRef{ID: row.UserID, FullName: row.UserName},
			Activity:     dto.RegistrationActivityRef{ID: row.ActivityID, Title: row.ActivityTitle},
		})
	}
	return responses, nil
}
