package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// Activity service errors mapped to HTTP statuses by the handlers.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidDate      = errors.New("invalid activity date")
)

// ActivityService exposes the public catalogue and the admin CRUD surface.
// Every read path backfills missing codes before returning.
type ActivityService interface {
	List(ctx context.Context, filter dto.ActivityFilter) ([]dto.ActivityResponse, error)
	Get(ctx context.Context, id string) (dto.ActivityResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.ActivityUpsertRequest) (dto.ActivityResponse, error)
	Update(ctx context.Context, actor Actor, id string, payload dto.ActivityUpsertRequest) (dto.ActivityResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type activityService struct {
	repo      repository.ActivityRepository
	allocator CodeAllocator
	audit     AuditRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewActivityService constructs the activity service.
func NewActivityService(
	repo repository.ActivityRepository,
	allocator CodeAllocator,
	audit AuditRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) ActivityService {
	return &activityService{
		repo:      repo,
		allocator: allocator,
		audit:     audit,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "activity_service").Logger(),
		now:       time.Now,
	}
}

func (s *activityService) List(ctx context.Context, filter dto.ActivityFilter) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.allocator.Backfill(ctx, activities)

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, toActivityResponse(activity))
	}
	return responses, nil
}

func (s *activityService) Get(ctx context.Context, id string) (dto.ActivityResponse, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	if activity.Code == nil {
		code, allocErr := s.allocator.Allocate(ctx, activity.ID)
		if allocErr != nil {
			s.logger.Warn().Err(allocErr).Str("activity_id", activity.ID).
				Msg("failed to backfill activity code")
		} else {
			activity.Code = &code
		}
	}

	return toActivityResponse(activity), nil
}

func (s *activityService) Create(ctx context.Context, actor Actor, payload dto.ActivityUpsertRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activityDate, err := parseActivityDate(payload.ActivityDate)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		ID:           s.newActivityID(),
		Title:        strings.TrimSpace(payload.Title),
		Type:         strings.TrimSpace(payload.Type),
		Unit:         strings.TrimSpace(payload.Unit),
		ActivityDate: activityDate,
		Location:     strings.TrimSpace(payload.Location),
		Status:       models.NormalizeStatus(payload.Status),
		Description:  s.sanitizer.Sanitize(payload.Description),
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	code, err := s.allocator.Allocate(ctx, activity.ID)
	if err != nil {
		// A failed create must leave no row behind: the codeless activity is
		// removed before the allocation error surfaces to the caller.
		if cleanupErr := s.repo.DeleteWithRegistrations(ctx, activity.ID); cleanupErr != nil {
			s.logger.Error().Err(cleanupErr).Str("activity_id", activity.ID).
				Msg("failed to remove activity after code allocation failure")
		}
		return dto.ActivityResponse{}, err
	}
	activity.Code = &code

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     "create",
		EntityType: "activity",
		EntityID:   activity.ID,
		Metadata:   map[string]interface{}{"title": activity.Title, "code": code},
	})

	return toActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, actor Actor, id string, payload dto.ActivityUpsertRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activityDate, err := parseActivityDate(payload.ActivityDate)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	activity.Title = strings.TrimSpace(payload.Title)
	activity.Type = strings.TrimSpace(payload.Type)
	activity.Unit = strings.TrimSpace(payload.Unit)
	activity.ActivityDate = activityDate
	activity.Location = strings.TrimSpace(payload.Location)
	activity.Status = models.NormalizeStatus(payload.Status)
	activity.Description = s.sanitizer.Sanitize(payload.Description)

	if err := s.repo.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     "update",
		EntityType: "activity",
		EntityID:   activity.ID,
		Metadata:   map[string]interface{}{"title": activity.Title},
	})

	return toActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	// Dependent registrations are removed in the same transaction so no
	// dangling references survive an activity delete.
	if err := s.repo.DeleteWithRegistrations(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     "delete",
		EntityType: "activity",
		EntityID:   id,
	})

	return nil
}

// newActivityID builds the externally visible identifier: the "hd" prefix
// followed by the last 12 digits of the current unix-millis timestamp.
func (s *activityService) newActivityID() string {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(millis) > 12 {
		millis = millis[len(millis)-12:]
	}
	return "hd" + millis
}

func parseActivityDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}
	return nil, ErrInvalidDate
}

func toActivityResponse(activity models.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:           activity.ID,
		Code:         activity.Code,
		Title:        activity.Title,
		Type:         activity.Type,
		Unit:         activity.Unit,
		ActivityDate: activity.ActivityDate,
		Location:     activity.Location,
		Status:       activity.Status,
		Description:  activity.Description,
	}
}
