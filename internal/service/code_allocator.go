package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/observability"
	"github.com/youthunion/union-go-api/internal/repository"
)

// ErrCodeSpaceExhausted is returned when no free activity code could be
// claimed within the attempt budget.
var ErrCodeSpaceExhausted = errors.New("activity code space exhausted")

const codeAllocationAttempts = 1000

// CodeAllocator assigns each activity a unique three-digit display code.
// Codes are drawn from a shuffled 0-9 pool, so every code has three distinct
// digits (720 reachable values).
type CodeAllocator interface {
	// Allocate claims a free code for the given activity. If the activity
	// already carries a code the persisted value is returned unchanged, so
	// repeated reads observe a stable code.
	Allocate(ctx context.Context, activityID string) (string, error)
	// Backfill assigns codes to every codeless activity in the slice,
	// mutating the slice in place. Individual allocation failures are logged
	// and skipped so read paths still return data.
	Backfill(ctx context.Context, activities []models.Activity)
}

type codeAllocator struct {
	repo       repository.ActivityRepository
	logger     zerolog.Logger
	randomCode func() string
}

// NewCodeAllocator constructs the code allocator.
func NewCodeAllocator(repo repository.ActivityRepository, logger zerolog.Logger) CodeAllocator {
	return &codeAllocator{
		repo:       repo,
		logger:     logger.With().Str("component", "code_allocator").Logger(),
		randomCode: randomCode,
	}
}

func (a *codeAllocator) Allocate(ctx context.Context, activityID string) (string, error) {
	for attempt := 0; attempt < codeAllocationAttempts; attempt++ {
		code := a.randomCode()

		claimed, err := a.repo.ClaimCode(ctx, activityID, code)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Unique index rejected the claim: the code belongs to
				// another activity. Redraw.
				observability.CodeClaims().WithLabelValues("collision").Inc()
				continue
			}
			return "", err
		}
		if claimed {
			observability.CodeClaims().WithLabelValues("claimed").Inc()
			return code, nil
		}

		// Zero rows updated: either the activity is gone or a concurrent
		// writer filled the code first. Return whatever is persisted.
		activity, err := a.repo.FindByID(ctx, activityID)
		if err != nil {
			return "", err
		}
		if activity.Code != nil {
			return *activity.Code, nil
		}
	}

	observability.CodeClaims().WithLabelValues("exhausted").Inc()
	return "", ErrCodeSpaceExhausted
}

func (a *codeAllocator) Backfill(ctx context.Context, activities []models.Activity) {
	for i := range activities {
		if activities[i].Code != nil {
			continue
		}

		code, err := a.Allocate(ctx, activities[i].ID)
		if err != nil {
			a.logger.Warn().Err(err).
				Str("activity_id", activities[i].ID).
				Msg("failed to backfill activity code")
			continue
		}
		activities[i].Code = &code
	}
}

func randomCode() string {
	digits := []byte("0123456789")
	rand.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})
	return string(digits[:3])
}
