package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// Actor identifies the authenticated staff member performing a mutation.
type Actor struct {
	ID   uint
	Role string
}

// AuditEntry captures the details required to persist an audit record.
type AuditEntry struct {
	Actor      Actor
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]interface{}
}

// AuditRecorder records admin mutations. Recording is best effort: failures
// are logged and never block the mutation that triggered them.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService records admin mutations and serves the recent trail back to
// administrators, newest first.
type AuditService interface {
	AuditRecorder
	ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	action := strings.ToLower(strings.TrimSpace(entry.Action))
	entityType := strings.ToLower(strings.TrimSpace(entry.EntityType))
	if action == "" || entityType == "" {
		s.logger.Warn().Msg("audit entry missing action or entity type, dropped")
		return
	}

	model := models.AuditLog{
		ActorID:    entry.Actor.ID,
		ActorRole:  strings.ToLower(strings.TrimSpace(entry.Actor.Role)),
		Action:     action,
		EntityType: entityType,
		EntityID:   entry.EntityID,
		Metadata:   entry.Metadata,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Msg("failed to persist audit entry")
	}
}

const (
	defaultAuditListLimit = 50
	maxAuditListLimit     = 200
)

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultAuditListLimit
	case limit > maxAuditListLimit:
		limit = maxAuditListLimit
	}

	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.AuditLogResponse{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			ActorRole:  entry.ActorRole,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Metadata:   entry.Metadata,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return responses, nil
}
