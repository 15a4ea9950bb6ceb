package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/observability"
	"github.com/youthunion/union-go-api/internal/repository"
)

const (
	seriesDays         = 30
	activeMemberWindow = 90 * 24 * time.Hour
	activeMemberFloor  = 3
	topActivityLimit   = 5
	dateLayout         = "2006-01-02"
)

// SnapshotResult distinguishes real zeros from failure zeros: Degraded is
// set when the whole aggregation failed and the zero payload was
// substituted, with Cause holding the underlying error.
type SnapshotResult struct {
	Snapshot dto.DashboardSnapshot
	Degraded bool
	Cause    error
}

// DashboardService recomputes the dashboard snapshot on every call. Nothing
// is cached or persisted; staleness is bounded only by request latency. The
// returned snapshot is always structurally complete, dense series included,
// no matter what fails underneath.
type DashboardService interface {
	Snapshot(ctx context.Context) SnapshotResult
}

type dashboardService struct {
	repo   repository.DashboardRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(repo repository.DashboardRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger.With().Str("component", "dashboard_service").Logger(),
		now:    time.Now,
	}
}

func (s *dashboardService) Snapshot(ctx context.Context) SnapshotResult {
	tracer := otel.Tracer("github.com/youthunion/union-go-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.aggregate")
	defer span.End()

	now := s.now()

	// The three core counts decide between a live and a degraded snapshot:
	// if the store cannot answer these, nothing else will work either.
	totalUsers, err := s.repo.CountUsers(ctx)
	if err == nil {
		var activitiesErr error
		var registrationsErr error
		var totalActivities, totalRegistrations int64

		totalActivities, activitiesErr = s.repo.CountActivities(ctx)
		if activitiesErr == nil {
			totalRegistrations, registrationsErr = s.repo.CountRegistrations(ctx)
		}

		switch {
		case activitiesErr != nil:
			err = activitiesErr
		case registrationsErr != nil:
			err = registrationsErr
		default:
			snapshot := s.buildSnapshot(ctx, now, totalUsers, totalActivities, totalRegistrations)
			span.SetAttributes(
				attribute.Int64("dashboard.total_users", totalUsers),
				attribute.Int64("dashboard.total_registrations", totalRegistrations),
			)
			return SnapshotResult{Snapshot: snapshot}
		}
	}

	s.logger.Error().Err(err).Msg("dashboard aggregation failed, serving zero snapshot")
	span.RecordError(err)
	span.SetStatus(codes.Error, "dashboard_aggregation_failed")
	observability.DashboardDegraded().Inc()

	return SnapshotResult{
		Snapshot: s.zeroSnapshot(now, err),
		Degraded: true,
		Cause:    err,
	}
}

func (s *dashboardService) buildSnapshot(ctx context.Context, now time.Time, totalUsers, totalActivities, totalRegistrations int64) dto.DashboardSnapshot {
	snapshot := dto.DashboardSnapshot{
		TotalUsers:         totalUsers,
		TotalActivities:    totalActivities,
		TotalRegistrations: totalRegistrations,
	}

	// Every remaining metric is individually fault-isolated: a failed query
	// degrades that metric to zero/empty instead of failing the snapshot.
	snapshot.ActivitiesWithRegistrations = s.count(ctx, "activities_with_registrations", s.repo.CountActivitiesWithRegistrations)
	snapshot.TotalNews = s.count(ctx, "total_news", s.repo.CountNews)

	if rows, err := s.repo.CountActivitiesByStatus(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("status bucket query failed, defaulting to zero")
	} else {
		for _, row := range rows {
			switch row.Status {
			case models.StatusOpen:
				snapshot.OpenActivities = row.Count
			case models.StatusOngoing:
				snapshot.OngoingActivities = row.Count
			case models.StatusFinished:
				snapshot.FinishedActivities = row.Count
			}
		}
	}

	recent, err := s.repo.ListRegistrationsSince(ctx, now.Add(-activeMemberWindow))
	if err != nil {
		s.logger.Warn().Err(err).Msg("recent registrations query failed, defaulting to zero")
		recent = nil
	}
	snapshot.ActiveMembers = countActiveMembers(recent)

	series := buildDailySeries(now, recent)
	snapshot.RegistrationsSeries30 = series
	snapshot.RegistrationsSeries14 = series[seriesDays-14:]
	snapshot.RegistrationsSeries7 = series[seriesDays-7:]

	if tops, err := s.repo.TopActivities(ctx, topActivityLimit); err != nil {
		s.logger.Warn().Err(err).Msg("top activities query failed, defaulting to empty")
		snapshot.TopActivities = []dto.TopActivity{}
	} else {
		snapshot.TopActivities = make([]dto.TopActivity, 0, len(tops))
		for _, top := range tops {
			snapshot.TopActivities = append(snapshot.TopActivities, dto.TopActivity{
				ID:           top.ID,
				Title:        top.Title,
				Participants: top.Participants,
			})
		}
	}

	snapshot.UniqueRegisteredUsers = s.count(ctx, "unique_registered_users", s.repo.CountDistinctRegisteredUsers)
	if totalUsers > 0 {
		rate := float64(snapshot.UniqueRegisteredUsers) / float64(totalUsers) * 100
		snapshot.ParticipationRate = math.Round(rate*100) / 100
	}

	return snapshot
}

func (s *dashboardService) count(ctx context.Context, metric string, query func(context.Context) (int64, error)) int64 {
	value, err := query(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("metric", metric).Msg("dashboard metric query failed, defaulting to zero")
		return 0
	}
	return value
}

// zeroSnapshot is the always-render fallback: all metrics zero, the series
// still dense, and the cause embedded for the UI to surface.
func (s *dashboardService) zeroSnapshot(now time.Time, cause error) dto.DashboardSnapshot {
	series := buildDailySeries(now, nil)
	snapshot := dto.DashboardSnapshot{
		RegistrationsSeries30: series,
		RegistrationsSeries14: series[seriesDays-14:],
		RegistrationsSeries7:  series[seriesDays-7:],
		TopActivities:         []dto.TopActivity{},
	}
	if cause != nil {
		snapshot.DBError = cause.Error()
	}
	return snapshot
}

// buildDailySeries produces exactly seriesDays consecutive daily entries
// ending today. Days without registrations appear as explicit zeros; the
// series is always dense, never sparse. Timestamps are bucketed in now's
// location so UTC-stored rows land in the same day as the series keys.
func buildDailySeries(now time.Time, registrations []models.Registration) []dto.SeriesPoint {
	counts := make(map[string]int64, len(registrations))
	for _, registration := range registrations {
		counts[registration.RegisteredAt.In(now.Location()).Format(dateLayout)]++
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	series := make([]dto.SeriesPoint, 0, seriesDays)
	for offset := seriesDays - 1; offset >= 0; offset-- {
		key := today.AddDate(0, 0, -offset).Format(dateLayout)
		series = append(series, dto.SeriesPoint{Date: key, Count: counts[key]})
	}
	return series
}

func countActiveMembers(registrations []models.Registration) int64 {
	perUser := make(map[uint]int, len(registrations))
	for _, registration := range registrations {
		perUser[registration.UserID]++
	}

	var active int64
	for _, count := range perUser {
		if count >= activeMemberFloor {
			active++
		}
	}
	return active
}
