package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/models"
)

// TopActivityRow is one entry of the ranked top-activities query.
type TopActivityRow struct {
	ID           string
	Title        string
	Participants int64
}

// StatusCountRow is one bucket of the status histogram.
type StatusCountRow struct {
	Status string
	Count  int64
}

// DashboardRepository supplies read-side data for the admin dashboard. It
// owns no state of its own; every call re-derives from the source tables.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActivities(ctx context.Context) (int64, error)
	CountRegistrations(ctx context.Context) (int64, error)
	CountActivitiesWithRegistrations(ctx context.Context) (int64, error)
	CountActivitiesByStatus(ctx context.Context) ([]StatusCountRow, error)
	CountNews(ctx context.Context) (int64, error)
	CountDistinctRegisteredUsers(ctx context.Context) (int64, error)
	ListRegistrationsSince(ctx context.Context, since time.Time) ([]models.Registration, error)
	TopActivities(ctx context.Context, limit int) ([]TopActivityRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository constructs the dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActivities(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountRegistrations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registration{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActivitiesWithRegistrations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Distinct("activity_id").Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActivitiesByStatus(ctx context.Context) ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.WithContext(ctx).Model(&models.Activity{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountNews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.News{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountDistinctRegisteredUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Distinct("user_id").Count(&count).Error
	return count, err
}

func (r *dashboardRepository) ListRegistrationsSince(ctx context.Context, since time.Time) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).
		Where("registered_at >= ?", since).
		Find(&registrations).Error
	return registrations, err
}

func (r *dashboardRepository) TopActivities(ctx context.Context, limit int) ([]TopActivityRow, error) {
	var rows []TopActivityRow
	err := r.db.WithContext(ctx).
		Table("activities a").
		Select("a.id, a.title, COUNT(r.id) AS participants").
		Joins("LEFT JOIN registrations r ON r.activity_id = a.id").
		Group("a.id, a.title").
		Order("participants DESC, a.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
