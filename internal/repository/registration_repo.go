package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/models"
)

// RegisteredActivityRow is an activity joined with its registration time.
type RegisteredActivityRow struct {
	ID           string
	Code         *string
	Title        string
	Type         string
	Unit         string
	ActivityDate *time.Time
	Location     string
	Status       string
	Description  string
	RegisteredAt time.Time
}

// AdminRegistrationRow is one row of the admin registrations report.
type AdminRegistrationRow struct {
	ID            uint
	RegisteredAt  time.Time
	UserID        uint
	UserName      string
	ActivityID    string
	ActivityTitle string
}

// RegistrationRepository maintains the user/activity many-to-many relation.
type RegistrationRepository interface {
	ActivityExists(ctx context.Context, activityID string) (bool, error)
	// Create inserts the registration row; a duplicate (user, activity) pair
	// surfaces as gorm.ErrDuplicatedKey via the composite unique index.
	Create(ctx context.Context, registration *models.Registration) error
	Delete(ctx context.Context, userID uint, activityID string) error
	ListForUser(ctx context.Context, userID uint) ([]RegisteredActivityRow, error)
	ListAll(ctx context.Context) ([]AdminRegistrationRow, error)
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository constructs the registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) ActivityExists(ctx context.Context, activityID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).
		Where("id = ?", activityID).Count(&count).Error
	return count > 0, err
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) Delete(ctx context.Context, userID uint, activityID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Delete(&models.Registration{}).Error
}

func (r *registrationRepository) ListForUser(ctx context.Context, userID uint) ([]RegisteredActivityRow, error) {
	var rows []RegisteredActivityRow
	err := r.db.WithContext(ctx).
		Table("registrations r").
		Select("a.id, a.code, a.title, a.type, a.unit, a.activity_date, a.location, a.status, a.description, r.registered_at").
		Joins("JOIN activities a ON a.id = r.activity_id").
		Where("r.user_id = ?", userID).
		Order("r.registered_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]AdminRegistrationRow, error) {
	var rows []AdminRegistrationRow
	err := r.db.WithContext(ctx).
		Table("registrations r").
		Select("r.id, r.registered_at, u.id AS user_id, u.full_name AS user_name, a.id AS activity_id, a.title AS activity_title").
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN activities a ON a.id = r.activity_id").
		Order("r.registered_at DESC").
		Scan(&rows).Error
	return rows, err
}
