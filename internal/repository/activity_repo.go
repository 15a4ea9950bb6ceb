package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
)

// ActivityRepository persists activities and owns the conditional code claim.
type ActivityRepository interface {
	List(ctx context.Context, filter dto.ActivityFilter) ([]models.Activity, error)
	FindByID(ctx context.Context, id string) (models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	// DeleteWithRegistrations removes the activity and its dependent
	// registrations in one transaction.
	DeleteWithRegistrations(ctx context.Context, id string) error
	// ClaimCode atomically fills the code of a codeless activity. It reports
	// false with no error when the activity already carries a code; a unique
	// index collision surfaces as gorm.ErrDuplicatedKey.
	ClaimCode(ctx context.Context, id, code string) (bool, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

const allFilterLiteral = "tất cả"

func (r *activityRepository) List(ctx context.Context, filter dto.ActivityFilter) ([]models.Activity, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{})

	if filter.Type != "" && strings.ToLower(filter.Type) != allFilterLiteral {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Unit != "" && strings.ToLower(filter.Unit) != allFilterLiteral {
		query = query.Where("unit = ?", filter.Unit)
	}
	if filter.Query != "" {
		keyword := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(type) LIKE ? OR LOWER(unit) LIKE ? OR LOWER(location) LIKE ?",
			keyword, keyword, keyword, keyword,
		)
	}

	var activities []models.Activity
	err := query.Order("activity_date DESC").Find(&activities).Error
	return activities, err
}

func (r *activityRepository) FindByID(ctx context.Context, id string) (models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error
	return activity, err
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) DeleteWithRegistrations(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Activity{}).Error
	})
}

func (r *activityRepository) ClaimCode(ctx context.Context, id, code string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Activity{}).
		Where("id = ? AND code IS NULL", id).
		Update("code", code)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
