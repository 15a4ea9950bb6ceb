package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
)

// NewsRepository reads published articles for the public listing.
type NewsRepository interface {
	List(ctx context.Context, filter dto.NewsFilter) ([]models.News, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository constructs the news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) List(ctx context.Context, filter dto.NewsFilter) ([]models.News, error) {
	query := r.db.WithContext(ctx).Model(&models.News{})

	if filter.Group != "" {
		query = query.Where("group_name = ?", filter.Group)
	}
	if filter.Query != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}

	var news []models.News
	err := query.Order("publish_date DESC").Find(&news).Error
	return news, err
}
