package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/repository"
)

// NewsService serves the public news listing. Listings are cached in Redis
// per filter combination; the cache is read-through with a TTL and tolerates
// a missing or unreachable Redis.
type NewsService interface {
	List(ctx context.Context, filter dto.NewsFilter) (dto.NewsListResponse, error)
}

type newsService struct {
	repo     repository.NewsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewNewsService constructs the news service.
func NewNewsService(repo repository.NewsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) NewsService {
	return &newsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) List(ctx context.Context, filter dto.NewsFilter) (dto.NewsListResponse, error) {
	cacheKey := newsCacheKey(filter)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.NewsListResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read news cache")
		}
	}

	news, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	response := dto.NewsListResponse{Items: make([]dto.NewsResponse, 0, len(news))}
	for _, article := range news {
		response.Items = append(response.Items, toNewsResponse(article))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store news cache")
			}
		}
	}

	return response, nil
}

func newsCacheKey(filter dto.NewsFilter) string {
	return fmt.Sprintf("news:list:%s:%s",
		strings.ToLower(strings.TrimSpace(filter.Group)),
		strings.ToLower(strings.TrimSpace(filter.Query)))
}

func toNewsResponse(article models.News) dto.NewsResponse {
	return dto.NewsResponse{
		ID:          article.ID,
		Title:       article.Title,
		Group:       article.GroupName,
		Excerpt:     article.Excerpt,
		Image:       article.ImageURL,
		PublishDate: article.PublishDate,
	}
}
