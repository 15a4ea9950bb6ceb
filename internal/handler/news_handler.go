package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// NewsHandler exposes the public news listing.
type NewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewNewsHandler constructs the news handler.
func NewNewsHandler(service service.NewsService, logger zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger.With().Str("component", "news_handler").Logger(),
	}
}

// Register wires the public news routes.
func (h *NewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *NewsHandler) list(c *fiber.Ctx) error {
	filter := dto.NewsFilter{
		Group: c.Query("group"),
		Query: c.Query("q"),
	}

	response, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	if response.CacheHit {
		c.Set("X-Cache-Hit", "true")
	}

	return utils.SendSuccess(c, "news retrieved", response)
}
