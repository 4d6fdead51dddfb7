package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
	"github.com/skhan-ssq/studianclass-dashboard/internal/utils"
)

// AdminHandler exposes operational endpoints.
type AdminHandler struct {
	service service.RefreshService
	logger  zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(svc service.RefreshService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin routes to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/refresh", h.refresh)
}

func (h *AdminHandler) refresh(c *fiber.Ctx) error {
	result, err := h.service.Refresh(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("snapshot refresh failed")
		return utils.SendError(c, fiber.StatusBadGateway, "snapshot refresh failed")
	}

	return utils.SendSuccess(c, "snapshot refreshed", result)
}
