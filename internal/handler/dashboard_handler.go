package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
	"github.com/skhan-ssq/studianclass-dashboard/internal/utils"
)

// DashboardHandler exposes the whole-cohort overview endpoints.
type DashboardHandler struct {
	service         service.DashboardService
	defaultMinCerts int
	logger          zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc service.DashboardService, defaultMinCerts int, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:         svc,
		defaultMinCerts: defaultMinCerts,
		logger:          logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard routes to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("/weekly-certs", h.weeklyCerts)
	router.Get("/weekly-progress", h.weeklyProgress)
}

func (h *DashboardHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard summary")
	}

	return utils.SendSuccess(c, "dashboard summary", summary)
}

func (h *DashboardHandler) weeklyCerts(c *fiber.Ctx) error {
	minCerts, err := parseQueryInt(c, "min_certs")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "min_certs must be a number")
	}
	if minCerts <= 0 {
		minCerts = h.defaultMinCerts
	}

	return utils.SendSuccess(c, "weekly certification counts", h.service.WeeklyCerts(c.Context(), minCerts))
}

func (h *DashboardHandler) weeklyProgress(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "weekly progress improvement counts", h.service.WeeklyProgress(c.Context()))
}
