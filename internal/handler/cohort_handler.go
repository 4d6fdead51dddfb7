package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dto"
	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
	"github.com/skhan-ssq/studianclass-dashboard/internal/utils"
)

// CohortHandler exposes the course/room/period ranking endpoints.
type CohortHandler struct {
	service service.CohortService
	logger  zerolog.Logger
}

// NewCohortHandler constructs the handler.
func NewCohortHandler(svc service.CohortService, logger zerolog.Logger) *CohortHandler {
	return &CohortHandler{
		service: svc,
		logger:  logger.With().Str("component", "cohort_handler").Logger(),
	}
}

// Register attaches the cohort routes to the router group.
func (h *CohortHandler) Register(router fiber.Router) {
	router.Get("/courses", h.courses)
	router.Get("/rooms", h.rooms)
	router.Get("/certs", h.certRanking)
	router.Get("/progress", h.progressRanking)
	router.Get("/period/certs", h.periodCertRanking)
	router.Get("/period/progress", h.periodProgressRanking)
}

func (h *CohortHandler) courses(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "course titles", h.service.Courses(c.Context()))
}

func (h *CohortHandler) rooms(c *fiber.Ctx) error {
	course := c.Query("course")
	if course == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "course query parameter required")
	}

	return utils.SendSuccess(c, "rooms for course", h.service.Rooms(c.Context(), course))
}

func (h *CohortHandler) certRanking(c *fiber.Ctx) error {
	rows := h.service.CertRanking(c.Context(), c.Query("course"), c.Query("room"))
	return utils.SendSuccess(c, "certification ranking", rows)
}

func (h *CohortHandler) progressRanking(c *fiber.Ctx) error {
	rows := h.service.ProgressRanking(c.Context(), c.Query("course"), c.Query("room"))
	return utils.SendSuccess(c, "progress ranking", rows)
}

func (h *CohortHandler) periodCertRanking(c *fiber.Ctx) error {
	period := dto.PeriodQuery{Start: c.Query("start"), End: c.Query("end")}

	rows, err := h.service.PeriodCertRanking(c.Context(), period)
	if err != nil {
		return h.mapPeriodError(c, err)
	}

	return utils.SendSuccess(c, "period certification ranking", rows)
}

func (h *CohortHandler) periodProgressRanking(c *fiber.Ctx) error {
	period := dto.PeriodQuery{Start: c.Query("start"), End: c.Query("end")}

	rows, err := h.service.PeriodProgressRanking(c.Context(), period)
	if err != nil {
		return h.mapPeriodError(c, err)
	}

	return utils.SendSuccess(c, "period progress ranking", rows)
}

func (h *CohortHandler) mapPeriodError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidPeriod) {
		return utils.SendError(c, fiber.StatusBadRequest, "start and end must be valid dates with start not after end")
	}

	requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute period ranking")
	return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute period ranking")
}
