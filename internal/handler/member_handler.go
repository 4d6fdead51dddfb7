package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
	"github.com/skhan-ssq/studianclass-dashboard/internal/utils"
)

// MemberHandler exposes the individual-lookup endpoints.
type MemberHandler struct {
	service service.MemberService
	logger  zerolog.Logger
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(svc service.MemberService, logger zerolog.Logger) *MemberHandler {
	return &MemberHandler{
		service: svc,
		logger:  logger.With().Str("component", "member_handler").Logger(),
	}
}

// Register attaches the member routes to the router group.
func (h *MemberHandler) Register(router fiber.Router) {
	router.Get("/nicknames", h.nicknames)
	router.Get("/progress-series", h.progressSeries)
	router.Get("/leaderboard", h.leaderboard)
	router.Get("/calendar", h.calendar)
}

func (h *MemberHandler) nicknames(c *fiber.Ctx) error {
	room := c.Query("room")
	if room == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "room query parameter required")
	}

	return utils.SendSuccess(c, "room nicknames", h.service.Nicknames(c.Context(), room))
}

func (h *MemberHandler) progressSeries(c *fiber.Ctx) error {
	room := c.Query("room")
	nickname := c.Query("nickname")
	if room == "" || nickname == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "room and nickname query parameters required")
	}

	return utils.SendSuccess(c, "progress series", h.service.ProgressSeries(c.Context(), room, nickname))
}

func (h *MemberHandler) leaderboard(c *fiber.Ctx) error {
	board, err := h.service.Leaderboard(c.Context(), c.Query("room"))
	if err != nil {
		return h.mapError(c, err, "failed to build leaderboard")
	}

	return utils.SendSuccess(c, "room leaderboard", board)
}

func (h *MemberHandler) calendar(c *fiber.Ctx) error {
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "year must be a number")
	}
	month, err := parseQueryInt(c, "month")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "month must be a number")
	}

	calendar, err := h.service.Calendar(c.Context(), c.Query("room"), c.Query("nickname"), year, month)
	if err != nil {
		return h.mapError(c, err, "failed to build calendar")
	}

	return utils.SendSuccess(c, "activity calendar", calendar)
}

func (h *MemberHandler) mapError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrMissingRoom):
		return utils.SendError(c, fiber.StatusBadRequest, "room query parameter required")
	case errors.Is(err, service.ErrInvalidMonth):
		return utils.SendError(c, fiber.StatusBadRequest, "month must be between 1 and 12")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
