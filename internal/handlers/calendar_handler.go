package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/calendar"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/services"
)

type calendarApplicationService interface {
	Grid(ctx context.Context, anchor time.Time, granularity string) (*services.GridView, error)
	OnDragEnd(ctx context.Context, input services.DragEndInput) (*services.GestureResult, error)
	OnResizeEnd(ctx context.Context, input services.ResizeEndInput) (*services.GestureResult, error)
}

type CalendarHandler struct {
	service calendarApplicationService
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

type dragEndRequest struct {
	SessionID   int64             `json:"session_id"`
	Anchor      string            `json:"anchor"`
	Granularity string            `json:"granularity"`
	Geometry    calendar.Geometry `json:"geometry"`
	Pointer     calendar.Pointer  `json:"pointer"`
}

type resizeEndRequest struct {
	SessionID int64             `json:"session_id"`
	Geometry  calendar.Geometry `json:"geometry"`
	DeltaY    float64           `json:"delta_y"`
}

// Grid renders the calendar window. The anchor defaults to today and the
// granularity to week.
func (h *CalendarHandler) Grid(c *fiber.Ctx) error {
	anchor := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("anchor")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anchor must be YYYY-MM-DD"})
		}
		anchor = parsed
	}

	granularity := strings.TrimSpace(c.Query("granularity"))
	if granularity == "" {
		granularity = string(calendar.GranularityWeek)
	}

	grid, err := h.service.Grid(c.Context(), anchor, granularity)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(grid)
}

func (h *CalendarHandler) DragEnd(c *fiber.Ctx) error {
	var req dragEndRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	anchor, err := parseDate(req.Anchor)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anchor must be YYYY-MM-DD"})
	}

	result, err := h.service.OnDragEnd(c.Context(), services.DragEndInput{
		SessionID:   req.SessionID,
		Anchor:      anchor,
		Granularity: req.Granularity,
		Geometry:    req.Geometry,
		Pointer:     req.Pointer,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(result)
}

func (h *CalendarHandler) ResizeEnd(c *fiber.Ctx) error {
	var req resizeEndRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	result, err := h.service.OnResizeEnd(c.Context(), services.ResizeEndInput{
		SessionID: req.SessionID,
		Geometry:  req.Geometry,
		DeltaY:    req.DeltaY,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(result)
}
