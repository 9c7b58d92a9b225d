package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/schedule"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/services"
)

type plannerApplicationService interface {
	GenerateWeek(ctx context.Context, input services.GenerateWeekInput) (*services.WeekProposal, error)
	AcceptSlots(ctx context.Context, slots []models.Slot) (*services.AcceptResult, error)
}

type PlannerHandler struct {
	service plannerApplicationService
}

func NewPlannerHandler(service *services.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

type generateWeekRequest struct {
	WeekOf           string               `json:"week_of"`
	WorkingDays      []int                `json:"working_days"`
	WorkingStart     string               `json:"working_start"`
	WorkingEnd       string               `json:"working_end"`
	SessionDuration  int                  `json:"session_duration"`
	FixedCommitments []schedule.DayWindow `json:"fixed_commitments"`
	PreferredBreaks  []schedule.DayWindow `json:"preferred_breaks"`
}

type acceptSlotsRequest struct {
	Slots []models.Slot `json:"slots"`
}

func (h *PlannerHandler) Generate(c *fiber.Ctx) error {
	var req generateWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	weekOf, err := parseDate(req.WeekOf)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "week_of must be YYYY-MM-DD"})
	}
	for _, day := range req.WorkingDays {
		if day < 0 || day > 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "working_days must be 0 (Sunday) through 6 (Saturday)"})
		}
	}

	proposal, err := h.service.GenerateWeek(c.Context(), services.GenerateWeekInput{
		WeekOf:           weekOf,
		WorkingDays:      req.WorkingDays,
		WorkingStart:     req.WorkingStart,
		WorkingEnd:       req.WorkingEnd,
		SessionDuration:  req.SessionDuration,
		FixedCommitments: req.FixedCommitments,
		PreferredBreaks:  req.PreferredBreaks,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(proposal)
}

func (h *PlannerHandler) Accept(c *fiber.Ctx) error {
	var req acceptSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slots must not be empty"})
	}

	result, err := h.service.AcceptSlots(c.Context(), req.Slots)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
