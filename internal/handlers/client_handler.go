package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/repository"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/services"
)

type clientApplicationService interface {
	RegisterClient(ctx context.Context, input services.RegisterClientInput) (*models.Client, error)
	GetClient(ctx context.Context, clientID int64) (*models.ClientDetail, error)
	ListClients(ctx context.Context, filter repository.ClientListFilter) ([]models.ClientDetail, int, error)
	RecordPayment(ctx context.Context, clientID int64, amount float64, method string) (*models.Client, error)
	ListPayments(ctx context.Context, clientID int64) ([]models.Payment, error)
	UpdateProgressNotes(ctx context.Context, clientID int64, notes string) error
	SetClientStatus(ctx context.Context, clientID int64, status string) error
}

type ClientHandler struct {
	service clientApplicationService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type registerClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type updateClientStatusRequest struct {
	Status string `json:"status"`
}

func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var req registerClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	client, err := h.service.RegisterClient(c.Context(), services.RegisterClientInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return mapClientError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	detail, err := h.service.GetClient(c.Context(), clientID)
	if err != nil {
		return mapClientError(c, err)
	}

	return c.JSON(fiber.Map{"client": detail})
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != models.ClientActive && status != models.ClientInactive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be active or inactive"})
	}

	page, limit, offset := parseListPage(c)

	clients, total, err := h.service.ListClients(c.Context(), repository.ClientListFilter{
		Status: status,
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapClientError(c, err)
	}

	return c.JSON(fiber.Map{
		"clients":    clients,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *ClientHandler) RecordPayment(c *fiber.Ctx) error {
	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be greater than 0"})
	}

	client, err := h.service.RecordPayment(c.Context(), clientID, req.Amount, req.Method)
	if err != nil {
		return mapClientError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) ListPayments(c *fiber.Ctx) error {
	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	payments, err := h.service.ListPayments(c.Context(), clientID)
	if err != nil {
		return mapClientError(c, err)
	}

	return c.JSON(fiber.Map{"payments": payments})
}

func (h *ClientHandler) UpdateNotes(c *fiber.Ctx) error {
	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req updateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.UpdateProgressNotes(c.Context(), clientID, req.Notes); err != nil {
		return mapClientError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ClientHandler) UpdateStatus(c *fiber.Ctx) error {
	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req updateClientStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.SetClientStatus(c.Context(), clientID, req.Status); err != nil {
		return mapClientError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseClientID(c *fiber.Ctx) (int64, error) {
	clientID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || clientID <= 0 {
		return 0, errors.New("invalid client id")
	}
	return clientID, nil
}

func mapClientError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process client request"})
	}
}
