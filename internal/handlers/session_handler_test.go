package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/services"
)

type stubSessionService struct {
	commitResult     *models.Session
	commitErr        error
	rescheduleResult *models.Session
	rescheduleErr    error
	resizeResult     *models.Session
	resizeErr        error
	completeResult   *models.Session
	completeErr      error
	deleteErr        error

	lastCommitInput     services.CommitSessionInput
	lastSessionID       int64
	lastRescheduleDate  time.Time
	lastRescheduleStart string
	lastDuration        int
}

func (s *stubSessionService) ProposeSession(clientID int64, date time.Time, hour int) (*models.SessionDraft, error) {
	return &models.SessionDraft{
		DraftID:         "draft-1",
		ClientID:        clientID,
		Date:            date.Format("2006-01-02"),
		StartTime:       "14:00",
		DurationMinutes: 45,
	}, nil
}

func (s *stubSessionService) CommitSession(_ context.Context, input services.CommitSessionInput) (*models.Session, error) {
	s.lastCommitInput = input
	return s.commitResult, s.commitErr
}

func (s *stubSessionService) GetSession(_ context.Context, sessionID int64) (*models.Session, error) {
	s.lastSessionID = sessionID
	return s.commitResult, s.commitErr
}

func (s *stubSessionService) ListByClient(_ context.Context, _ int64) ([]models.Session, error) {
	return nil, nil
}

func (s *stubSessionService) CommitEdit(_ context.Context, sessionID int64, _ services.EditSessionInput) (*models.Session, error) {
	s.lastSessionID = sessionID
	return s.commitResult, s.commitErr
}

func (s *stubSessionService) CommitDelete(_ context.Context, sessionID int64) error {
	s.lastSessionID = sessionID
	return s.deleteErr
}

func (s *stubSessionService) Reschedule(_ context.Context, sessionID int64, date time.Time, startTime string) (*models.Session, error) {
	s.lastSessionID = sessionID
	s.lastRescheduleDate = date
	s.lastRescheduleStart = startTime
	return s.rescheduleResult, s.rescheduleErr
}

func (s *stubSessionService) Resize(_ context.Context, sessionID int64, durationMinutes int) (*models.Session, error) {
	s.lastSessionID = sessionID
	s.lastDuration = durationMinutes
	return s.resizeResult, s.resizeErr
}

func (s *stubSessionService) CompleteSession(_ context.Context, sessionID int64) (*models.Session, error) {
	s.lastSessionID = sessionID
	return s.completeResult, s.completeErr
}

func (s *stubSessionService) CancelSession(_ context.Context, sessionID int64) (*models.Session, error) {
	s.lastSessionID = sessionID
	return s.completeResult, s.completeErr
}

func newSessionTestApp(service *stubSessionService) *fiber.App {
	handler := &SessionHandler{service: service}
	app := fiber.New()
	app.Post("/api/v1/sessions/propose", handler.Propose)
	app.Post("/api/v1/sessions", handler.Commit)
	app.Patch("/api/v1/sessions/:id/schedule", handler.Reschedule)
	app.Patch("/api/v1/sessions/:id/duration", handler.Resize)
	app.Post("/api/v1/sessions/:id/complete", handler.Complete)
	app.Delete("/api/v1/sessions/:id", handler.Delete)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCommitSessionReturnsCreated(t *testing.T) {
	service := &stubSessionService{
		commitResult: &models.Session{ID: 11, ClientID: 3, StartTime: "10:00", DurationMinutes: 45, Status: models.SessionScheduled},
	}
	app := newSessionTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/sessions", `{
		"client_id": 3,
		"date": "2025-06-23",
		"start_time": "10:00",
		"duration_minutes": 45,
		"cost": 150
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCommitInput.ClientID != 3 || service.lastCommitInput.StartTime != "10:00" {
		t.Fatalf("unexpected commit input: %+v", service.lastCommitInput)
	}
	wantDate := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)
	if !service.lastCommitInput.Date.Equal(wantDate) {
		t.Fatalf("expected date %v, got %v", wantDate, service.lastCommitInput.Date)
	}

	var payload struct {
		Session models.Session `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Session.ID != 11 {
		t.Fatalf("expected session 11, got %d", payload.Session.ID)
	}
}

func TestCommitSessionRejectsMalformedDate(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/sessions", `{
		"client_id": 3,
		"date": "23/06/2025",
		"start_time": "10:00",
		"duration_minutes": 45
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCommitSessionMapsConflict(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{commitErr: services.ErrConflict})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/sessions", `{
		"client_id": 3,
		"date": "2025-06-23",
		"start_time": "10:00",
		"duration_minutes": 45
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCommitSessionMapsMissingClient(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{commitErr: services.ErrClientNotFound})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/sessions", `{
		"client_id": 99,
		"date": "2025-06-23",
		"start_time": "10:00",
		"duration_minutes": 45
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestProposeSessionReturnsDraft(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/sessions/propose", `{
		"client_id": 3,
		"date": "2025-06-23",
		"hour": 14
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Draft models.SessionDraft `json:"draft"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Draft.DraftID == "" || payload.Draft.StartTime != "14:00" {
		t.Fatalf("unexpected draft: %+v", payload.Draft)
	}
}

func TestRescheduleMapsStateTransition(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{rescheduleErr: services.ErrInvalidStateTransition})

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/sessions/5/schedule", `{
		"date": "2025-06-24",
		"start_time": "09:00"
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestResizeRejectsInvalidSessionID(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{})

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/sessions/abc/duration", `{"duration_minutes": 30}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteSessionReturnsNoContent(t *testing.T) {
	service := &stubSessionService{}
	app := newSessionTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/8", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 8 {
		t.Fatalf("expected session 8, got %d", service.lastSessionID)
	}
}
