package services

import (
	"context"
	"testing"
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

// Validation-only service; paths under test return before any repository
// call, so nil repositories are never touched.
func newValidationSessionService() *SessionService {
	return NewSessionService(nil, nil, nil, nil, 15, 45, false, 30, 30)
}

func TestProposeSessionBuildsDraftForTappedCell(t *testing.T) {
	service := newValidationSessionService()

	date := time.Date(2025, time.June, 23, 16, 40, 0, 0, time.UTC)
	draft, err := service.ProposeSession(3, date, 14)
	if err != nil {
		t.Fatalf("ProposeSession: %v", err)
	}

	if draft.DraftID == "" {
		t.Fatalf("expected a draft id")
	}
	if draft.Date != "2025-06-23" {
		t.Fatalf("expected date 2025-06-23, got %q", draft.Date)
	}
	if draft.StartTime != "14:00" {
		t.Fatalf("expected start 14:00, got %q", draft.StartTime)
	}
	if draft.DurationMinutes != 45 {
		t.Fatalf("expected the default duration 45, got %d", draft.DurationMinutes)
	}
	if draft.Cost != 0 || draft.IsPaid {
		t.Fatalf("expected a zero-cost unpaid draft, got %+v", draft)
	}
}

func TestProposeSessionDraftsAreDistinct(t *testing.T) {
	service := newValidationSessionService()
	date := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)

	first, err := service.ProposeSession(3, date, 9)
	if err != nil {
		t.Fatalf("ProposeSession: %v", err)
	}
	second, err := service.ProposeSession(3, date, 9)
	if err != nil {
		t.Fatalf("ProposeSession: %v", err)
	}
	if first.DraftID == second.DraftID {
		t.Fatalf("expected distinct draft ids")
	}
}

func TestProposeSessionRejectsHourOutsideDay(t *testing.T) {
	service := newValidationSessionService()
	date := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)

	for _, hour := range []int{-1, 24} {
		if _, err := service.ProposeSession(3, date, hour); err != ErrInvalidInput {
			t.Fatalf("hour %d: expected ErrInvalidInput, got %v", hour, err)
		}
	}
}

func TestCommitSessionValidation(t *testing.T) {
	service := newValidationSessionService()
	date := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)

	valid := CommitSessionInput{
		ClientID:        3,
		Date:            date,
		StartTime:       "10:00",
		DurationMinutes: 45,
	}

	cases := []struct {
		name   string
		mutate func(*CommitSessionInput)
	}{
		{"missing client", func(in *CommitSessionInput) { in.ClientID = 0 }},
		{"duration below floor", func(in *CommitSessionInput) { in.DurationMinutes = 14 }},
		{"negative cost", func(in *CommitSessionInput) { in.Cost = -1 }},
		{"malformed start time", func(in *CommitSessionInput) { in.StartTime = "25:00" }},
		{"empty start time", func(in *CommitSessionInput) { in.StartTime = "" }},
		{"cancelled on create", func(in *CommitSessionInput) { in.Status = models.SessionCancelled }},
		{"unknown status", func(in *CommitSessionInput) { in.Status = "done" }},
	}

	for _, tc := range cases {
		input := valid
		tc.mutate(&input)
		if _, err := service.CommitSession(context.Background(), input); err != ErrInvalidInput {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCommitEditValidation(t *testing.T) {
	service := newValidationSessionService()

	if _, err := service.CommitEdit(context.Background(), 1, EditSessionInput{}); err != ErrInvalidInput {
		t.Fatalf("empty edit: expected ErrInvalidInput, got %v", err)
	}

	cost := -5.0
	if _, err := service.CommitEdit(context.Background(), 1, EditSessionInput{Cost: &cost}); err != ErrInvalidInput {
		t.Fatalf("negative cost: expected ErrInvalidInput, got %v", err)
	}
}

func TestResizeRejectsBelowFloor(t *testing.T) {
	service := newValidationSessionService()

	if _, err := service.Resize(context.Background(), 1, 14); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRescheduleRejectsMalformedStartTime(t *testing.T) {
	service := newValidationSessionService()
	date := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)

	if _, err := service.Reschedule(context.Background(), 1, date, "9am"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBalanceContributionCountsOnlyUnpaidCost(t *testing.T) {
	unpaid := &models.Session{Cost: 120, IsPaid: false}
	paid := &models.Session{Cost: 120, IsPaid: true}

	if got := balanceContribution(unpaid); got != 120 {
		t.Fatalf("expected 120, got %.2f", got)
	}
	if got := balanceContribution(paid); got != 0 {
		t.Fatalf("expected 0, got %.2f", got)
	}
}

func TestLaterDateKeepsTheNewest(t *testing.T) {
	older := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	if got := laterDate(nil, newer); got == nil || !got.Equal(newer) {
		t.Fatalf("expected %v from nil current, got %v", newer, got)
	}
	if got := laterDate(&older, newer); !got.Equal(newer) {
		t.Fatalf("expected %v, got %v", newer, got)
	}
	if got := laterDate(&newer, older); !got.Equal(newer) {
		t.Fatalf("expected current %v to win, got %v", newer, got)
	}
}
