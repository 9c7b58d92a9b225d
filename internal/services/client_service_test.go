package services

import (
	"context"
	"testing"
)

// Validation-only service; paths under test return before any repository
// call.
func newValidationClientService() *ClientService {
	return NewClientService(nil, nil, nil, nil, nil, 30, 30)
}

func TestRegisterClientValidation(t *testing.T) {
	service := newValidationClientService()

	cases := []struct {
		name  string
		input RegisterClientInput
	}{
		{"empty name", RegisterClientInput{Name: "   ", Phone: "050-1234567"}},
		{"empty phone", RegisterClientInput{Name: "Dana", Phone: ""}},
		{"letters in phone", RegisterClientInput{Name: "Dana", Phone: "not-a-phone"}},
		{"plus not leading", RegisterClientInput{Name: "Dana", Phone: "050+1234567"}},
	}

	for _, tc := range cases {
		if _, err := service.RegisterClient(context.Background(), tc.input); err != ErrInvalidInput {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestPhonePatternAcceptsCommonFormats(t *testing.T) {
	for _, phone := range []string{
		"0501234567",
		"050-123-4567",
		"+972 50 123 4567",
		"(050) 123 4567",
	} {
		if !phonePattern.MatchString(phone) {
			t.Errorf("expected %q to be accepted", phone)
		}
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	service := newValidationClientService()

	if _, err := service.RecordPayment(context.Background(), 0, 50, "cash"); err != ErrInvalidInput {
		t.Fatalf("missing client: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.RecordPayment(context.Background(), 3, 0, "cash"); err != ErrInvalidInput {
		t.Fatalf("zero amount: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.RecordPayment(context.Background(), 3, -20, "cash"); err != ErrInvalidInput {
		t.Fatalf("negative amount: expected ErrInvalidInput, got %v", err)
	}
}

func TestSetClientStatusValidation(t *testing.T) {
	service := newValidationClientService()

	if err := service.SetClientStatus(context.Background(), 3, "paused"); err != ErrInvalidInput {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}
	if err := service.SetClientStatus(context.Background(), 0, "active"); err != ErrInvalidInput {
		t.Fatalf("missing client: expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateProgressNotesValidation(t *testing.T) {
	service := newValidationClientService()

	if err := service.UpdateProgressNotes(context.Background(), 0, "parallel parking solid"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
