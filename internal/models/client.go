package models

import "time"

const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

// Payment status values derived by the billing package. Never written
// directly by handlers; always recomputed from balance and payment dates.
const (
	PaymentPaidUp    = "paid_up"
	PaymentOwesMoney = "owes_money"
	PaymentOverdue   = "overdue"
)

type Client struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Status            string     `json:"status"`
	StartDate         time.Time  `json:"start_date"`
	CompletedSessions int        `json:"completed_sessions"`
	LastSessionDate   *time.Time `json:"last_session_date"`
	Balance           float64    `json:"balance"`
	PaymentStatus     string     `json:"payment_status"`
	LastPaymentDate   *time.Time `json:"last_payment_date"`
	ReadyForTest      bool       `json:"ready_for_test"`
	ProgressNotes     *string    `json:"progress_notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type ClientDetail struct {
	Client
	TestProgressPercent float64   `json:"test_progress_percent"`
	Sessions            []Session `json:"sessions,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
