package models

import "time"

const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is one scheduled unit of work with a client. The calendar day and
// the wall-clock start are kept as separate fields (a date plus an "HH:MM"
// string) so a session renders on the day it was scheduled for regardless of
// the viewer's timezone. The end time is always derived from start plus
// duration and is never stored.
type Session struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Cost            float64   `json:"cost"`
	IsPaid          bool      `json:"is_paid"`
	Notes           *string   `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Payment struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionDraft is the proposal handed to the edit dialog before anything is
// persisted. The draft ID exists only so the dialog can reference the draft;
// the database assigns the real ID on commit.
type SessionDraft struct {
	DraftID         string  `json:"draft_id"`
	ClientID        int64   `json:"client_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Cost            float64 `json:"cost"`
	IsPaid          bool    `json:"is_paid"`
	Notes           *string `json:"notes"`
}
