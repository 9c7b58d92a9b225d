package models

import "time"

const (
	SlotAvailable       = "available"
	SlotBooked          = "booked"
	SlotBreak           = "break"
	SlotFixedCommitment = "fixed_commitment"
)

// Slot is an ephemeral proposal produced by the weekly generator. It is not
// persisted; accepted booked slots are turned into Session records.
type Slot struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	ClientID  *int64    `json:"client_id,omitempty"`
	Kind      string    `json:"kind"`
}
