// Package billing derives client payment state from session and payment
// history. The derived fields are recomputed on every balance or payment-date
// change and never edited by hand, so the stored values cannot drift from
// their inputs.
package billing

import (
	"time"

	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

const (
	// DefaultOverdueAfterDays is how long an unpaid balance may sit after the
	// last payment before the client counts as overdue.
	DefaultOverdueAfterDays = 30

	// DefaultReadyThreshold is the completed-session count at which a client
	// is considered ready for the final test.
	DefaultReadyThreshold = 30
)

// Derive classifies a client's payment state. A non-positive balance is paid
// up (negative means prepaid credit). A positive balance is owed; it becomes
// overdue once more than overdueAfterDays have passed since the last payment.
func Derive(balance float64, lastPaymentDate *time.Time, now time.Time, overdueAfterDays int) string {
	if balance <= 0 {
		return models.PaymentPaidUp
	}
	if lastPaymentDate == nil {
		return models.PaymentOwesMoney
	}
	if overdueAfterDays <= 0 {
		overdueAfterDays = DefaultOverdueAfterDays
	}

	daysSincePayment := int(now.Sub(*lastPaymentDate).Hours() / 24)
	if daysSincePayment > overdueAfterDays {
		return models.PaymentOverdue
	}
	return models.PaymentOwesMoney
}

func ReadyForTest(completedSessions, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultReadyThreshold
	}
	return completedSessions >= threshold
}

// TestProgressPercent reports how far along a client is toward the readiness
// threshold, capped at 100.
func TestProgressPercent(completedSessions, threshold int) float64 {
	if threshold <= 0 {
		threshold = DefaultReadyThreshold
	}
	percent := float64(completedSessions) / float64(threshold) * 100
	if percent > 100 {
		return 100
	}
	return percent
}
