package membership

import (
	"fmt"
	"strings"
	"time"

	"fitclub/internal/domain/member"
)

// ExpiryWarningDays is the window before expiry that triggers a renewal warning.
const ExpiryWarningDays = 7

// Reason explains why a membership failed validation.
type Reason string

// Validation failure reasons
const (
	ReasonNotFound  Reason = "not_found"
	ReasonNotActive Reason = "status_not_active"
	ReasonExpired   Reason = "expired"
)

// ValidationResult is the outcome of evaluating a membership against today's date.
type ValidationResult struct {
	Valid         bool
	Reason        Reason // set only when Valid is false
	Warning       bool   // true when valid but expiring within ExpiryWarningDays
	DaysRemaining int    // days until expiry, set whenever the membership is valid
	ExpiryDate    time.Time
	Message       string
}

// Truncate strips the time-of-day component so comparisons are date-only.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole number of days from today until expiry.
// Negative when the expiry date has already passed.
func DaysUntil(expiry, today time.Time) int {
	return int(Truncate(expiry).Sub(Truncate(today)).Hours() / 24)
}

// Evaluate computes the validation result for a stored status and expiry date.
// The boundary is strict: expiry equal to today is NOT expired.
// PRE: status is one of the member status constants
// POST: Returns a ValidationResult; never mutates inputs
func Evaluate(status string, expiry, today time.Time) ValidationResult {
	expiry = Truncate(expiry)
	today = Truncate(today)

	if status != member.StatusActive {
		return ValidationResult{
			Valid:      false,
			Reason:     ReasonNotActive,
			ExpiryDate: expiry,
			Message:    "Membership is " + strings.ToLower(status),
		}
	}

	if expiry.Before(today) {
		return ValidationResult{
			Valid:      false,
			Reason:     ReasonExpired,
			ExpiryDate: expiry,
			Message:    "Membership expired on " + expiry.Format("Jan 02, 2006"),
		}
	}

	days := DaysUntil(expiry, today)
	if days <= ExpiryWarningDays {
		return ValidationResult{
			Valid:         true,
			Warning:       true,
			DaysRemaining: days,
			ExpiryDate:    expiry,
			Message:       fmt.Sprintf("Membership expires in %d days", days),
		}
	}

	return ValidationResult{
		Valid:         true,
		DaysRemaining: days,
		ExpiryDate:    expiry,
		Message:       "Membership is valid until " + expiry.Format("Jan 02, 2006"),
	}
}

// NextExpiry computes the expiry date after renewing for the given month count.
// Anchor is max(currentExpiry, today): a lapsed membership restarts from today,
// an active one extends from its current expiry. Month arithmetic follows
// time.AddDate normalization (Jan 31 + 1 month rolls into early March).
// PRE: months >= 1
// POST: Returns the new expiry date, date-only
func NextExpiry(currentExpiry, today time.Time, months int) time.Time {
	anchor := Truncate(currentExpiry)
	today = Truncate(today)
	if anchor.Before(today) {
		anchor = today
	}
	return anchor.AddDate(0, months, 0)
}
