package member

import (
	"errors"
	"time"

	"fitclub/internal/domain/validate"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Membership type constants
const (
	TypeBasic    = "Basic"
	TypeStandard = "Standard"
	TypePremium  = "Premium"
)

// Membership status constants
const (
	StatusActive    = "Active"
	StatusExpired   = "Expired"
	StatusSuspended = "Suspended"
)

// Types lists the membership types offered by the club.
var Types = []string{TypeBasic, TypeStandard, TypePremium}

// Statuses lists the valid membership statuses.
var Statuses = []string{StatusActive, StatusExpired, StatusSuspended}

// Domain errors
var (
	ErrNotFound       = errors.New("member not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Member holds state for a gym customer and their membership subscription.
type Member struct {
	ID                    string
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	Address               string
	DateOfBirth           time.Time // zero means not provided
	EmergencyContactName  string
	EmergencyContactPhone string
	MembershipType        string
	Status                string
	StartDate             time.Time
	ExpiryDate            time.Time
	CreatedAt             time.Time
}

// FullName returns the member's display name.
// INVARIANT: Member fields are not mutated
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// IsActive returns true if the stored membership status is Active.
// INVARIANT: Member fields are not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Validate checks required fields and formats before any write.
// PRE: Member struct is populated from form input
// POST: Returns field-keyed messages; empty map means valid
func (m *Member) Validate() validate.Errors {
	errs := validate.Errors{}
	if m.FirstName == "" {
		errs.Add("first_name", "First name is required")
	} else if len(m.FirstName) > MaxNameLength {
		errs.Add("first_name", "First name cannot exceed 100 characters")
	}
	if m.LastName == "" {
		errs.Add("last_name", "Last name is required")
	} else if len(m.LastName) > MaxNameLength {
		errs.Add("last_name", "Last name cannot exceed 100 characters")
	}
	if m.Email == "" {
		errs.Add("email", "Email is required")
	} else if !validate.Email(m.Email) {
		errs.Add("email", "Email must be a valid address")
	}
	if m.Phone == "" {
		errs.Add("phone", "Phone is required")
	} else if !validate.Phone(m.Phone) {
		errs.Add("phone", "Phone must have at least 10 digits")
	}
	if m.MembershipType == "" {
		errs.Add("membership_type", "Membership type is required")
	} else if !contains(Types, m.MembershipType) {
		errs.Add("membership_type", "Membership type must be Basic, Standard or Premium")
	}
	if m.Status != "" && !contains(Statuses, m.Status) {
		errs.Add("status", "Status must be Active, Expired or Suspended")
	}
	if m.StartDate.IsZero() {
		errs.Add("membership_start_date", "Membership start date is required")
	}
	if m.ExpiryDate.IsZero() {
		errs.Add("membership_expiry_date", "Membership expiry date is required")
	}
	return errs
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
