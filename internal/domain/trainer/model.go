package trainer

import (
	"errors"
	"time"

	"fitclub/internal/domain/validate"
)

// Trainer status constants
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Statuses lists the valid trainer statuses.
var Statuses = []string{StatusActive, StatusInactive}

// Domain errors
var (
	ErrNotFound       = errors.New("trainer not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Trainer holds state for a staff member who can be assigned to workout plans.
type Trainer struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Specialization  string
	ExperienceYears int
	Certification   string
	HireDate        time.Time
	Status          string
	CreatedAt       time.Time
}

// FullName returns the trainer's display name.
// INVARIANT: Trainer fields are not mutated
func (t *Trainer) FullName() string {
	return t.FirstName + " " + t.LastName
}

// Validate checks required fields and formats before any write.
// PRE: Trainer struct is populated from form input
// POST: Returns field-keyed messages; empty map means valid
func (t *Trainer) Validate() validate.Errors {
	errs := validate.Errors{}
	if t.FirstName == "" {
		errs.Add("first_name", "First name is required")
	}
	if t.LastName == "" {
		errs.Add("last_name", "Last name is required")
	}
	if t.Email == "" {
		errs.Add("email", "Email is required")
	} else if !validate.Email(t.Email) {
		errs.Add("email", "Email must be a valid address")
	}
	if t.Phone == "" {
		errs.Add("phone", "Phone is required")
	} else if !validate.Phone(t.Phone) {
		errs.Add("phone", "Phone must have at least 10 digits")
	}
	if t.HireDate.IsZero() {
		errs.Add("hire_date", "Hire date is required")
	}
	if t.Status != "" && t.Status != StatusActive && t.Status != StatusInactive {
		errs.Add("status", "Status must be Active or Inactive")
	}
	return errs
}
