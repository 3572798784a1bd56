package workoutplan

import (
	"errors"
	"math"
	"time"

	"fitclub/internal/domain/validate"
)

// Plan status constants
const (
	StatusDraft     = "Draft"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Statuses lists the valid plan statuses.
var Statuses = []string{StatusDraft, StatusActive, StatusCompleted, StatusCancelled}

// Domain errors
var (
	ErrNotFound      = errors.New("workout plan not found")
	ErrInvalidStatus = errors.New("invalid status: must be Draft, Active, Completed or Cancelled")
)

// Exercise is one entry in a plan's ordered exercise list.
type Exercise struct {
	Name  string `json:"name"`
	Sets  string `json:"sets,omitempty"`
	Reps  string `json:"reps,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Plan holds state for a scheduled training program linking one member and
// optionally one trainer.
type Plan struct {
	ID              string
	MemberID        string
	TrainerID       string // empty means no trainer assigned
	PlanName        string
	PlanType        string
	Description     string
	Goals           string
	Notes           string
	StartDate       time.Time
	EndDate         time.Time
	SessionsPerWeek int
	SessionDuration int // minutes per session
	DurationWeeks   int // derived from the date span
	DifficultyLevel string
	Exercises       []Exercise
	Status          string
	CreatedAt       time.Time
}

// DurationWeeks derives the plan length in whole weeks from its date span.
// PRE: end is not before start
// POST: Returns round(days / 7)
func DurationWeeks(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	return int(math.Round(days / 7))
}

// IsValidStatus reports whether s is one of the plan status constants.
func IsValidStatus(s string) bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ShouldComplete returns true if an Active plan's end date has passed.
// The boundary is strict: a plan ending today is still Active.
// INVARIANT: Plan fields are not mutated
func (p *Plan) ShouldComplete(today time.Time) bool {
	if p.Status != StatusActive {
		return false
	}
	end := time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day(), 0, 0, 0, 0, p.EndDate.Location())
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return end.Before(day)
}

// Validate checks required fields and the date-span invariant before any write.
// PRE: Plan struct is populated from form input
// POST: Returns field-keyed messages; empty map means valid
func (p *Plan) Validate() validate.Errors {
	errs := validate.Errors{}
	if p.PlanName == "" {
		errs.Add("plan_name", "Plan name is required")
	}
	if p.PlanType == "" {
		errs.Add("plan_type", "Plan type is required")
	}
	if p.MemberID == "" {
		errs.Add("member_id", "Member selection is required")
	}
	if p.TrainerID == "" {
		errs.Add("trainer_id", "Trainer selection is required")
	}
	if p.StartDate.IsZero() {
		errs.Add("start_date", "Start date is required")
	}
	if p.EndDate.IsZero() {
		errs.Add("end_date", "End date is required")
	} else if !p.StartDate.IsZero() && !p.EndDate.After(p.StartDate) {
		errs.Add("end_date", "End date must be after start date")
	}
	if p.SessionsPerWeek <= 0 {
		errs.Add("sessions_per_week", "Sessions per week is required")
	}
	if p.SessionDuration <= 0 {
		errs.Add("session_duration", "Session duration is required")
	}
	if p.Status != "" && !IsValidStatus(p.Status) {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	return errs
}
