package workoutplan

import (
	"context"
	"time"

	domain "fitclub/internal/domain/workoutplan"
)

// SearchFilter carries filtering parameters for Search.
type SearchFilter struct {
	Search    string // matches plan name, member name or trainer name
	MemberID  string
	TrainerID string
	// Status accepts the plan status values plus "inactive", which matches
	// every plan that is neither Active nor Completed.
	Status string
	Limit  int
	Offset int
}

// Stats aggregates plan counts for the dashboard.
type Stats struct {
	Total          int
	Active         int
	Completed      int
	PlansThisMonth int
}

// PlanRow is a plan joined with its member and trainer display names.
type PlanRow struct {
	domain.Plan
	MemberName   string
	MemberEmail  string
	TrainerName  string // empty when no trainer assigned
	TrainerEmail string
}

// Store persists WorkoutPlan state.
type Store interface {
	GetByID(ctx context.Context, id string) (PlanRow, error)
	Save(ctx context.Context, value domain.Plan) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter) ([]PlanRow, error)
	Count(ctx context.Context, filter SearchFilter) (int, error)
	ListByMember(ctx context.Context, memberID string) ([]PlanRow, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]PlanRow, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// CompleteExpired transitions every Active plan whose end date has
	// passed to Completed. Idempotent; returns the number of rows changed.
	CompleteExpired(ctx context.Context, today time.Time) (int64, error)
	GetStats(ctx context.Context, now time.Time) (Stats, error)
}
