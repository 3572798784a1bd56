package trainer

import (
	"context"

	domain "fitclub/internal/domain/trainer"
)

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Name   string // matches first or last name, LIKE
	Status string // exact match
	Limit  int
	Offset int
}

// Stats aggregates trainer counts for the dashboard.
type Stats struct {
	Total    int
	Active   int
	Inactive int
}

// Workload is one trainer's active-plan load for the trainers index.
type Workload struct {
	TrainerID   string
	FirstName   string
	LastName    string
	ActivePlans int
	AvgWeeks    float64 // average duration of the trainer's active plans
}

// Store persists Trainer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Trainer, error)
	GetByEmail(ctx context.Context, email string) (domain.Trainer, error)
	Save(ctx context.Context, value domain.Trainer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Trainer, error)
	ListActive(ctx context.Context) ([]domain.Trainer, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Trainer, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	GetStats(ctx context.Context) (Stats, error)
	GetWorkloadStats(ctx context.Context) ([]Workload, error)
}
