package member

import (
	"context"
	"time"

	domain "fitclub/internal/domain/member"
)

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Name           string    // matches first or last name, LIKE
	MembershipType string    // exact match
	Status         string    // exact match
	ExpiryBefore   time.Time // membership_expiry_date <= this date
	Sort           string
	Dir            string
	Limit          int
	Offset         int
}

// Stats aggregates member counts for the dashboard.
type Stats struct {
	Total        int
	Active       int
	Expired      int
	ExpiringSoon int // Active members expiring within 30 days
}

// MembershipStats aggregates subscription counts for the memberships view.
type MembershipStats struct {
	ByType         map[string]int // Active members per membership type
	Expiring7Days  int
	Expiring30Days int
	Expired        int // expiry has passed but status still says Active
}

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateMembership(ctx context.Context, id string, expiry time.Time, status string) error
	ExpiringWithin(ctx context.Context, today time.Time, days int) ([]domain.Member, error)
	GetStats(ctx context.Context, today time.Time) (Stats, error)
	GetMembershipStats(ctx context.Context, today time.Time) (MembershipStats, error)
}
