package projections

import (
	"context"
	"time"

	storagemember "fitclub/internal/adapters/storage/member"
	"fitclub/internal/domain/membership"
)

// GetMembershipOverviewQuery carries query parameters.
type GetMembershipOverviewQuery struct {
	// WithinDays limits the expiring list; 0 uses the 30 day default.
	WithinDays int
}

// GetMembershipOverviewResult carries the query result.
type GetMembershipOverviewResult struct {
	Stats    storagemember.MembershipStats
	Expiring []ExpiringMember
}

// GetMembershipOverviewDeps holds dependencies for GetMembershipOverview.
type GetMembershipOverviewDeps struct {
	MemberStore MemberStore
}

// QueryGetMembershipOverview aggregates subscription counts and the list of
// memberships running out soon.
// PRE: stores are wired
// POST: Expiring list contains only Active members, soonest expiry first
func QueryGetMembershipOverview(ctx context.Context, query GetMembershipOverviewQuery, deps GetMembershipOverviewDeps, now time.Time) (GetMembershipOverviewResult, error) {
	today := membership.Truncate(now)
	withinDays := query.WithinDays
	if withinDays <= 0 {
		withinDays = 30
	}

	stats, err := deps.MemberStore.GetMembershipStats(ctx, today)
	if err != nil {
		return GetMembershipOverviewResult{}, err
	}

	expiring, err := deps.MemberStore.ExpiringWithin(ctx, today, withinDays)
	if err != nil {
		return GetMembershipOverviewResult{}, err
	}

	result := GetMembershipOverviewResult{Stats: stats}
	for _, m := range expiring {
		result.Expiring = append(result.Expiring, ExpiringMember{
			Member:        m,
			DaysRemaining: membership.DaysUntil(m.ExpiryDate, today),
		})
	}
	return result, nil
}
