package projections

import (
	"context"
	"time"

	storageplan "fitclub/internal/adapters/storage/workoutplan"
	"fitclub/internal/domain/member"
	"fitclub/internal/domain/membership"
)

// GetMemberProfileResult carries the query result.
type GetMemberProfileResult struct {
	Member     member.Member
	Membership membership.ValidationResult
	Plans      []storageplan.PlanRow
}

// GetMemberProfileDeps holds dependencies for GetMemberProfile.
type GetMemberProfileDeps struct {
	MemberStore MemberStore
	PlanStore   PlanStore
}

// QueryGetMemberProfile retrieves one member with their membership standing
// and workout plan history.
// PRE: id is non-empty
// POST: Returns member.ErrNotFound when the id is unknown
func QueryGetMemberProfile(ctx context.Context, id string, deps GetMemberProfileDeps, now time.Time) (GetMemberProfileResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, id)
	if err != nil {
		return GetMemberProfileResult{}, err
	}

	result := GetMemberProfileResult{
		Member:     m,
		Membership: membership.Evaluate(m.Status, m.ExpiryDate, membership.Truncate(now)),
	}

	plans, err := deps.PlanStore.ListByMember(ctx, id)
	if err == nil {
		result.Plans = plans
	}
	return result, nil
}
