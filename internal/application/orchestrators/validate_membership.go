package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitclub/internal/domain/member"
	"fitclub/internal/domain/membership"
)

// MemberStoreForValidation defines the store interface needed by ValidateMembership.
type MemberStoreForValidation interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ValidateMembershipDeps holds dependencies for ValidateMembership.
type ValidateMembershipDeps struct {
	MemberStore MemberStoreForValidation
}

// ValidateMembershipResult carries the evaluation plus the member it refers to.
type ValidateMembershipResult struct {
	membership.ValidationResult
	Member member.Member
}

// ExecuteValidateMembership looks up a member and evaluates their membership
// against today's date. When the expiry has passed, the stored status is
// flipped to Expired as a side effect; read paths rely on this instead of
// a background job.
// PRE: memberID is non-empty
// POST: Returns the validation result; status persisted as Expired when lapsed
func ExecuteValidateMembership(ctx context.Context, deps ValidateMembershipDeps, memberID string, today time.Time) (ValidateMembershipResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return ValidateMembershipResult{
				ValidationResult: membership.ValidationResult{
					Valid:   false,
					Reason:  membership.ReasonNotFound,
					Message: "Member not found",
				},
			}, nil
		}
		return ValidateMembershipResult{}, err
	}

	result := membership.Evaluate(m.Status, m.ExpiryDate, today)
	if result.Reason == membership.ReasonExpired {
		if err := deps.MemberStore.UpdateStatus(ctx, m.ID, member.StatusExpired); err != nil {
			return ValidateMembershipResult{}, err
		}
		m.Status = member.StatusExpired
		slog.Info("membership_expired", "member_id", m.ID, "expiry", m.ExpiryDate.Format("2006-01-02"))
	}

	return ValidateMembershipResult{ValidationResult: result, Member: m}, nil
}
