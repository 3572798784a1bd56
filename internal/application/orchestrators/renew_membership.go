package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fitclub/internal/adapters/email"
	"fitclub/internal/domain/member"
	"fitclub/internal/domain/membership"
)

// MemberStoreForRenewal defines the store interface needed by RenewMembership.
type MemberStoreForRenewal interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	UpdateMembership(ctx context.Context, id string, expiry time.Time, status string) error
}

// RenewMembershipInput carries input for the renewal orchestrator.
type RenewMembershipInput struct {
	MemberID string
	Months   int // defaults to 1 when <= 0
}

// RenewMembershipDeps holds dependencies for RenewMembership.
type RenewMembershipDeps struct {
	MemberStore MemberStoreForRenewal
	EmailSender email.Sender // optional: nil skips the confirmation email
	EmailFrom   string
}

// RenewMembershipResult carries the outcome of a renewal.
type RenewMembershipResult struct {
	NewExpiry time.Time
}

// ExecuteRenewMembership extends a membership by a whole number of months.
// The new period is anchored at max(current expiry, today): renewing a lapsed
// membership starts from today, an active one extends from its expiry.
// PRE: MemberID refers to an existing member
// POST: Expiry extended, status forced to Active; confirmation email sent when configured
func ExecuteRenewMembership(ctx context.Context, input RenewMembershipInput, deps RenewMembershipDeps, today time.Time) (RenewMembershipResult, error) {
	months := input.Months
	if months <= 0 {
		months = 1
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return RenewMembershipResult{}, err
	}

	newExpiry := membership.NextExpiry(m.ExpiryDate, today, months)
	if err := deps.MemberStore.UpdateMembership(ctx, m.ID, newExpiry, member.StatusActive); err != nil {
		return RenewMembershipResult{}, err
	}

	slog.Info("membership_renewed",
		"member_id", m.ID,
		"months", months,
		"new_expiry", newExpiry.Format("2006-01-02"),
	)

	if deps.EmailSender != nil && m.Email != "" {
		req := email.SendRequest{
			To:      []string{m.Email},
			From:    deps.EmailFrom,
			Subject: "Your membership has been renewed",
			HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your %s membership is renewed until <strong>%s</strong>.</p>",
				m.FirstName, m.MembershipType, newExpiry.Format("Jan 02, 2006")),
		}
		// Delivery failures must not fail the renewal itself.
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Error("renewal_email_failed", "member_id", m.ID, "error", err)
		}
	}

	return RenewMembershipResult{NewExpiry: newExpiry}, nil
}
