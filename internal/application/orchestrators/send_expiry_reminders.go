package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fitclub/internal/adapters/email"
	"fitclub/internal/domain/member"
)

// MemberStoreForReminders defines the store interface needed by the
// expiry reminder orchestrator.
type MemberStoreForReminders interface {
	ExpiringWithin(ctx context.Context, today time.Time, days int) ([]member.Member, error)
}

// SendExpiryRemindersInput carries input for the reminder run.
type SendExpiryRemindersInput struct {
	WithinDays int // defaults to 7 when <= 0
}

// SendExpiryRemindersDeps holds dependencies for the reminder run.
type SendExpiryRemindersDeps struct {
	MemberStore MemberStoreForReminders
	EmailSender email.Sender
	EmailFrom   string
	ReplyTo     string
}

// SendExpiryRemindersResult reports how many reminders went out.
type SendExpiryRemindersResult struct {
	Expiring int // members in the window
	Sent     int // members with an email address that were mailed
}

// ExecuteSendExpiryReminders emails every member whose membership expires
// within the window. Members without an email address are counted but
// skipped. Reminders go out as one batch send.
// PRE: EmailSender is non-nil
// POST: Result.Sent == number of reminder emails handed to the sender
func ExecuteSendExpiryReminders(ctx context.Context, input SendExpiryRemindersInput, deps SendExpiryRemindersDeps, today time.Time) (SendExpiryRemindersResult, error) {
	days := input.WithinDays
	if days <= 0 {
		days = 7
	}

	expiring, err := deps.MemberStore.ExpiringWithin(ctx, today, days)
	if err != nil {
		return SendExpiryRemindersResult{}, fmt.Errorf("send reminders: list expiring: %w", err)
	}

	var reqs []email.SendRequest
	for _, m := range expiring {
		if m.Email == "" {
			continue
		}
		reqs = append(reqs, email.SendRequest{
			To:      []string{m.Email},
			From:    deps.EmailFrom,
			ReplyTo: deps.ReplyTo,
			Subject: "Your membership expires soon",
			HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your %s membership expires on <strong>%s</strong>. Renew at the front desk to keep training.</p>",
				m.FirstName, m.MembershipType, m.ExpiryDate.Format("Jan 02, 2006")),
		})
	}

	result := SendExpiryRemindersResult{Expiring: len(expiring)}
	if len(reqs) == 0 {
		return result, nil
	}

	if _, err := deps.EmailSender.SendBatch(ctx, reqs); err != nil {
		return result, fmt.Errorf("send reminders: batch send: %w", err)
	}
	result.Sent = len(reqs)

	slog.Info("expiry_reminders_sent",
		"within_days", days,
		"expiring", result.Expiring,
		"sent", result.Sent,
	)
	return result, nil
}
