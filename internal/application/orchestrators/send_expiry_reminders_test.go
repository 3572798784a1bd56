package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitclub/internal/domain/member"
)

// mockMemberStoreForReminders implements MemberStoreForReminders.
type mockMemberStoreForReminders struct {
	expiring []member.Member
	err      error
	lastDays int
}

// ExpiringWithin returns the seeded expiring list and records the window.
// PRE: none
// POST: lastDays holds the requested window
func (s *mockMemberStoreForReminders) ExpiringWithin(_ context.Context, _ time.Time, days int) ([]member.Member, error) {
	s.lastDays = days
	return s.expiring, s.err
}

func TestExecuteSendExpiryReminders(t *testing.T) {
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	expiring := []member.Member{
		{ID: "m1", FirstName: "Jane", Email: "jane@test.com", MembershipType: "Premium",
			ExpiryDate: time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC)},
		{ID: "m2", FirstName: "Rob", Email: "", MembershipType: "Basic",
			ExpiryDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "m3", FirstName: "Ana", Email: "ana@test.com", MembershipType: "Standard",
			ExpiryDate: time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)},
	}

	store := &mockMemberStoreForReminders{expiring: expiring}
	sender := &mockEmailSender{}
	deps := SendExpiryRemindersDeps{
		MemberStore: store,
		EmailSender: sender,
		EmailFrom:   "FitClub <noreply@fitclub.test>",
		ReplyTo:     "frontdesk@fitclub.test",
	}

	result, err := ExecuteSendExpiryReminders(context.Background(), SendExpiryRemindersInput{}, deps, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastDays != 7 {
		t.Errorf("window = %d days, want default 7", store.lastDays)
	}
	if result.Expiring != 3 {
		t.Errorf("Expiring = %d, want 3", result.Expiring)
	}
	// Rob has no email address and is skipped.
	if result.Sent != 2 {
		t.Errorf("Sent = %d, want 2", result.Sent)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sender got %d requests, want 2", len(sender.sent))
	}
	if sender.sent[0].To[0] != "jane@test.com" {
		t.Errorf("first reminder to %v, want jane@test.com", sender.sent[0].To)
	}
	if !strings.Contains(sender.sent[0].HTML, "Jun 18, 2026") {
		t.Errorf("reminder body missing expiry date: %q", sender.sent[0].HTML)
	}
	if sender.sent[0].ReplyTo != "frontdesk@fitclub.test" {
		t.Errorf("ReplyTo = %q, want frontdesk@fitclub.test", sender.sent[0].ReplyTo)
	}
}

func TestExecuteSendExpiryReminders_CustomWindow(t *testing.T) {
	store := &mockMemberStoreForReminders{}
	deps := SendExpiryRemindersDeps{MemberStore: store, EmailSender: &mockEmailSender{}}

	result, err := ExecuteSendExpiryReminders(context.Background(),
		SendExpiryRemindersInput{WithinDays: 30}, deps, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastDays != 30 {
		t.Errorf("window = %d days, want 30", store.lastDays)
	}
	if result.Expiring != 0 || result.Sent != 0 {
		t.Errorf("empty window: got %+v, want zero result", result)
	}
}

func TestExecuteSendExpiryReminders_BatchFailure(t *testing.T) {
	store := &mockMemberStoreForReminders{expiring: []member.Member{
		{ID: "m1", FirstName: "Jane", Email: "jane@test.com", ExpiryDate: time.Now()},
	}}
	sender := &mockEmailSender{err: errors.New("provider down")}
	deps := SendExpiryRemindersDeps{MemberStore: store, EmailSender: sender}

	result, err := ExecuteSendExpiryReminders(context.Background(), SendExpiryRemindersInput{}, deps, time.Now())
	if err == nil {
		t.Fatal("expected error when batch send fails")
	}
	if result.Sent != 0 {
		t.Errorf("Sent = %d after failed batch, want 0", result.Sent)
	}
}
