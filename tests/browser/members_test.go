package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	memberStore "fitclub/internal/adapters/storage/member"
	memberDomain "fitclub/internal/domain/member"
)

// createMemberViaStore seeds a member directly through the store, bypassing
// the UI, for tests that only need existing data.
func createMemberViaStore(t *testing.T, app *testApp, first, last, email string, expiry time.Time) string {
	t.Helper()
	m := memberDomain.Member{
		ID:             uuid.New().String(),
		FirstName:      first,
		LastName:       last,
		Email:          email,
		Phone:          "021 555 0101",
		MembershipType: memberDomain.TypeStandard,
		Status:         memberDomain.StatusActive,
		StartDate:      expiry.AddDate(0, -6, 0),
		ExpiryDate:     expiry,
		CreatedAt:      time.Now(),
	}
	if err := app.Stores.MemberStore.Save(context.Background(), m); err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return m.ID
}

// TestMember_CreateAndList registers a member through the form and finds
// them in the member list afterwards.
func TestMember_CreateAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/members/create"); err != nil {
		t.Fatalf("failed to open member form: %v", err)
	}

	fields := map[string]string{
		"input[name=first_name]":            "Hana",
		"input[name=last_name]":             "Ngata",
		"input[name=email]":                 "hana.ngata@test.local",
		"input[name=phone]":                 "021 555 0199",
		"input[name=membership_start_date]": "2026-08-01",
		"input[name=membership_expiry_date]": "2027-02-01",
	}
	for selector, value := range fields {
		if err := page.Locator(selector).Fill(value); err != nil {
			t.Fatalf("failed to fill %s: %v", selector, err)
		}
	}
	if _, err := page.Locator("select[name=membership_type]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{memberDomain.TypePremium},
	}); err != nil {
		t.Fatalf("failed to select membership type: %v", err)
	}

	if err := page.Locator("button:has-text('Save Member')").Click(); err != nil {
		t.Fatalf("failed to submit member form: %v", err)
	}

	if err := page.WaitForURL(app.BaseURL+"/members", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("member creation did not redirect to list: %v (at %s)", err, page.URL())
	}

	err := page.Locator("table >> text=Hana Ngata").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("new member not visible in list: %v", err)
	}
}

// TestMember_CreateValidationErrors submits an empty form and expects
// field errors to render inline instead of persisting anything.
func TestMember_CreateValidationErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/members/create"); err != nil {
		t.Fatalf("failed to open member form: %v", err)
	}
	if err := page.Locator("button:has-text('Save Member')").Click(); err != nil {
		t.Fatalf("failed to submit member form: %v", err)
	}

	err := page.Locator(".field-error:has-text('First name is required')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("validation error not shown: %v", err)
	}

	count, err := app.Stores.MemberStore.Count(context.Background(), memberStore.ListFilter{})
	if err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no members persisted after invalid submit, got %d", count)
	}
}

// TestMember_SearchByName filters the member list with the search box.
func TestMember_SearchByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	createMemberViaStore(t, app, "Aroha", "Williams", "aroha@test.local", time.Now().AddDate(1, 0, 0))
	createMemberViaStore(t, app, "Ben", "Clark", "ben@test.local", time.Now().AddDate(1, 0, 0))

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/members?q=Aroha"); err != nil {
		t.Fatalf("failed to open filtered list: %v", err)
	}

	err := page.Locator("table >> text=Aroha Williams").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("matching member not shown: %v", err)
	}

	visible, err := page.Locator("table >> text=Ben Clark").IsVisible()
	if err != nil {
		t.Fatalf("failed to check visibility: %v", err)
	}
	if visible {
		t.Error("non-matching member should be filtered out")
	}
}

// TestMember_ViewProfile opens a member detail page from the list.
func TestMember_ViewProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	id := createMemberViaStore(t, app, "Mere", "Tui", "mere@test.local", time.Now().AddDate(0, 3, 0))

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/members/view?id=" + id); err != nil {
		t.Fatalf("failed to open member profile: %v", err)
	}

	err := page.Locator("h1:has-text('Mere Tui')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("member name not visible on profile: %v", err)
	}
}
