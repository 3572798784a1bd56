package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
)

// TestMembership_RenewFromExpiringList renews a membership that is about to
// lapse and verifies the new expiry is persisted.
func TestMembership_RenewFromExpiringList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	oldExpiry := time.Now().AddDate(0, 0, 5)
	id := createMemberViaStore(t, app, "Rewi", "Paora", "rewi@test.local", oldExpiry)

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/memberships"); err != nil {
		t.Fatalf("failed to open memberships page: %v", err)
	}

	// The member expires within 30 days, so they appear in the expiring list.
	err := page.Locator("table >> text=Rewi Paora").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("expiring member not listed: %v", err)
	}

	row := page.Locator("tr").Filter(playwright.LocatorFilterOptions{HasText: "Rewi Paora"})
	if _, err := row.Locator("select[name=months]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{"3"},
	}); err != nil {
		t.Fatalf("failed to select renewal term: %v", err)
	}
	if err := row.Locator("button:has-text('Renew')").Click(); err != nil {
		t.Fatalf("failed to click renew: %v", err)
	}

	err = page.Locator(".flash:has-text('Membership renewed until')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("renewal confirmation flash not shown: %v", err)
	}

	renewed, err := app.Stores.MemberStore.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load renewed member: %v", err)
	}
	want := oldExpiry.AddDate(0, 3, 0).Format("2006-01-02")
	if got := renewed.ExpiryDate.Format("2006-01-02"); got != want {
		t.Errorf("expiry after renewal = %s, want %s", got, want)
	}
}

// TestMembership_ExpiringWindowFilter narrows the expiring list to 7 days.
func TestMembership_ExpiringWindowFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	createMemberViaStore(t, app, "Kiri", "Huata", "kiri@test.local", time.Now().AddDate(0, 0, 3))
	createMemberViaStore(t, app, "Tom", "Reed", "tom@test.local", time.Now().AddDate(0, 0, 20))

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/memberships/expiring?days=7"); err != nil {
		t.Fatalf("failed to open expiring view: %v", err)
	}

	err := page.Locator("table >> text=Kiri Huata").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("member expiring in 3 days not listed: %v", err)
	}

	visible, err := page.Locator("table >> text=Tom Reed").IsVisible()
	if err != nil {
		t.Fatalf("failed to check visibility: %v", err)
	}
	if visible {
		t.Error("member expiring in 20 days should be outside the 7-day window")
	}
}
