package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestLogin_Success signs in with the seeded admin credentials and lands on
// the dashboard.
func TestLogin_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	err := page.Locator("h1:has-text('Dashboard')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("dashboard heading not visible after login: %v", err)
	}
}

// TestLogin_WrongPassword stays on the login page and shows an error.
func TestLogin_WrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to open login page: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(adminEmail); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("definitely-not-it"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit login form: %v", err)
	}

	err := page.Locator(".flash-error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("error message not shown for wrong password: %v", err)
	}
	if !strings.Contains(page.URL(), "/login") {
		t.Errorf("expected to remain on login page, got %s", page.URL())
	}
}

// TestLogin_AnonymousRedirect sends unauthenticated visitors to the login
// page instead of serving protected views.
func TestLogin_AnonymousRedirect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/members"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("anonymous visit was not redirected to login: %v (at %s)", err, page.URL())
	}
}
