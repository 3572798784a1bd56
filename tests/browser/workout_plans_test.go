package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	planStore "fitclub/internal/adapters/storage/workoutplan"
	trainerDomain "fitclub/internal/domain/trainer"
	planDomain "fitclub/internal/domain/workoutplan"
)

func createTrainerViaStore(t *testing.T, app *testApp, first, last, email string) string {
	t.Helper()
	tr := trainerDomain.Trainer{
		ID:              uuid.New().String(),
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Phone:           "021 555 0202",
		Specialization:  "Strength",
		ExperienceYears: 4,
		HireDate:        time.Now().AddDate(-2, 0, 0),
		Status:          trainerDomain.StatusActive,
		CreatedAt:       time.Now(),
	}
	if err := app.Stores.TrainerStore.Save(context.Background(), tr); err != nil {
		t.Fatalf("failed to seed trainer: %v", err)
	}
	return tr.ID
}

// TestWorkoutPlan_CreateViaForm fills the plan form, which submits via
// fetch, and expects the client-side redirect to the plan list.
func TestWorkoutPlan_CreateViaForm(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	memberID := createMemberViaStore(t, app, "Hemi", "Walker", "hemi@test.local", time.Now().AddDate(1, 0, 0))
	trainerID := createTrainerViaStore(t, app, "Sam", "Kerr", "sam@test.local")

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/workout-plans/create"); err != nil {
		t.Fatalf("failed to open plan form: %v", err)
	}

	if err := page.Locator("input[name=plan_name]").Fill("8 Week Strength Block"); err != nil {
		t.Fatalf("failed to fill plan name: %v", err)
	}
	if err := page.Locator("input[name=plan_type]").Fill("Strength"); err != nil {
		t.Fatalf("failed to fill plan type: %v", err)
	}
	if _, err := page.Locator("select[name=member_id]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{memberID},
	}); err != nil {
		t.Fatalf("failed to select member: %v", err)
	}
	if _, err := page.Locator("select[name=trainer_id]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{trainerID},
	}); err != nil {
		t.Fatalf("failed to select trainer: %v", err)
	}
	if err := page.Locator("input[name=start_date]").Fill("2026-09-07"); err != nil {
		t.Fatalf("failed to fill start date: %v", err)
	}
	if err := page.Locator("input[name=end_date]").Fill("2026-11-02"); err != nil {
		t.Fatalf("failed to fill end date: %v", err)
	}
	if err := page.Locator("input[name=sessions_per_week]").Fill("3"); err != nil {
		t.Fatalf("failed to fill sessions per week: %v", err)
	}
	if err := page.Locator("input[name=session_duration]").Fill("60"); err != nil {
		t.Fatalf("failed to fill session duration: %v", err)
	}

	// First exercise row
	if err := page.Locator("input[name=exercise_name]").First().Fill("Back Squat"); err != nil {
		t.Fatalf("failed to fill exercise name: %v", err)
	}
	if err := page.Locator("input[name=exercise_sets]").First().Fill("5"); err != nil {
		t.Fatalf("failed to fill exercise sets: %v", err)
	}
	if err := page.Locator("input[name=exercise_reps]").First().Fill("5"); err != nil {
		t.Fatalf("failed to fill exercise reps: %v", err)
	}

	if err := page.Locator("button:has-text('Save Plan')").Click(); err != nil {
		t.Fatalf("failed to submit plan form: %v", err)
	}

	if err := page.WaitForURL(app.BaseURL+"/workout-plans", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("plan creation did not redirect to list: %v (at %s)", err, page.URL())
	}

	err := page.Locator("table >> text=8 Week Strength Block").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("new plan not visible in list: %v", err)
	}

	// Duration is derived server-side from the date range, 8 weeks here.
	plans, err := app.Stores.WorkoutPlanStore.Search(context.Background(), planStore.SearchFilter{Limit: 10})
	if err != nil {
		t.Fatalf("failed to load plans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan persisted, got %d", len(plans))
	}
	if plans[0].DurationWeeks != 8 {
		t.Errorf("derived duration = %d weeks, want 8", plans[0].DurationWeeks)
	}
	if plans[0].Status != planDomain.StatusDraft {
		t.Errorf("new plan status = %s, want %s", plans[0].Status, planDomain.StatusDraft)
	}
	if len(plans[0].Exercises) != 1 || plans[0].Exercises[0].Name != "Back Squat" {
		t.Errorf("exercises not persisted as entered: %+v", plans[0].Exercises)
	}
}

// TestWorkoutPlan_CreateValidationErrors submits an empty plan form and
// expects inline field errors from the JSON response, with nothing saved.
func TestWorkoutPlan_CreateValidationErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/workout-plans/create"); err != nil {
		t.Fatalf("failed to open plan form: %v", err)
	}
	if err := page.Locator("button:has-text('Save Plan')").Click(); err != nil {
		t.Fatalf("failed to submit plan form: %v", err)
	}

	err := page.Locator(".field-error:has-text('Plan name is required')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("validation error not shown: %v", err)
	}

	count, err := app.Stores.WorkoutPlanStore.Count(context.Background(), planStore.SearchFilter{})
	if err != nil {
		t.Fatalf("failed to count plans: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no plans persisted after invalid submit, got %d", count)
	}
}
