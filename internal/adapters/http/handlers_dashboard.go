package web

import (
	"net/http"

	"fitclub/internal/application/projections"
)

// handleDashboard renders the back-office landing page.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	deps := projections.GetDashboardDeps{
		MemberStore:  stores.MemberStore,
		TrainerStore: stores.TrainerStore,
		PlanStore:    stores.WorkoutPlanStore,
	}

	result, err := projections.QueryGetDashboard(r.Context(), deps, timeNow())
	if err != nil {
		internalError(w, r, err, "dashboard query failed")
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Members":       result.Members,
		"Trainers":      result.Trainers,
		"Plans":         result.Plans,
		"RecentMembers": result.RecentMembers,
		"ExpiringSoon":  result.ExpiringSoon,
	})
}
