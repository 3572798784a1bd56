package web

import (
	"net/http"
	"strings"
	"time"

	"fitclub/internal/application/orchestrators"
	"fitclub/internal/domain/membership"
)

// handleAPIMembershipValidate evaluates one member's membership standing.
// An unknown member id is a business outcome, not an HTTP error: the reply is
// 200 with valid=false so front-desk checks always render the same widget.
func handleAPIMembershipValidate(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")
	if memberID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "member_id is required"})
		return
	}

	deps := orchestrators.ValidateMembershipDeps{MemberStore: stores.MemberStore}
	result, err := orchestrators.ExecuteValidateMembership(r.Context(), deps,
		memberID, membership.Truncate(timeNow()))
	if err != nil {
		internalError(w, r, err, "membership validation failed")
		return
	}

	resp := map[string]any{
		"valid":   result.Valid,
		"reason":  result.Reason,
		"warning": result.Warning,
		"message": result.Message,
	}
	if result.Reason != membership.ReasonNotFound {
		resp["member_name"] = result.Member.FullName()
		resp["membership_type"] = result.Member.MembershipType
		resp["days_remaining"] = result.DaysRemaining
		if !result.ExpiryDate.IsZero() {
			resp["expiry_date"] = result.ExpiryDate.Format("2006-01-02")
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPIMemberSearch returns members matching ?q= by name.
func handleAPIMemberSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	members, err := stores.MemberStore.SearchByName(r.Context(), q, 20)
	if err != nil {
		internalError(w, r, err, "member search failed")
		return
	}

	results := make([]map[string]any, 0, len(members))
	for _, m := range members {
		results = append(results, map[string]any{
			"id":              m.ID,
			"name":            m.FullName(),
			"email":           m.Email,
			"membership_type": m.MembershipType,
			"status":          m.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": results})
}

// handleAPITrainerSearch returns trainers matching ?q= by name.
func handleAPITrainerSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	trainers, err := stores.TrainerStore.SearchByName(r.Context(), q, 20)
	if err != nil {
		internalError(w, r, err, "trainer search failed")
		return
	}

	results := make([]map[string]any, 0, len(trainers))
	for _, t := range trainers {
		results = append(results, map[string]any{
			"id":             t.ID,
			"name":           t.FullName(),
			"email":          t.Email,
			"specialization": t.Specialization,
			"status":         t.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"trainers": results})
}

// handleAPICheckEmail reports whether an email is already taken within one
// table. Uniqueness is per table: a member and a trainer may share an email.
func handleAPICheckEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	emailAddr := strings.TrimSpace(q.Get("email"))
	kind := q.Get("type")
	excludeID := q.Get("exclude_id")

	if emailAddr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "email is required"})
		return
	}

	var exists bool
	var err error
	switch kind {
	case "trainer":
		exists, err = stores.TrainerStore.EmailExists(r.Context(), emailAddr, excludeID)
	default:
		exists, err = stores.MemberStore.EmailExists(r.Context(), emailAddr, excludeID)
	}
	if err != nil {
		internalError(w, r, err, "email check failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exists": exists})
}

// handleAPIPerfSnapshot reports request/query timing aggregates for the
// last hour: percentiles plus the slowest routes and store methods.
func handleAPIPerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-1*time.Hour), 10)
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":        true,
		"total_recorded": snap.TotalRecorded,
		"request_p50_ms": snap.RequestP50Ms,
		"request_p95_ms": snap.RequestP95Ms,
		"request_p99_ms": snap.RequestP99Ms,
		"slow_requests":  snap.SlowRequests,
		"slow_queries":   snap.SlowQueries,
	})
}

// handleAPIMemberAutocomplete returns a compact member list for pickers.
func handleAPIMemberAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	members, err := stores.MemberStore.SearchByName(r.Context(), q, 10)
	if err != nil {
		internalError(w, r, err, "member autocomplete failed")
		return
	}

	results := make([]map[string]string, 0, len(members))
	for _, m := range members {
		results = append(results, map[string]string{
			"id":    m.ID,
			"label": m.FullName() + " (" + m.Email + ")",
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": results})
}
