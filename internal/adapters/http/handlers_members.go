package web

import (
	"net/http"

	"fitclub/internal/application/listutil"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/application/projections"
	"fitclub/internal/domain/member"
)

// memberFromForm builds a Member from posted form values.
func memberFromForm(r *http.Request) member.Member {
	return member.Member{
		ID:                    r.FormValue("id"),
		FirstName:             r.FormValue("first_name"),
		LastName:              r.FormValue("last_name"),
		Email:                 r.FormValue("email"),
		Phone:                 r.FormValue("phone"),
		Address:               r.FormValue("address"),
		DateOfBirth:           formDate(r, "date_of_birth"),
		EmergencyContactName:  r.FormValue("emergency_contact_name"),
		EmergencyContactPhone: r.FormValue("emergency_contact_phone"),
		MembershipType:        r.FormValue("membership_type"),
		Status:                r.FormValue("status"),
		StartDate:             formDate(r, "membership_start_date"),
		ExpiryDate:            formDate(r, "membership_expiry_date"),
	}
}

// handleMemberList renders the member index with search, filter and paging.
func handleMemberList(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(),
		projections.MemberSortColumns,
		[]string{"membership_type", "status"},
	)

	query := projections.GetMemberListQuery{
		ListParams:     lp,
		MembershipType: lp.Filters["membership_type"],
		Status:         lp.Filters["status"],
	}
	deps := projections.GetMemberListDeps{MemberStore: stores.MemberStore}

	result, err := projections.QueryGetMemberList(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, r, err, "member list query failed")
		return
	}

	renderTemplate(w, r, "members/index.html", map[string]any{
		"Members":        result.Members,
		"PageInfo":       result.PageInfo,
		"Sort":           lp.Sort,
		"Dir":            lp.Dir,
		"Search":         lp.Search,
		"MembershipType": lp.Filters["membership_type"],
		"Status":         lp.Filters["status"],
		"Types":          member.Types,
		"Statuses":       member.Statuses,
		"PerPageOptions": listutil.PerPageOptions,
		"HasFilters":     lp.Search != "" || lp.Filters["membership_type"] != "" || lp.Filters["status"] != "",
	})
}

// handleMemberCreatePage renders the empty member form.
func handleMemberCreatePage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "members/create.html", map[string]any{
		"Member":   member.Member{},
		"Types":    member.Types,
		"Statuses": member.Statuses,
		"Errors":   map[string]string{},
	})
}

// handleMemberStore handles the create-form submission.
func handleMemberStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	m := memberFromForm(r)
	deps := orchestrators.SaveMemberDeps{MemberStore: stores.MemberStore}

	_, errs, err := orchestrators.ExecuteCreateMember(r.Context(), deps, m)
	if err != nil {
		internalError(w, r, err, "member create failed")
		return
	}
	if errs.Any() {
		renderTemplate(w, r, "members/create.html", map[string]any{
			"Member":   m,
			"Types":    member.Types,
			"Statuses": member.Statuses,
			"Errors":   errs,
		})
		return
	}

	setFlash(r, "success", "Member added successfully!")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberEditPage renders the member form pre-filled for editing.
func handleMemberEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	m, err := stores.MemberStore.GetByID(r.Context(), id)
	if err != nil {
		if err == member.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "member lookup failed")
		return
	}
	renderTemplate(w, r, "members/edit.html", map[string]any{
		"Member":   m,
		"Types":    member.Types,
		"Statuses": member.Statuses,
		"Errors":   map[string]string{},
	})
}

// handleMemberUpdate handles the edit-form submission.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	m := memberFromForm(r)
	deps := orchestrators.SaveMemberDeps{MemberStore: stores.MemberStore}

	errs, err := orchestrators.ExecuteUpdateMember(r.Context(), deps, m)
	if err != nil {
		if err == member.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "member update failed")
		return
	}
	if errs.Any() {
		renderTemplate(w, r, "members/edit.html", map[string]any{
			"Member":   m,
			"Types":    member.Types,
			"Statuses": member.Statuses,
			"Errors":   errs,
		})
		return
	}

	setFlash(r, "success", "Member updated successfully!")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberView renders one member with membership standing and plans.
func handleMemberView(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	deps := projections.GetMemberProfileDeps{
		MemberStore: stores.MemberStore,
		PlanStore:   stores.WorkoutPlanStore,
	}

	result, err := projections.QueryGetMemberProfile(r.Context(), id, deps, timeNow())
	if err != nil {
		if err == member.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "member profile query failed")
		return
	}

	renderTemplate(w, r, "members/view.html", map[string]any{
		"Member":     result.Member,
		"Membership": result.Membership,
		"Plans":      result.Plans,
	})
}

// handleMemberDelete removes a member and responds with JSON.
// The schema cascades the member's workout plans.
func handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	id := r.FormValue("id")
	deps := orchestrators.SaveMemberDeps{MemberStore: stores.MemberStore}

	if err := orchestrators.ExecuteDeleteMember(r.Context(), deps, id); err != nil {
		if err == member.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Member not found"})
			return
		}
		internalError(w, r, err, "member delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Member deleted successfully"})
}
