package web

import (
	"context"
	"net/http"

	memberstore "fitclub/internal/adapters/storage/member"
	planstore "fitclub/internal/adapters/storage/workoutplan"
	"fitclub/internal/application/listutil"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/application/projections"
	"fitclub/internal/domain/workoutplan"
)

// planSaveStore adapts the storage Store to orchestrators.PlanStoreForSave,
// whose GetByID returns the bare domain Plan rather than the joined PlanRow.
type planSaveStore struct {
	planstore.Store
}

func (s planSaveStore) GetByID(ctx context.Context, id string) (workoutplan.Plan, error) {
	row, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return workoutplan.Plan{}, err
	}
	return row.Plan, nil
}

// planFromForm builds a Plan from posted form values. Exercises arrive as
// parallel exercise_name/exercise_sets/exercise_reps/exercise_notes arrays.
func planFromForm(r *http.Request) workoutplan.Plan {
	p := workoutplan.Plan{
		ID:              r.FormValue("id"),
		MemberID:        r.FormValue("member_id"),
		TrainerID:       r.FormValue("trainer_id"),
		PlanName:        r.FormValue("plan_name"),
		PlanType:        r.FormValue("plan_type"),
		Description:     r.FormValue("description"),
		Goals:           r.FormValue("goals"),
		Notes:           r.FormValue("notes"),
		StartDate:       formDate(r, "start_date"),
		EndDate:         formDate(r, "end_date"),
		SessionsPerWeek: formInt(r, "sessions_per_week"),
		SessionDuration: formInt(r, "session_duration"),
		DifficultyLevel: r.FormValue("difficulty_level"),
		Status:          r.FormValue("status"),
	}

	names := r.Form["exercise_name"]
	sets := r.Form["exercise_sets"]
	reps := r.Form["exercise_reps"]
	notes := r.Form["exercise_notes"]
	for i, name := range names {
		if name == "" {
			continue
		}
		ex := workoutplan.Exercise{Name: name}
		if i < len(sets) {
			ex.Sets = sets[i]
		}
		if i < len(reps) {
			ex.Reps = reps[i]
		}
		if i < len(notes) {
			ex.Notes = notes[i]
		}
		p.Exercises = append(p.Exercises, ex)
	}
	return p
}

// memberListForForms is the filter used to populate member dropdowns.
func memberListForForms() memberstore.ListFilter {
	return memberstore.ListFilter{Sort: "last_name", Dir: "asc", Limit: 500}
}

// planFormData returns the shared template data for the plan forms.
func planFormData(r *http.Request) (map[string]any, error) {
	members, err := stores.MemberStore.List(r.Context(), memberListForForms())
	if err != nil {
		return nil, err
	}
	trainers, err := stores.TrainerStore.ListActive(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"Members":  members,
		"Trainers": trainers,
		"Statuses": workoutplan.Statuses,
	}, nil
}

// handleWorkoutPlanList renders the plan index. The lazy completion sweep
// runs inside the projection before rows are read.
func handleWorkoutPlanList(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), nil, []string{"status", "member_id", "trainer_id"})

	query := projections.GetPlanListQuery{
		ListParams: lp,
		MemberID:   lp.Filters["member_id"],
		TrainerID:  lp.Filters["trainer_id"],
		Status:     lp.Filters["status"],
	}
	deps := projections.GetPlanListDeps{PlanStore: stores.WorkoutPlanStore}

	result, err := projections.QueryGetPlanList(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, r, err, "plan list query failed")
		return
	}

	renderTemplate(w, r, "workout-plans/index.html", map[string]any{
		"Plans":          result.Plans,
		"Stats":          result.Stats,
		"PageInfo":       result.PageInfo,
		"Search":         lp.Search,
		"Status":         lp.Filters["status"],
		"Statuses":       workoutplan.Statuses,
		"PerPageOptions": listutil.PerPageOptions,
	})
}

// handleWorkoutPlanCreatePage renders the empty plan form.
func handleWorkoutPlanCreatePage(w http.ResponseWriter, r *http.Request) {
	data, err := planFormData(r)
	if err != nil {
		internalError(w, r, err, "plan form data failed")
		return
	}
	data["Plan"] = workoutplan.Plan{}
	data["Errors"] = map[string]string{}
	renderTemplate(w, r, "workout-plans/create.html", data)
}

// handleWorkoutPlanCreate handles the create submission. The form posts via
// fetch, so validation failures come back as JSON rather than a re-render.
func handleWorkoutPlanCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	p := planFromForm(r)
	deps := orchestrators.SavePlanDeps{
		PlanStore:   planSaveStore{stores.WorkoutPlanStore},
		MemberStore: stores.MemberStore,
	}

	id, errs, err := orchestrators.ExecuteCreatePlan(r.Context(), deps, p)
	if err != nil {
		internalError(w, r, err, "plan create failed")
		return
	}
	if errs.Any() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "errors": errs})
		return
	}

	setFlash(r, "success", "Workout plan created successfully!")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id, "redirect": "/workout-plans"})
}

// handleWorkoutPlanEditPage renders the plan form pre-filled for editing.
func handleWorkoutPlanEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	row, err := stores.WorkoutPlanStore.GetByID(r.Context(), id)
	if err != nil {
		if err == workoutplan.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "plan lookup failed")
		return
	}

	data, err := planFormData(r)
	if err != nil {
		internalError(w, r, err, "plan form data failed")
		return
	}
	data["Plan"] = row.Plan
	data["Errors"] = map[string]string{}
	renderTemplate(w, r, "workout-plans/edit.html", data)
}

// handleWorkoutPlanUpdate handles the edit submission.
func handleWorkoutPlanUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	p := planFromForm(r)
	deps := orchestrators.SavePlanDeps{
		PlanStore:   planSaveStore{stores.WorkoutPlanStore},
		MemberStore: stores.MemberStore,
	}

	errs, err := orchestrators.ExecuteUpdatePlan(r.Context(), deps, p)
	if err != nil {
		if err == workoutplan.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Workout plan not found"})
			return
		}
		internalError(w, r, err, "plan update failed")
		return
	}
	if errs.Any() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "errors": errs})
		return
	}

	setFlash(r, "success", "Workout plan updated successfully!")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": "/workout-plans"})
}

// handleWorkoutPlanView renders one plan with member and trainer details.
func handleWorkoutPlanView(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	row, err := stores.WorkoutPlanStore.GetByID(r.Context(), id)
	if err != nil {
		if err == workoutplan.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "plan lookup failed")
		return
	}
	renderTemplate(w, r, "workout-plans/view.html", map[string]any{
		"Plan":     row,
		"Statuses": workoutplan.Statuses,
	})
}

// handleWorkoutPlanUpdateStatus transitions a plan's status and responds JSON.
func handleWorkoutPlanUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	id := r.FormValue("id")
	status := r.FormValue("status")
	deps := orchestrators.SavePlanDeps{
		PlanStore:   planSaveStore{stores.WorkoutPlanStore},
		MemberStore: stores.MemberStore,
	}

	if err := orchestrators.ExecuteUpdatePlanStatus(r.Context(), deps, id, status); err != nil {
		switch err {
		case workoutplan.ErrInvalidStatus:
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "message": "Invalid status"})
		case workoutplan.ErrNotFound:
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Workout plan not found"})
		default:
			internalError(w, r, err, "plan status update failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Status updated"})
}

// handleWorkoutPlanDelete removes a plan and responds JSON.
func handleWorkoutPlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	id := r.FormValue("id")
	deps := orchestrators.SavePlanDeps{
		PlanStore:   planSaveStore{stores.WorkoutPlanStore},
		MemberStore: stores.MemberStore,
	}

	if err := orchestrators.ExecuteDeletePlan(r.Context(), deps, id); err != nil {
		if err == workoutplan.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Workout plan not found"})
			return
		}
		internalError(w, r, err, "plan delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Workout plan deleted successfully"})
}
