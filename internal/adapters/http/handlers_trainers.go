package web

import (
	"net/http"

	"fitclub/internal/application/listutil"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/application/projections"
	"fitclub/internal/domain/trainer"
)

// trainerFromForm builds a Trainer from posted form values.
func trainerFromForm(r *http.Request) trainer.Trainer {
	return trainer.Trainer{
		ID:              r.FormValue("id"),
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		Specialization:  r.FormValue("specialization"),
		ExperienceYears: formInt(r, "experience_years"),
		Certification:   r.FormValue("certification"),
		HireDate:        formDate(r, "hire_date"),
		Status:          r.FormValue("status"),
	}
}

// handleTrainerList renders the trainer index with workload figures.
func handleTrainerList(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), nil, []string{"status"})

	query := projections.GetTrainerListQuery{
		ListParams: lp,
		Status:     lp.Filters["status"],
	}
	deps := projections.GetTrainerListDeps{TrainerStore: stores.TrainerStore}

	result, err := projections.QueryGetTrainerList(r.Context(), query, deps)
	if err != nil {
		internalError(w, r, err, "trainer list query failed")
		return
	}

	renderTemplate(w, r, "trainers/index.html", map[string]any{
		"Trainers":       result.Trainers,
		"PageInfo":       result.PageInfo,
		"Search":         lp.Search,
		"Status":         lp.Filters["status"],
		"Statuses":       trainer.Statuses,
		"PerPageOptions": listutil.PerPageOptions,
	})
}

// handleTrainerCreatePage renders the empty trainer form.
func handleTrainerCreatePage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "trainers/create.html", map[string]any{
		"Trainer":  trainer.Trainer{},
		"Statuses": trainer.Statuses,
		"Errors":   map[string]string{},
	})
}

// handleTrainerStore handles the create-form submission.
func handleTrainerStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	t := trainerFromForm(r)
	deps := orchestrators.SaveTrainerDeps{TrainerStore: stores.TrainerStore}

	_, errs, err := orchestrators.ExecuteCreateTrainer(r.Context(), deps, t)
	if err != nil {
		internalError(w, r, err, "trainer create failed")
		return
	}
	if errs.Any() {
		renderTemplate(w, r, "trainers/create.html", map[string]any{
			"Trainer":  t,
			"Statuses": trainer.Statuses,
			"Errors":   errs,
		})
		return
	}

	setFlash(r, "success", "Trainer added successfully!")
	http.Redirect(w, r, "/trainers", http.StatusSeeOther)
}

// handleTrainerEditPage renders the trainer form pre-filled for editing.
func handleTrainerEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	t, err := stores.TrainerStore.GetByID(r.Context(), id)
	if err != nil {
		if err == trainer.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "trainer lookup failed")
		return
	}
	renderTemplate(w, r, "trainers/edit.html", map[string]any{
		"Trainer":  t,
		"Statuses": trainer.Statuses,
		"Errors":   map[string]string{},
	})
}

// handleTrainerUpdate handles the edit-form submission.
func handleTrainerUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	t := trainerFromForm(r)
	deps := orchestrators.SaveTrainerDeps{TrainerStore: stores.TrainerStore}

	errs, err := orchestrators.ExecuteUpdateTrainer(r.Context(), deps, t)
	if err != nil {
		if err == trainer.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "trainer update failed")
		return
	}
	if errs.Any() {
		renderTemplate(w, r, "trainers/edit.html", map[string]any{
			"Trainer":  t,
			"Statuses": trainer.Statuses,
			"Errors":   errs,
		})
		return
	}

	setFlash(r, "success", "Trainer updated successfully!")
	http.Redirect(w, r, "/trainers", http.StatusSeeOther)
}

// handleTrainerView renders one trainer with their assigned plans.
func handleTrainerView(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	t, err := stores.TrainerStore.GetByID(r.Context(), id)
	if err != nil {
		if err == trainer.ErrNotFound {
			renderNotFound(w, r)
			return
		}
		internalError(w, r, err, "trainer lookup failed")
		return
	}

	plans, err := stores.WorkoutPlanStore.ListByTrainer(r.Context(), id)
	if err != nil {
		internalError(w, r, err, "trainer plans query failed")
		return
	}

	renderTemplate(w, r, "trainers/view.html", map[string]any{
		"Trainer": t,
		"Plans":   plans,
	})
}

// handleTrainerDelete removes a trainer and responds with JSON.
// Assigned plans keep running with the trainer reference cleared.
func handleTrainerDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid form submission"})
		return
	}
	id := r.FormValue("id")
	deps := orchestrators.SaveTrainerDeps{TrainerStore: stores.TrainerStore}

	if err := orchestrators.ExecuteDeleteTrainer(r.Context(), deps, id); err != nil {
		if err == trainer.ErrNotFound {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Trainer not found"})
			return
		}
		internalError(w, r, err, "trainer delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Trainer deleted successfully"})
}
