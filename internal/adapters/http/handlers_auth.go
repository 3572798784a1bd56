package web

import (
	"net/http"

	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/application/orchestrators"
)

// handleLoginPage renders the login form.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handleLoginSubmit authenticates the posted credentials and starts a session.
func handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.LoginDeps{AccountStore: stores.AccountStore}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		msg := "Invalid email or password"
		if err == orchestrators.ErrAccountLocked {
			msg = "Account is locked. Try again later."
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": msg,
			"Email": input.Email,
		})
		return
	}

	token, err := sessions.Create(result.AccountID, result.Name, result.Email)
	if err != nil {
		internalError(w, r, err, "session create failed")
		return
	}
	middleware.SetSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout ends the session and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
