package web

import (
	"fmt"
	"net/http"
	"strconv"

	"fitclub/internal/application/orchestrators"
	"fitclub/internal/application/projections"
	"fitclub/internal/domain/member"
)

// handleMembershipIndex renders subscription stats and memberships expiring
// within the next 30 days.
func handleMembershipIndex(w http.ResponseWriter, r *http.Request) {
	deps := projections.GetMembershipOverviewDeps{MemberStore: stores.MemberStore}

	result, err := projections.QueryGetMembershipOverview(r.Context(),
		projections.GetMembershipOverviewQuery{}, deps, timeNow())
	if err != nil {
		internalError(w, r, err, "membership overview query failed")
		return
	}

	renderTemplate(w, r, "memberships/index.html", map[string]any{
		"Stats":      result.Stats,
		"Expiring":   result.Expiring,
		"WithinDays": 30,
		"Types":      member.Types,
	})
}

// handleMembershipExpiring renders memberships expiring within ?days= days.
func handleMembershipExpiring(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 7
	}

	deps := projections.GetMembershipOverviewDeps{MemberStore: stores.MemberStore}
	result, err := projections.QueryGetMembershipOverview(r.Context(),
		projections.GetMembershipOverviewQuery{WithinDays: days}, deps, timeNow())
	if err != nil {
		internalError(w, r, err, "expiring memberships query failed")
		return
	}

	renderTemplate(w, r, "memberships/index.html", map[string]any{
		"Stats":      result.Stats,
		"Expiring":   result.Expiring,
		"WithinDays": days,
		"Types":      member.Types,
	})
}

// handleMembershipRenew extends a membership by N months and redirects back.
func handleMembershipRenew(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.RenewMembershipInput{
		MemberID: r.FormValue("member_id"),
		Months:   formInt(r, "months"),
	}
	deps := orchestrators.RenewMembershipDeps{
		MemberStore: stores.MemberStore,
		EmailSender: emailSender,
		EmailFrom:   emailFromAddress,
	}

	result, err := orchestrators.ExecuteRenewMembership(r.Context(), input, deps, timeNow())
	if err != nil {
		if err == member.ErrNotFound {
			setFlash(r, "error", "Member not found")
			http.Redirect(w, r, "/memberships", http.StatusSeeOther)
			return
		}
		internalError(w, r, err, "membership renewal failed")
		return
	}

	setFlash(r, "success", "Membership renewed until "+result.NewExpiry.Format("Jan 02, 2006"))

	redirect := r.FormValue("redirect")
	if !isLocalPath(redirect) {
		redirect = "/memberships"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// isLocalPath accepts only same-site redirect targets. Anything without a
// single leading slash ("https://evil", "//evil", "/\evil") is rejected.
func isLocalPath(p string) bool {
	if len(p) < 1 || p[0] != '/' {
		return false
	}
	return len(p) == 1 || (p[1] != '/' && p[1] != '\\')
}

// handleMembershipRemind emails expiry reminders to everyone in the window.
func handleMembershipRemind(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if emailSender == nil {
		setFlash(r, "error", "Email sending is not configured")
		http.Redirect(w, r, "/memberships", http.StatusSeeOther)
		return
	}

	input := orchestrators.SendExpiryRemindersInput{WithinDays: formInt(r, "days")}
	deps := orchestrators.SendExpiryRemindersDeps{
		MemberStore: stores.MemberStore,
		EmailSender: emailSender,
		EmailFrom:   emailFromAddress,
		ReplyTo:     emailReplyTo,
	}

	result, err := orchestrators.ExecuteSendExpiryReminders(r.Context(), input, deps, timeNow())
	if err != nil {
		internalError(w, r, err, "expiry reminder run failed")
		return
	}

	setFlash(r, "success", fmt.Sprintf("Sent %d reminder emails (%d memberships expiring)", result.Sent, result.Expiring))
	http.Redirect(w, r, "/memberships", http.StatusSeeOther)
}
