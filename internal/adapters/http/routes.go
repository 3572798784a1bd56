package web

import (
	"net/http"
	"os"
	"strings"

	"fitclub/internal/adapters/http/middleware"
)

// routeKey identifies one route by method and exact path.
type routeKey struct {
	Method string
	Path   string
}

// publicRoutes are reachable without a session.
var publicRoutes = map[string]bool{
	"/login":  true,
	"/logout": true,
}

// routeTable maps routes to handlers. Paths are matched exactly after
// base-path and query stripping; there are no path parameters.
func routeTable() map[routeKey]http.HandlerFunc {
	return map[routeKey]http.HandlerFunc{
		{http.MethodGet, "/login"}:     handleLoginPage,
		{http.MethodPost, "/login"}:    handleLoginSubmit,
		{http.MethodGet, "/logout"}:    handleLogout,
		{http.MethodGet, "/"}:          handleDashboard,
		{http.MethodGet, "/dashboard"}: handleDashboard,

		{http.MethodGet, "/members"}:         handleMemberList,
		{http.MethodGet, "/members/create"}:  handleMemberCreatePage,
		{http.MethodGet, "/members/edit"}:    handleMemberEditPage,
		{http.MethodGet, "/members/view"}:    handleMemberView,
		{http.MethodGet, "/members/search"}:  handleMemberList,
		{http.MethodPost, "/members/store"}:  handleMemberStore,
		{http.MethodPost, "/members/update"}: handleMemberUpdate,
		{http.MethodPost, "/members/delete"}: handleMemberDelete,

		{http.MethodGet, "/trainers"}:         handleTrainerList,
		{http.MethodGet, "/trainers/create"}:  handleTrainerCreatePage,
		{http.MethodGet, "/trainers/edit"}:    handleTrainerEditPage,
		{http.MethodGet, "/trainers/view"}:    handleTrainerView,
		{http.MethodPost, "/trainers/store"}:  handleTrainerStore,
		{http.MethodPost, "/trainers/update"}: handleTrainerUpdate,
		{http.MethodPost, "/trainers/delete"}: handleTrainerDelete,

		{http.MethodGet, "/memberships"}:          handleMembershipIndex,
		{http.MethodGet, "/memberships/expiring"}: handleMembershipExpiring,
		{http.MethodPost, "/memberships/renew"}:   handleMembershipRenew,
		{http.MethodPost, "/memberships/remind"}:  handleMembershipRemind,

		{http.MethodGet, "/workout-plans"}:                handleWorkoutPlanList,
		{http.MethodGet, "/workout-plans/create"}:         handleWorkoutPlanCreatePage,
		{http.MethodGet, "/workout-plans/edit"}:           handleWorkoutPlanEditPage,
		{http.MethodGet, "/workout-plans/view"}:           handleWorkoutPlanView,
		{http.MethodPost, "/workout-plans/create"}:        handleWorkoutPlanCreate,
		{http.MethodPost, "/workout-plans/update"}:        handleWorkoutPlanUpdate,
		{http.MethodPost, "/workout-plans/update-status"}: handleWorkoutPlanUpdateStatus,
		{http.MethodPost, "/workout-plans/delete"}:        handleWorkoutPlanDelete,

		{http.MethodGet, "/api/membership/validate"}:  handleAPIMembershipValidate,
		{http.MethodGet, "/api/members/search"}:       handleAPIMemberSearch,
		{http.MethodGet, "/api/trainers/search"}:      handleAPITrainerSearch,
		{http.MethodGet, "/api/check-email"}:          handleAPICheckEmail,
		{http.MethodGet, "/api/members/autocomplete"}: handleAPIMemberAutocomplete,
		{http.MethodGet, "/api/perf"}:                 handleAPIPerfSnapshot,
	}
}

// router dispatches requests through the exact-match route table.
type router struct {
	routes   map[routeKey]http.HandlerFunc
	basePath string
}

func newRouter() *router {
	return &router{
		routes:   routeTable(),
		basePath: normalizeBasePath(os.Getenv("FITCLUB_BASE_PATH")),
	}
}

// normalizeBasePath trims trailing slashes so "/fitclub/" and "/fitclub"
// configure the same prefix. Empty and "/" both mean no prefix.
func normalizeBasePath(p string) string {
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// normalizePath strips the configured base-path prefix. The query string is
// never part of r.URL.Path, so only the prefix needs handling here.
func (rt *router) normalizePath(path string) string {
	if rt.basePath != "" && strings.HasPrefix(path, rt.basePath) {
		path = path[len(rt.basePath):]
	}
	if path == "" {
		path = "/"
	}
	return path
}

// ServeHTTP resolves the route and applies the auth gate before dispatch.
// PRE: Auth middleware has already populated the session context
// POST: Exactly one handler, the 404 page, the 500 page, or a login
// redirect is invoked
func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := rt.normalizePath(r.URL.Path)

	handler, ok := rt.routes[routeKey{Method: r.Method, Path: path}]
	if !ok {
		renderNotFound(w, r)
		return
	}

	if !publicRoutes[path] {
		if _, authed := middleware.GetSessionFromContext(r.Context()); !authed {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
	}

	// A registered route with a nil handler is a wiring bug, not a 404.
	if handler == nil {
		internalError(w, r, nil, "route has no handler")
		return
	}
	handler(w, r)
}
