package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/adapters/storage"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and renders the generic 500 page.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if err != nil {
		slog.Error("internal_error", "path", r.URL.Path, "error", err.Error())
	} else {
		slog.Error("internal_error", "path", r.URL.Path, "error", msg)
	}
	renderErrorPage(w, r, http.StatusInternalServerError, "errors/500.html")
}

// renderNotFound renders the 404 page.
func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderErrorPage(w, r, http.StatusNotFound, "errors/404.html")
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int, templateName string) {
	pagePath := filepath.Join(TemplatesDir, templateName)
	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	tpl, err := template.New("layout.html").Funcs(baseFuncMap(r)).ParseFiles(layoutPath, pagePath)
	if err != nil {
		// Last resort when the error templates themselves are broken.
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.Execute(w, map[string]any{"Status": status}); err != nil {
		slog.Error("render_error", "template", templateName, "error", err.Error())
	}
}

// writeJSON encodes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

const templatesDir = "internal/adapters/http/templates"

// TemplatesDir allows tests and main to point at the templates on disk when
// the working directory differs from the repo root.
var TemplatesDir = templatesDir

func baseFuncMap(r *http.Request) template.FuncMap {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	var flash middleware.Flash
	hasFlash := false
	if loggedIn && sessions != nil {
		if token := middleware.SessionToken(r); token != "" {
			flash, hasFlash = sessions.PopFlash(token)
		}
	}

	return template.FuncMap{
		"currentName":  func() string { return sess.Name },
		"currentEmail": func() string { return sess.Email },
		"isLoggedIn":   func() bool { return loggedIn },
		"csrfToken":    func() string { return csrf.Token(r) },
		"hasFlash":     func() bool { return hasFlash },
		"flashKind":    func() string { return flash.Kind },
		"flashMessage": func() string { return flash.Message },
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 02, 2006")
		},
		"inputDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(storage.DateFormat)
		},
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(baseFuncMap(r)).ParseFiles(layoutPath, pagePath)
	if err != nil {
		internalError(w, r, err, "template parse failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		slog.Error("render_error", "template", templateName, "error", err.Error())
	}
}

// setFlash stores a one-shot message against the current session.
func setFlash(r *http.Request, kind, message string) {
	if sessions == nil {
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.SetFlash(token, middleware.Flash{Kind: kind, Message: message})
	}
}

// formDate parses a yyyy-mm-dd form value; empty input yields a zero time.
func formDate(r *http.Request, field string) time.Time {
	v := r.FormValue(field)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(storage.DateFormat, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formInt parses an integer form value; malformed input yields 0.
func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.FormValue(field))
	return n
}
