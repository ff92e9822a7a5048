package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"

	"github.com/gorilla/csrf"
)

// Base carries what every page controller needs to answer a request.
type Base struct {
	Logger *slog.Logger
	Views  *views.Renderer
}

// render fills in the session and CSRF field and writes the named page.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, p views.Page) {
	p.Session = middleware.SessionFromContext(r.Context())
	p.CSRFField = csrf.TemplateField(r)
	if err := b.Views.Render(w, status, name, p); err != nil {
		b.Logger.ErrorContext(r.Context(), "render failed", "page", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// fail answers a page request whose data could not be loaded.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, _ := h.StatusFor(err)
	if status >= http.StatusInternalServerError {
		b.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	b.render(w, r, status, "error", views.Page{Title: domain.UserMessage(err, fallback)})
}

// forbidden is shown when a signed-in user reaches a host-only page of someone else's event.
func (b *Base) forbidden(w http.ResponseWriter, r *http.Request) {
	b.render(w, r, http.StatusForbidden, "error", views.Page{Title: "Only the host can do that"})
}

func (b *Base) notFound(w http.ResponseWriter, r *http.Request) {
	b.render(w, r, http.StatusNotFound, "error", views.Page{Title: "Event not found"})
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// pathID reads a positive integer path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
