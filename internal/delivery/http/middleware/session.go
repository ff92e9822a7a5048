package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"plannr/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// FetchScopeHeader lets a script running in one browser tab keep its list fetches apart from
// another tab's. Without it every fetch from a browser session shares one scope.
const FetchScopeHeader = "X-Fetch-Scope"

// FetchScope keys list fetches for the JSON API: a newer fetch in the same scope
// supersedes an older one. Requests without a browser session are not coordinated.
func FetchScope(r *http.Request) string {
	sess := SessionFromContext(r.Context())
	if sess.ID == "" {
		return ""
	}
	if tab := strings.TrimSpace(r.Header.Get(FetchScopeHeader)); tab != "" {
		return sess.ID + "/" + tab
	}
	return sess.ID
}

// SetSession returns a context carrying sess.
func SetSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext returns the request's session. A request that never went through
// LoadSession gets a session that is still loading, which every guard treats as signed out.
func SessionFromContext(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(sessionKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	return domain.NewSession()
}

// SessionCookie describes the browser cookie that carries the opaque session id.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Set writes id to the browser.
func (c SessionCookie) Set(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the browser to drop the cookie.
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadSession bootstraps the browser session before anything else sees the request.
// Authenticated requests carry the backend token in their context for the API client.
// A cookie whose session is gone is cleared; one that merely could not be confirmed is kept.
func LoadSession(svc domain.SessionService, cookie SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cookie.Name); err == nil {
				id = c.Value
			}
			sess := svc.Bootstrap(r.Context(), id)
			if id != "" && sess.Stale {
				cookie.Clear(w)
			}

			ctx := SetSession(r.Context(), sess)
			if sess.IsAuthenticated() {
				ctx = domain.WithBackendToken(ctx, sess.Token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
