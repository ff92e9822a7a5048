package middleware

import (
	"net/http"

	h "plannr/internal/delivery/http/helpers"
)

// Access is who may reach a route.
type Access int

const (
	// Public routes are open to everyone.
	Public Access = iota
	// AnonymousOnly routes send a signed-in user to their home page instead.
	AnonymousOnly
	// Authenticated routes require a signed-in user.
	Authenticated
)

func (a Access) String() string {
	switch a {
	case AnonymousOnly:
		return "anonymous_only"
	case Authenticated:
		return "authenticated"
	}
	return "public"
}

// Kind decides how a refusal is answered: pages redirect, API routes get a JSON envelope.
type Kind int

const (
	Page Kind = iota
	API
)

// Policy is the access rule for one route.
type Policy struct {
	Access Access
	Kind   Kind
	// SignedInHome is where an AnonymousOnly page sends a signed-in user. Defaults to /dashboard.
	SignedInHome string
}

const (
	signInPage      = "/"
	defaultHomePage = "/dashboard"
)

// RequireAccess returns a wrapper that enforces p before next runs. A session that is
// still loading counts as signed out.
func RequireAccess(p Policy) func(http.HandlerFunc) http.HandlerFunc {
	home := p.SignedInHome
	if home == "" {
		home = defaultHomePage
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			signedIn := SessionFromContext(r.Context()).IsAuthenticated()
			switch {
			case p.Access == Authenticated && !signedIn:
				if p.Kind == API {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "sign in required")
					return
				}
				http.Redirect(w, r, signInPage, http.StatusSeeOther)
				return
			case p.Access == AnonymousOnly && signedIn:
				if p.Kind == API {
					h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "already signed in")
					return
				}
				http.Redirect(w, r, home, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
