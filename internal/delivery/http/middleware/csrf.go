package middleware

import (
	"net/http"
	"net/url"
	"strings"

	h "plannr/internal/delivery/http/helpers"

	"github.com/gorilla/csrf"
)

// CSRFHeader is where JSON clients send the token they got from the session endpoint.
const CSRFHeader = "X-CSRF-Token"

// CSRF protects every unsafe request with gorilla/csrf. Forms carry the token in a hidden
// field; JSON clients send CSRFHeader. Over plain HTTP (secure false) the request is marked
// as such so the referer check does not demand TLS.
func CSRF(key []byte, secure bool, trustedOrigins []string) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader(CSRFHeader),
		csrf.TrustedOrigins(originHosts(trustedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/app/api/") {
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "invalid CSRF token")
		return
	}
	http.Error(w, "Forbidden - invalid CSRF token. Reload the page and try again.", http.StatusForbidden)
}

// originHosts turns "https://app.example.com" into the "app.example.com" form csrf wants.
func originHosts(origins []string) []string {
	var hosts []string
	for _, o := range origins {
		if u, err := url.Parse(strings.TrimSpace(o)); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}
