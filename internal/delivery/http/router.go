package http

import (
	"log/slog"
	"net/http"

	"plannr/internal/delivery/http/controllers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/domain"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups everything the route table dispatches to.
type Controllers struct {
	Home    *controllers.HomeController
	Auth    *controllers.AuthController
	Events  *controllers.EventController
	Invites *controllers.InviteController
	Public  *controllers.PublicController
	API     *controllers.APIController
}

// Route is one row of the route table: who may reach the pattern and what answers it.
type Route struct {
	Pattern string
	Access  middleware.Access
	Kind    middleware.Kind
	// Home overrides where an AnonymousOnly page sends a signed-in user.
	Home    string
	Handler http.HandlerFunc
}

// Routes is the single access policy of the application. Every handler is reached only
// through its row's guard.
func Routes(c Controllers) []Route {
	const (
		pub    = middleware.Public
		anon   = middleware.AnonymousOnly
		authed = middleware.Authenticated
		page   = middleware.Page
		api    = middleware.API
	)
	return []Route{
		// Pages
		{Pattern: "GET /{$}", Access: anon, Kind: page, Home: "/events", Handler: c.Home.Home},
		{Pattern: "GET /signin", Access: anon, Kind: page, Handler: c.Auth.SignInPage},
		{Pattern: "POST /signin", Access: anon, Kind: page, Handler: c.Auth.SignIn},
		{Pattern: "GET /signup", Access: anon, Kind: page, Handler: c.Auth.SignUpPage},
		{Pattern: "POST /signup", Access: anon, Kind: page, Handler: c.Auth.SignUp},
		{Pattern: "POST /signout", Access: authed, Kind: page, Handler: c.Auth.SignOut},
		{Pattern: "GET /dashboard", Access: authed, Kind: page, Handler: c.Home.Dashboard},
		{Pattern: "GET /events", Access: authed, Kind: page, Handler: c.Events.List},
		{Pattern: "POST /events", Access: authed, Kind: page, Handler: c.Events.Create},
		{Pattern: "GET /events/new", Access: authed, Kind: page, Handler: c.Events.New},
		{Pattern: "GET /events/{id}", Access: authed, Kind: page, Handler: c.Events.Show},
		{Pattern: "GET /events/{id}/edit", Access: authed, Kind: page, Handler: c.Events.Edit},
		{Pattern: "POST /events/{id}/edit", Access: authed, Kind: page, Handler: c.Events.Update},
		{Pattern: "GET /events/{id}/delete", Access: authed, Kind: page, Handler: c.Events.ConfirmDelete},
		{Pattern: "POST /events/{id}/delete", Access: authed, Kind: page, Handler: c.Events.Delete},
		{Pattern: "GET /events/{id}/invites/new", Access: authed, Kind: page, Handler: c.Invites.NewForm},
		{Pattern: "POST /events/{id}/invites", Access: authed, Kind: page, Handler: c.Invites.Create},
		{Pattern: "GET /invites", Access: authed, Kind: page, Handler: c.Invites.List},
		{Pattern: "POST /invites/{token}", Access: authed, Kind: page, Handler: c.Invites.Respond},
		{Pattern: "GET /i/{token}", Access: pub, Kind: page, Handler: c.Public.Show},
		{Pattern: "POST /i/{token}", Access: pub, Kind: page, Handler: c.Public.Respond},

		// JSON facade
		{Pattern: "GET /app/api/session", Access: pub, Kind: api, Handler: c.API.Session},
		{Pattern: "POST /app/api/session", Access: anon, Kind: api, Handler: c.API.SignIn},
		{Pattern: "DELETE /app/api/session", Access: authed, Kind: api, Handler: c.API.SignOut},
		{Pattern: "GET /app/api/events", Access: authed, Kind: api, Handler: c.API.ListEvents},
		{Pattern: "POST /app/api/events", Access: authed, Kind: api, Handler: c.API.CreateEvent},
		{Pattern: "GET /app/api/events/{id}", Access: authed, Kind: api, Handler: c.API.GetEvent},
		{Pattern: "PUT /app/api/events/{id}", Access: authed, Kind: api, Handler: c.API.UpdateEvent},
		{Pattern: "DELETE /app/api/events/{id}", Access: authed, Kind: api, Handler: c.API.DeleteEvent},
		{Pattern: "POST /app/api/events/{id}/invites", Access: authed, Kind: api, Handler: c.API.CreateInvite},
		{Pattern: "GET /app/api/invites", Access: authed, Kind: api, Handler: c.API.ListInvites},
		{Pattern: "POST /app/api/invites/{token}/respond", Access: pub, Kind: api, Handler: c.API.RespondToInvite},
		{Pattern: "GET /app/api/public/events/{token}", Access: pub, Kind: api, Handler: c.API.PublicEvent},
	}
}

// NewRouter registers every route behind its guard, plus the Swagger UI.
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()
	for _, rt := range Routes(c) {
		guard := middleware.RequireAccess(middleware.Policy{Access: rt.Access, Kind: rt.Kind, SignedInHome: rt.Home})
		mux.HandleFunc(rt.Pattern, guard(rt.Handler))
	}

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

// HandlerConfig is what the middleware chain needs besides the router.
type HandlerConfig struct {
	Logger         *slog.Logger
	Sessions       domain.SessionService
	Cookie         middleware.SessionCookie
	CSRFKey        []byte
	SecureCookies  bool
	AllowedOrigins []string
}

// NewHandler wraps the router in the middleware chain. The session is bootstrapped before
// the request is logged or routed, so no page runs before authorization is known.
func NewHandler(router http.Handler, cfg HandlerConfig) http.Handler {
	var h http.Handler = router
	h = middleware.CSRF(cfg.CSRFKey, cfg.SecureCookies, cfg.AllowedOrigins)(h)
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	h = middleware.LoadSession(cfg.Sessions, cfg.Cookie)(h)
	h = chimw.Recoverer(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	return h
}
