package controllers

import (
	"net/http"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
)

const (
	signInFailed  = "Incorrect email or password"
	signUpFailed  = "Could not create account"
	signOutFailed = "Could not sign out"
	afterSignIn   = "/dashboard"
)

type AuthController struct {
	Base
	Sessions domain.SessionService
	Cookie   middleware.SessionCookie
}

func NewAuthController(base Base, sessions domain.SessionService, cookie middleware.SessionCookie) *AuthController {
	return &AuthController{Base: base, Sessions: sessions, Cookie: cookie}
}

func (c *AuthController) SignInPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "signin", views.Page{Title: "Sign in", Data: SignInForm{}})
}

// SignIn keeps the typed email and shows the first problem inline on failure. The session
// stays anonymous until the backend accepts the credentials.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	form := signInFormFrom(r)
	if msg := h.FirstError(form); msg != "" {
		c.render(w, r, http.StatusBadRequest, "signin", views.Page{Title: "Sign in", Error: msg, Data: SignInForm{Email: form.Email}})
		return
	}
	sess := middleware.SessionFromContext(r.Context())
	if err := c.Sessions.SignIn(r.Context(), sess, form.Credentials()); err != nil {
		status, _ := h.StatusFor(err)
		c.render(w, r, status, "signin", views.Page{
			Title: "Sign in",
			Error: domain.UserMessage(err, signInFailed),
			Data:  SignInForm{Email: form.Email},
		})
		return
	}
	c.Cookie.Set(w, sess.ID)
	redirect(w, r, afterSignIn)
}

func (c *AuthController) SignUpPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "signup", views.Page{Title: "Sign up", Data: SignUpForm{}})
}

func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	form := signUpFormFrom(r)
	echo := SignUpForm{Email: form.Email, FirstName: form.FirstName, LastName: form.LastName}
	if msg := h.FirstError(form); msg != "" {
		c.render(w, r, http.StatusBadRequest, "signup", views.Page{Title: "Sign up", Error: msg, Data: echo})
		return
	}
	sess := middleware.SessionFromContext(r.Context())
	if err := c.Sessions.SignUp(r.Context(), sess, form.Input()); err != nil {
		status, _ := h.StatusFor(err)
		c.render(w, r, status, "signup", views.Page{Title: "Sign up", Error: domain.UserMessage(err, signUpFailed), Data: echo})
		return
	}
	c.Cookie.Set(w, sess.ID)
	redirect(w, r, afterSignIn)
}

// SignOut only drops the cookie once the backend confirmed the sign-out.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := c.Sessions.SignOut(r.Context(), sess); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		status, _ := h.StatusFor(err)
		c.render(w, r, status, "error", views.Page{Title: domain.UserMessage(err, signOutFailed)})
		return
	}
	c.Cookie.Clear(w)
	redirect(w, r, "/")
}
