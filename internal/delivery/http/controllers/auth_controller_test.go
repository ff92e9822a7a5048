package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"plannr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_SignIn(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		signInErr  error
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{
			name:       "success goes to the dashboard",
			form:       url.Values{"email": {"alice@example.com"}, "password": {"pw"}},
			wantStatus: http.StatusSeeOther,
			wantCalls:  1,
		},
		{
			name:       "invalid email is caught before the backend",
			form:       url.Values{"email": {"alice"}, "password": {"pw"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   msgEmail,
		},
		{
			name:       "missing password",
			form:       url.Values{"email": {"alice@example.com"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   msgPassword,
		},
		{
			name:       "backend detail is shown",
			form:       url.Values{"email": {"alice@example.com"}, "password": {"bad"}},
			signInErr:  &domain.APIError{Op: "sign in", StatusCode: 401, Message: "Invalid credentials", Err: domain.ErrUnauthenticated},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid credentials",
			wantCalls:  1,
		},
		{
			name:       "fallback message",
			form:       url.Values{"email": {"alice@example.com"}, "password": {"bad"}},
			signInErr:  &domain.APIError{Op: "sign in", StatusCode: 401, Err: domain.ErrUnauthenticated},
			wantStatus: http.StatusUnauthorized,
			wantBody:   signInFailed,
			wantCalls:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessions{user: alice, signInErr: tt.signInErr}
			c := NewAuthController(testBase(t), sessions, testCookie)
			sess := anonymous()
			rr := httptest.NewRecorder()

			c.SignIn(rr, newRequest(http.MethodPost, "/signin", tt.form, sess))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalls, sessions.signIns)
			if tt.wantStatus == http.StatusSeeOther {
				assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
				cookies := rr.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, "new-sid", cookies[0].Value)
				return
			}
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			assert.Contains(t, rr.Body.String(), `value="`+tt.form.Get("email")+`"`, "email is kept")
			assert.Equal(t, domain.SessionAnonymous, sess.State)
			assert.Empty(t, rr.Result().Cookies())
		})
	}
}

func TestAuthController_SignUp(t *testing.T) {
	form := url.Values{"email": {"new@example.com"}, "first_name": {"New"}, "last_name": {"User"}, "password": {"pw"}}

	t.Run("success", func(t *testing.T) {
		sessions := &fakeSessions{}
		c := NewAuthController(testBase(t), sessions, testCookie)
		rr := httptest.NewRecorder()
		c.SignUp(rr, newRequest(http.MethodPost, "/signup", form, anonymous()))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
		assert.Equal(t, domain.SignUpInput{Email: "new@example.com", FirstName: "New", LastName: "User", Password: "pw"}, sessions.lastSignUp)
	})

	t.Run("backend refuses", func(t *testing.T) {
		sessions := &fakeSessions{signUpErr: &domain.APIError{Op: "sign up", StatusCode: 400, Message: "Email already registered", Err: domain.ErrInvalidInput}}
		c := NewAuthController(testBase(t), sessions, testCookie)
		rr := httptest.NewRecorder()
		c.SignUp(rr, newRequest(http.MethodPost, "/signup", form, anonymous()))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email already registered")
		assert.Contains(t, rr.Body.String(), `value="New"`)
		assert.NotContains(t, rr.Body.String(), `value="pw"`)
	})

	t.Run("first failing rule", func(t *testing.T) {
		c := NewAuthController(testBase(t), &fakeSessions{}, testCookie)
		rr := httptest.NewRecorder()
		c.SignUp(rr, newRequest(http.MethodPost, "/signup", url.Values{"email": {"new@example.com"}}, anonymous()))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), msgFirstName)
		assert.NotContains(t, rr.Body.String(), msgLastName)
	})
}

func TestAuthController_SignOut(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		sessions := &fakeSessions{}
		c := NewAuthController(testBase(t), sessions, testCookie)
		sess := signedIn(alice)
		rr := httptest.NewRecorder()
		c.SignOut(rr, newRequest(http.MethodPost, "/signout", url.Values{}, sess))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		assert.Equal(t, domain.SessionAnonymous, sess.State)
		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("backend down keeps the session", func(t *testing.T) {
		sessions := &fakeSessions{signOutErr: &domain.APIError{Op: "sign out", Message: "Could not sign out", Err: domain.ErrUnavailable}}
		c := NewAuthController(testBase(t), sessions, testCookie)
		sess := signedIn(alice)
		rr := httptest.NewRecorder()
		c.SignOut(rr, newRequest(http.MethodPost, "/signout", url.Values{}, sess))

		require.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "Could not sign out")
		assert.Equal(t, domain.SessionAuthenticated, sess.State)
		assert.Empty(t, rr.Result().Cookies())
	})
}
