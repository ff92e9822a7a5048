package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"plannr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteController_Create(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		user       *domain.User
		createErr  error
		wantStatus int
		wantLoc    string
		wantBody   string
		wantSent   int
	}{
		{
			name:       "sent",
			form:       url.Values{"email": {"bob@example.com"}, "role": {"participant"}},
			user:       alice,
			wantStatus: http.StatusSeeOther,
			wantLoc:    "/events/7?invite_sent=1",
			wantSent:   1,
		},
		{
			name:       "bad email",
			form:       url.Values{"email": {"bob"}, "role": {"participant"}},
			user:       alice,
			wantStatus: http.StatusBadRequest,
			wantBody:   msgEmail,
		},
		{
			name:       "no role",
			form:       url.Values{"email": {"bob@example.com"}},
			user:       alice,
			wantStatus: http.StatusBadRequest,
			wantBody:   msgRole,
		},
		{
			name:       "not the host",
			form:       url.Values{"email": {"carol@example.com"}, "role": {"participant"}},
			user:       bob,
			wantStatus: http.StatusForbidden,
			wantBody:   "Only the host can do that",
		},
		{
			name:       "backend refuses",
			form:       url.Values{"email": {"bob@example.com"}, "role": {"host"}},
			user:       alice,
			createErr:  &domain.APIError{Op: "create invite", StatusCode: 409, Message: "User already invited", Err: domain.ErrConflict},
			wantStatus: http.StatusConflict,
			wantBody:   "User already invited",
			wantSent:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invites := &fakeInvites{createErr: tt.createErr}
			c := NewInviteController(testBase(t), &fakeEvents{event: dinner}, invites)
			rr := httptest.NewRecorder()

			c.Create(rr, newRequest(http.MethodPost, "/events/7/invites", tt.form, signedIn(tt.user), "id", "7"))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Len(t, invites.created, tt.wantSent)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rr.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestInviteController_List(t *testing.T) {
	pending := &domain.Invite{Token: "tok-pending", Role: domain.RoleParticipant, Status: domain.InvitePending, Event: domain.EventSummary{ID: 7, Title: "Dinner", HostName: "Alice Smith"}}
	accepted := &domain.Invite{Token: "tok-accepted", Role: domain.RoleParticipant, Status: domain.InviteAccepted, Event: domain.EventSummary{ID: 8, Title: "Picnic", HostName: "Bob Jones"}}

	t.Run("pending by default with answer buttons", func(t *testing.T) {
		invites := &fakeInvites{invites: []*domain.Invite{pending, accepted}}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.List(rr, newRequest(http.MethodGet, "/invites", nil, signedIn(bob)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.InviteFilter{Status: domain.InvitePending}, invites.lastFilter)
		assert.Empty(t, invites.lastScope, "page loads are not coordinated")
		body := rr.Body.String()
		assert.Contains(t, body, `action="/invites/tok-pending"`)
		assert.NotContains(t, body, `action="/invites/tok-accepted"`)
		assert.Equal(t, 1, strings.Count(body, ">Accept</button>"))
	})

	t.Run("empty", func(t *testing.T) {
		invites := &fakeInvites{}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.List(rr, newRequest(http.MethodGet, "/invites?status=declined", nil, signedIn(bob)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.InviteDeclined, invites.lastFilter.Status)
		assert.Contains(t, rr.Body.String(), "No invites found.")
	})

	t.Run("backend down", func(t *testing.T) {
		invites := &fakeInvites{listErr: &domain.APIError{Op: "list invites", Err: domain.ErrUnavailable}}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.List(rr, newRequest(http.MethodGet, "/invites", nil, signedIn(bob)))

		require.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to fetch invites")
		assert.NotContains(t, rr.Body.String(), "No invites found.")
	})
}

func TestInviteController_Respond(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		invites := &fakeInvites{}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.Respond(rr, newRequest(http.MethodPost, "/invites/tok", url.Values{"status": {"accepted"}}, signedIn(bob), "token", "tok"))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/invites?status=accepted", rr.Header().Get("Location"))
		assert.Equal(t, []domain.InviteStatus{domain.InviteAccepted}, invites.responses)
	})

	t.Run("pending is not an answer", func(t *testing.T) {
		invites := &fakeInvites{}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.Respond(rr, newRequest(http.MethodPost, "/invites/tok", url.Values{"status": {"pending"}}, signedIn(bob), "token", "tok"))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), msgInviteStatus)
		assert.Empty(t, invites.responses)
	})

	t.Run("second answer is refused", func(t *testing.T) {
		invites := &fakeInvites{respondErr: &domain.APIError{Op: "respond to invite", StatusCode: 400, Message: "Invalid or expired invite", Err: domain.ErrInvalidInput}}
		c := NewInviteController(testBase(t), &fakeEvents{}, invites)
		rr := httptest.NewRecorder()

		c.Respond(rr, newRequest(http.MethodPost, "/invites/tok", url.Values{"status": {"declined"}}, signedIn(bob), "token", "tok"))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid or expired invite")
		assert.Equal(t, domain.InvitePending, invites.lastFilter.Status)
	})
}
