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

func publicDinner() *domain.PublicEvent {
	return &domain.PublicEvent{
		Event:        dinner,
		Participants: []*domain.Participant{{Name: "Bob Jones", Role: domain.RoleParticipant}},
	}
}

func TestPublicController_Show(t *testing.T) {
	t.Run("anonymous visitor sees the event", func(t *testing.T) {
		c := NewPublicController(testBase(t), &fakeEvents{public: publicDinner()}, &fakeInvites{})
		rr := httptest.NewRecorder()

		c.Show(rr, newRequest(http.MethodGet, "/i/tok", nil, anonymous(), "token", "tok"))

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "invited to Dinner")
		assert.Contains(t, body, "Bob Jones (participant)")
		assert.Contains(t, body, `action="/i/tok"`)
	})

	t.Run("unknown token", func(t *testing.T) {
		events := &fakeEvents{publicErr: &domain.APIError{Op: "public event", StatusCode: 404, Err: domain.ErrNotFound}}
		c := NewPublicController(testBase(t), events, &fakeInvites{})
		rr := httptest.NewRecorder()

		c.Show(rr, newRequest(http.MethodGet, "/i/nope", nil, anonymous(), "token", "nope"))

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Event not found")
	})
}

func TestPublicController_Respond(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		respondErr error
		wantStatus int
		wantBody   string
		wantForm   bool
	}{
		{name: "accept", status: "accepted", wantStatus: http.StatusOK, wantBody: "You accepted the invite"},
		{name: "decline", status: "declined", wantStatus: http.StatusOK, wantBody: "You declined the invite"},
		{name: "no choice", status: "", wantStatus: http.StatusBadRequest, wantBody: msgInviteStatus, wantForm: true},
		{
			name:       "already answered",
			status:     "accepted",
			respondErr: &domain.APIError{Op: "respond to invite", StatusCode: 400, Message: "Invalid or expired invite", Err: domain.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid or expired invite",
			wantForm:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPublicController(testBase(t), &fakeEvents{public: publicDinner()}, &fakeInvites{respondErr: tt.respondErr})
			rr := httptest.NewRecorder()

			c.Respond(rr, newRequest(http.MethodPost, "/i/tok", url.Values{"status": {tt.status}}, anonymous(), "token", "tok"))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			if tt.wantForm {
				assert.Contains(t, rr.Body.String(), `action="/i/tok"`)
			} else {
				assert.NotContains(t, rr.Body.String(), `action="/i/tok"`)
			}
		})
	}
}
