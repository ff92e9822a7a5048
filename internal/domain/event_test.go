package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  EventFilter
		wantMsg string
	}{
		{"default", DefaultEventFilter(), ""},
		{"host past", EventFilter{Role: RoleHost, Time: TimePast}, ""},
		{"participant all", EventFilter{Role: RoleParticipant, Time: TimeAll}, ""},
		{"empty role", EventFilter{Time: TimeAll}, "Invalid role. Must be 'host' or 'participant'."},
		{"unknown role", EventFilter{Role: "guest", Time: TimeAll}, "Invalid role. Must be 'host' or 'participant'."},
		{"unknown time", EventFilter{Role: RoleHost, Time: "tomorrow"}, "Invalid time. Must be 'upcoming', 'past', or 'all'."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantMsg, UserMessage(err, ""))
		})
	}
}

func TestEvent_IsHostedBy(t *testing.T) {
	e := &Event{ID: 1, HostID: 42}
	assert.True(t, e.IsHostedBy(&User{ID: 42}))
	assert.False(t, e.IsHostedBy(&User{ID: 43}))
	assert.False(t, e.IsHostedBy(nil))
}

func TestInviteStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to InviteStatus
		want     bool
	}{
		{InvitePending, InviteAccepted, true},
		{InvitePending, InviteDeclined, true},
		{InvitePending, InvitePending, false},
		{InvitePending, InviteAny, false},
		{InviteAccepted, InviteDeclined, false},
		{InviteDeclined, InviteAccepted, false},
		{InviteAccepted, InviteAccepted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, InviteAny.ValidFilter())
	assert.False(t, InviteAny.Valid())
}

func TestUserMessage(t *testing.T) {
	apiErr := &APIError{Op: "get event", StatusCode: 404, Message: "Event not found", Err: ErrNotFound}
	wrapped := errors.Join(errors.New("context"), apiErr)

	assert.Equal(t, "Event not found", UserMessage(apiErr, "fallback"))
	assert.Equal(t, "Event not found", UserMessage(wrapped, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "get event: Event not found (status 404)", apiErr.Error())
}
