package domain

import (
	"context"
	"time"
)

// Event is a gathering hosted by one user.
// swagger:model Event
type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	HostID       int64     `json:"hostId"`
	HostName     string    `json:"hostName"`
	Participants []string  `json:"participants,omitempty"`
}

// IsHostedBy reports whether u hosts the event. Only the host may edit, delete or invite.
func (e *Event) IsHostedBy(u *User) bool {
	return u != nil && e.HostID == u.ID
}

// EventInput is the editable part of an event.
type EventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// EventRole is both the role filter for event lists and the role an invite grants.
type EventRole string

const (
	RoleHost        EventRole = "host"
	RoleParticipant EventRole = "participant"
)

func (r EventRole) Valid() bool {
	return r == RoleHost || r == RoleParticipant
}

type TimeFilter string

const (
	TimeUpcoming TimeFilter = "upcoming"
	TimePast     TimeFilter = "past"
	TimeAll      TimeFilter = "all"
)

func (t TimeFilter) Valid() bool {
	switch t {
	case TimeUpcoming, TimePast, TimeAll:
		return true
	}
	return false
}

// EventFilter scopes an event list along the role and time axes.
type EventFilter struct {
	Role EventRole  `json:"role"`
	Time TimeFilter `json:"time"`
}

// DefaultEventFilter is what the events page shows before any filter is chosen.
func DefaultEventFilter() EventFilter {
	return EventFilter{Role: RoleParticipant, Time: TimeUpcoming}
}

// Validate returns an ErrInvalidInput APIError naming the first bad axis.
func (f EventFilter) Validate() error {
	if !f.Role.Valid() {
		return InvalidInput("list events", "Invalid role. Must be 'host' or 'participant'.")
	}
	if !f.Time.Valid() {
		return InvalidInput("list events", "Invalid time. Must be 'upcoming', 'past', or 'all'.")
	}
	return nil
}

// Participant is an accepted invitee as shown on public event pages.
// swagger:model Participant
type Participant struct {
	Name string    `json:"participantName"`
	Role EventRole `json:"role"`
}

// EventAPI is the backend's event surface. The public calls need no session.
type EventAPI interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	GetEventByToken(ctx context.Context, token string) (*Event, error)
	ListParticipants(ctx context.Context, eventID int64) ([]*Participant, error)
}

// EventDetail is everything the event page shows. The participant and invite lists
// fail independently of the event itself.
type EventDetail struct {
	Event           *Event
	IsHost          bool
	Participants    []*Invite
	ParticipantsErr error
	InviteStatus    InviteStatus
	Invites         []*Invite
	InvitesErr      error
}

// PublicEvent is what an invite link shows to someone who may not be signed in.
type PublicEvent struct {
	Event           *Event
	Participants    []*Participant
	ParticipantsErr error
}

// EventService is the page-facing event workflow. scope keys list fetches so a newer
// fetch in the same scope supersedes an older one; an empty scope is not coordinated.
type EventService interface {
	ListEvents(ctx context.Context, scope string, filter EventFilter) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	GetEventDetail(ctx context.Context, scope string, viewer *User, id int64, inviteStatus InviteStatus) (*EventDetail, error)
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	GetPublicEvent(ctx context.Context, token string) (*PublicEvent, error)
}
