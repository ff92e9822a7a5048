package domain

import (
	"context"
	"time"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
	// InviteAny is only meaningful as a list filter.
	InviteAny InviteStatus = "all"
)

// Valid reports whether s is a status an invite can actually have.
func (s InviteStatus) Valid() bool {
	switch s {
	case InvitePending, InviteAccepted, InviteDeclined:
		return true
	}
	return false
}

// ValidFilter reports whether s can scope an invite list.
func (s InviteStatus) ValidFilter() bool {
	return s == InviteAny || s.Valid()
}

// IsResponse reports whether s is something an invitee can answer with.
func (s InviteStatus) IsResponse() bool {
	return s == InviteAccepted || s == InviteDeclined
}

// CanTransitionTo reports whether an invite in status s may move to next.
// Invites move pending -> accepted|declined once and never back.
func (s InviteStatus) CanTransitionTo(next InviteStatus) bool {
	return s == InvitePending && next.IsResponse()
}

// EventSummary is the event embedded in an invite.
type EventSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	HostID      int64     `json:"hostId"`
	HostName    string    `json:"hostName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Invite grants an email address a role in an event. Token is a capability: whoever
// holds it can respond without signing in.
// swagger:model Invite
type Invite struct {
	ID       int64        `json:"id"`
	Token    string       `json:"token"`
	Email    string       `json:"email"`
	Role     EventRole    `json:"role"`
	Status   InviteStatus `json:"status"`
	UserName string       `json:"userName,omitempty"`
	Event    EventSummary `json:"event"`
}

// CanRespond reports whether the invitee may still accept or decline.
func (i *Invite) CanRespond() bool {
	return i.Status == InvitePending
}

type InviteInput struct {
	Email string
	Role  EventRole
}

// InviteFilter scopes an invite list. Zero ids and an empty or "all" status mean no filter.
type InviteFilter struct {
	Status  InviteStatus `json:"status"`
	EventID int64        `json:"eventId"`
	UserID  int64        `json:"userId"`
}

type InviteAPI interface {
	CreateInvite(ctx context.Context, eventID int64, in InviteInput) (*Invite, error)
	ListInvites(ctx context.Context, filter InviteFilter) ([]*Invite, error)
	RespondToInvite(ctx context.Context, token string, status InviteStatus) (*Invite, error)
}

type InviteService interface {
	ListInvites(ctx context.Context, scope string, filter InviteFilter) ([]*Invite, error)
	CreateInvite(ctx context.Context, eventID int64, in InviteInput) (*Invite, error)
	Respond(ctx context.Context, token string, status InviteStatus) (*Invite, error)
}
