package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plannr/internal/domain"
)

type inviteService struct {
	invites        domain.InviteAPI
	fetches        *FetchCoordinator
	contextTimeout time.Duration
}

func NewInviteService(invites domain.InviteAPI, fetches *FetchCoordinator, timeout time.Duration) domain.InviteService {
	return &inviteService{
		invites:        invites,
		fetches:        fetches,
		contextTimeout: timeout,
	}
}

func (s *inviteService) ListInvites(ctx context.Context, scope string, filter domain.InviteFilter) ([]*domain.Invite, error) {
	if filter.Status == "" {
		filter.Status = domain.InviteAny
	}
	if !filter.Status.ValidFilter() {
		return nil, domain.InvalidInput("list invites", "Invalid status.")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	view := fmt.Sprintf("invites:%d", filter.EventID)
	return latestIn(ctx, s.fetches, scope, view, func(ctx context.Context) ([]*domain.Invite, error) {
		return s.invites.ListInvites(ctx, filter)
	})
}

func (s *inviteService) CreateInvite(ctx context.Context, eventID int64, in domain.InviteInput) (*domain.Invite, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, domain.InvalidInput("create invite", "Please enter a valid email address")
	}
	if !in.Role.Valid() {
		return nil, domain.InvalidInput("create invite", "Please select a role")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.invites.CreateInvite(ctx, eventID, in)
}

// Respond answers an invite. Only pending invites accept a response; the backend turns
// away a second one with "Invalid or expired invite".
func (s *inviteService) Respond(ctx context.Context, token string, status domain.InviteStatus) (*domain.Invite, error) {
	if !domain.InvitePending.CanTransitionTo(status) {
		return nil, domain.InvalidInput("respond to invite", "Invalid status.")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.invites.RespondToInvite(ctx, token, status)
}
