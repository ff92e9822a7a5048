package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plannr/internal/domain"

	"golang.org/x/sync/errgroup"
)

type eventService struct {
	events         domain.EventAPI
	invites        domain.InviteAPI
	fetches        *FetchCoordinator
	contextTimeout time.Duration
}

func NewEventService(events domain.EventAPI, invites domain.InviteAPI, fetches *FetchCoordinator, timeout time.Duration) domain.EventService {
	return &eventService{
		events:         events,
		invites:        invites,
		fetches:        fetches,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, scope string, filter domain.EventFilter) ([]*domain.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return latestIn(ctx, s.fetches, scope, "events", func(ctx context.Context) ([]*domain.Event, error) {
		return s.events.ListEvents(ctx, filter)
	})
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.GetEvent(ctx, id)
}

// GetEventDetail loads an event, its accepted participants and, for the host only, its
// invites filtered by inviteStatus. The two lists are fetched concurrently and a failure
// in either is reported on the detail rather than failing the page. A newer detail fetch
// for the same event in scope supersedes this one.
func (s *eventService) GetEventDetail(ctx context.Context, scope string, viewer *domain.User, id int64, inviteStatus domain.InviteStatus) (*domain.EventDetail, error) {
	if inviteStatus == "" {
		inviteStatus = domain.InviteAccepted
	}
	if !inviteStatus.ValidFilter() {
		return nil, domain.InvalidInput("get event detail", "Invalid status.")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	detail := &domain.EventDetail{
		Event:        event,
		IsHost:       event.IsHostedBy(viewer),
		InviteStatus: inviteStatus,
	}

	view := fmt.Sprintf("event:%d", id)
	list := func(name string, filter domain.InviteFilter) ([]*domain.Invite, error) {
		return latestIn(ctx, s.fetches, scope, view+":"+name, func(ctx context.Context) ([]*domain.Invite, error) {
			return s.invites.ListInvites(ctx, filter)
		})
	}

	var g errgroup.Group
	g.Go(func() error {
		detail.Participants, detail.ParticipantsErr = list("participants", domain.InviteFilter{
			Status:  domain.InviteAccepted,
			EventID: id,
		})
		return nil
	})
	if detail.IsHost {
		g.Go(func() error {
			detail.Invites, detail.InvitesErr = list("invites", domain.InviteFilter{
				Status:  inviteStatus,
				EventID: id,
			})
			return nil
		})
	}
	_ = g.Wait()
	if errors.Is(detail.ParticipantsErr, domain.ErrSuperseded) || errors.Is(detail.InvitesErr, domain.ErrSuperseded) {
		return nil, fmt.Errorf("get event detail: %w", domain.ErrSuperseded)
	}
	return detail, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.CreateEvent(ctx, in)
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.UpdateEvent(ctx, id, in)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.DeleteEvent(ctx, id)
}

// GetPublicEvent resolves an invite token to its event and the event's participants.
func (s *eventService) GetPublicEvent(ctx context.Context, token string) (*domain.PublicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetEventByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get event by token: %w", err)
	}
	pub := &domain.PublicEvent{Event: event}
	pub.Participants, pub.ParticipantsErr = s.events.ListParticipants(ctx, event.ID)
	return pub, nil
}
