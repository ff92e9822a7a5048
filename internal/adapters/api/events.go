package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"plannr/internal/domain"
)

func (c *Client) eventPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.eventsPath, id)
}

// ListEvents returns the events matching filter, ordered by the backend. An invalid
// filter is rejected without a request.
func (c *Client) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	e := endpoint{
		op:      "list events",
		method:  http.MethodGet,
		path:    c.eventsPath,
		query:   url.Values{"role": {string(filter.Role)}, "time": {string(filter.Time)}},
		failMsg: fmt.Sprintf("Failed to fetch %s events where the user is a %s", filter.Time, filter.Role),
	}
	var ws []eventWire
	if _, err := c.call(ctx, e, &ws); err != nil {
		return nil, err
	}
	return eventsFromWire(ws), nil
}

func (c *Client) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	e := endpoint{
		op:      "create event",
		method:  http.MethodPost,
		path:    c.eventsPath,
		body:    eventInputToWire(in),
		failMsg: "Failed to create event",
	}
	return c.event(ctx, e)
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e := endpoint{
		op:          "get event",
		method:      http.MethodGet,
		path:        c.eventPath(id),
		failMsg:     "Failed to fetch event",
		notFoundMsg: "Event not found",
	}
	return c.event(ctx, e)
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	e := endpoint{
		op:          "update event",
		method:      http.MethodPut,
		path:        c.eventPath(id),
		body:        eventInputToWire(in),
		failMsg:     "Failed to update event",
		notFoundMsg: "Event not found",
	}
	return c.event(ctx, e)
}

// DeleteEvent returns nil once the backend confirms the deletion. Deleting an id that is
// already gone yields ErrNotFound every time.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	e := endpoint{
		op:          "delete event",
		method:      http.MethodDelete,
		path:        c.eventPath(id),
		failMsg:     "Failed to delete event",
		notFoundMsg: "Event not found",
	}
	_, err := c.call(ctx, e, nil)
	return err
}

// GetEventByToken resolves an invite token to its event without a session.
func (c *Client) GetEventByToken(ctx context.Context, token string) (*domain.Event, error) {
	e := endpoint{
		op:          "get event by token",
		method:      http.MethodGet,
		path:        "/api/public/events/token/" + url.PathEscape(token),
		public:      true,
		failMsg:     "Failed to fetch event",
		notFoundMsg: "Event not found",
	}
	return c.event(ctx, e)
}

func (c *Client) ListParticipants(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	e := endpoint{
		op:      "list participants",
		method:  http.MethodGet,
		path:    fmt.Sprintf("/api/public/events/%d/participants", eventID),
		public:  true,
		failMsg: "Failed to fetch participants",
	}
	var ws []participantWire
	if _, err := c.call(ctx, e, &ws); err != nil {
		return nil, err
	}
	return participantsFromWire(ws), nil
}

func (c *Client) event(ctx context.Context, e endpoint) (*domain.Event, error) {
	var w eventWire
	if _, err := c.call(ctx, e, &w); err != nil {
		return nil, err
	}
	if w.ID == 0 {
		return nil, invalidResponse(e.op, e.failMsg)
	}
	return eventFromWire(w), nil
}
