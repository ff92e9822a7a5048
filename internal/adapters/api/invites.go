package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"plannr/internal/domain"
)

func (c *Client) CreateInvite(ctx context.Context, eventID int64, in domain.InviteInput) (*domain.Invite, error) {
	e := endpoint{
		op:           "create invite",
		method:       http.MethodPost,
		path:         fmt.Sprintf("/api/events/%d/invites", eventID),
		body:         inviteInputToWire(in),
		failMsg:      "Could not create invite",
		preferDetail: true,
	}
	return c.invite(ctx, e)
}

// ListInvites returns invites matching filter. Status "all" and zero ids are left out of
// the query.
func (c *Client) ListInvites(ctx context.Context, filter domain.InviteFilter) ([]*domain.Invite, error) {
	if filter.Status != "" && !filter.Status.ValidFilter() {
		return nil, domain.InvalidInput("list invites", "Invalid status.")
	}
	q := url.Values{}
	if filter.Status != "" && filter.Status != domain.InviteAny {
		q.Set("status", string(filter.Status))
	}
	if filter.EventID != 0 {
		q.Set("event_id", strconv.FormatInt(filter.EventID, 10))
	}
	if filter.UserID != 0 {
		q.Set("user_id", strconv.FormatInt(filter.UserID, 10))
	}
	e := endpoint{
		op:      "list invites",
		method:  http.MethodGet,
		path:    "/api/invites",
		query:   q,
		failMsg: "Failed to fetch invites",
	}
	var ws []inviteWire
	if _, err := c.call(ctx, e, &ws); err != nil {
		return nil, err
	}
	return invitesFromWire(ws), nil
}

// RespondToInvite answers the invite identified by token. The backend only accepts a
// response while the invite is pending and answers 404 afterwards.
func (c *Client) RespondToInvite(ctx context.Context, token string, status domain.InviteStatus) (*domain.Invite, error) {
	if !status.IsResponse() {
		return nil, domain.InvalidInput("respond to invite", "Invalid status.")
	}
	if strings.TrimSpace(token) == "" {
		return nil, domain.InvalidInput("respond to invite", "Invalid or expired invite")
	}
	e := endpoint{
		op:          "respond to invite",
		method:      http.MethodPut,
		path:        "/api/invites/" + url.PathEscape(token),
		body:        inviteResponseWire{Status: string(status)},
		failMsg:     "Could not respond to invite",
		notFoundMsg: "Invalid or expired invite",
	}
	return c.invite(ctx, e)
}

func (c *Client) invite(ctx context.Context, e endpoint) (*domain.Invite, error) {
	var w inviteWire
	if _, err := c.call(ctx, e, &w); err != nil {
		return nil, err
	}
	if w.ID == 0 {
		return nil, invalidResponse(e.op, e.failMsg)
	}
	return inviteFromWire(w), nil
}
