package controllers

import (
	"fmt"
	"net/http"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
)

const (
	createInviteFailed  = "Unknown error occurred while creating invite. Please try again."
	respondInviteFailed = "Could not respond to invite"
)

type InviteController struct {
	Base
	Events  domain.EventService
	Invites domain.InviteService
}

func NewInviteController(base Base, events domain.EventService, invites domain.InviteService) *InviteController {
	return &InviteController{Base: base, Events: events, Invites: invites}
}

type inviteFormPage struct {
	Event *domain.Event
	Form  InviteForm
}

type invitesPage struct {
	Status   domain.InviteStatus
	Statuses []domain.InviteStatus
	Invites  []*domain.Invite
	Failed   bool
}

func (c *InviteController) NewForm(w http.ResponseWriter, r *http.Request) {
	event := c.hostedEvent(c.Events, w, r)
	if event == nil {
		return
	}
	c.render(w, r, http.StatusOK, "invite_form", views.Page{
		Title: "Invite to " + event.Title,
		Data:  inviteFormPage{Event: event},
	})
}

// Create sends an invite and returns to the event page with an "Invite Sent" notice.
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
	event := c.hostedEvent(c.Events, w, r)
	if event == nil {
		return
	}
	form := inviteFormFrom(r)
	page := views.Page{Title: "Invite to " + event.Title, Data: inviteFormPage{Event: event, Form: form}}
	if msg := h.FirstError(form); msg != "" {
		page.Error = msg
		c.render(w, r, http.StatusBadRequest, "invite_form", page)
		return
	}
	if _, err := c.Invites.CreateInvite(r.Context(), event.ID, form.Input()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		status, _ := h.StatusFor(err)
		page.Error = domain.UserMessage(err, createInviteFailed)
		c.render(w, r, status, "invite_form", page)
		return
	}
	redirect(w, r, fmt.Sprintf("/events/%d?invite_sent=1", event.ID))
}

// List shows the signed-in user's invites, pending ones by default.
func (c *InviteController) List(w http.ResponseWriter, r *http.Request) {
	status := domain.InviteStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.InvitePending
	}
	c.renderList(w, r, status, http.StatusOK, "")
}

func (c *InviteController) renderList(w http.ResponseWriter, r *http.Request, status domain.InviteStatus, code int, errMsg string) {
	page := views.Page{Title: "Invites", Error: errMsg}
	data := invitesPage{Status: status, Statuses: inviteStatuses}

	invites, err := c.Invites.ListInvites(r.Context(), "", domain.InviteFilter{Status: status})
	if err != nil {
		if code == http.StatusOK {
			code, _ = h.StatusFor(err)
		}
		if page.Error == "" {
			page.Error = domain.UserMessage(err, "Failed to fetch invites")
		}
		data.Failed = true
	}
	data.Invites = invites
	page.Data = data
	c.render(w, r, code, "invites", page)
}

// Respond accepts or declines one of the user's invites. A second answer to the same
// invite is turned away by the backend and the message is shown above the list.
func (c *InviteController) Respond(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	status := domain.InviteStatus(r.PostFormValue("status"))
	if !status.IsResponse() {
		c.renderList(w, r, domain.InvitePending, http.StatusBadRequest, msgInviteStatus)
		return
	}
	if _, err := c.Invites.Respond(r.Context(), token, status); err != nil {
		code, _ := h.StatusFor(err)
		c.renderList(w, r, domain.InvitePending, code, domain.UserMessage(err, respondInviteFailed))
		return
	}
	redirect(w, r, "/invites?status="+string(status))
}
