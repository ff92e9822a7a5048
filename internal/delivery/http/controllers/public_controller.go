package controllers

import (
	"net/http"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
)

// PublicController serves invite links. Holding the token is enough to see the event and
// answer the invite; no sign-in is needed.
type PublicController struct {
	Base
	Events  domain.EventService
	Invites domain.InviteService
}

func NewPublicController(base Base, events domain.EventService, invites domain.InviteService) *PublicController {
	return &PublicController{Base: base, Events: events, Invites: invites}
}

type publicInvitePage struct {
	Token    string
	Public   *domain.PublicEvent
	Answered bool
}

func (c *PublicController) Show(w http.ResponseWriter, r *http.Request) {
	c.show(w, r, http.StatusOK, views.Page{}, false)
}

func (c *PublicController) show(w http.ResponseWriter, r *http.Request, code int, page views.Page, answered bool) {
	token := r.PathValue("token")
	pub, err := c.Events.GetPublicEvent(r.Context(), token)
	if err != nil {
		c.fail(w, r, err, "Event not found")
		return
	}
	page.Title = pub.Event.Title
	page.Data = publicInvitePage{Token: token, Public: pub, Answered: answered}
	c.render(w, r, code, "public_invite", page)
}

func (c *PublicController) Respond(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	status := domain.InviteStatus(r.PostFormValue("status"))
	if !status.IsResponse() {
		c.show(w, r, http.StatusBadRequest, views.Page{Error: msgInviteStatus}, false)
		return
	}
	if _, err := c.Invites.Respond(r.Context(), token, status); err != nil {
		code, _ := h.StatusFor(err)
		c.show(w, r, code, views.Page{Error: domain.UserMessage(err, respondInviteFailed)}, false)
		return
	}
	notice := "You accepted the invite"
	if status == domain.InviteDeclined {
		notice = "You declined the invite"
	}
	c.show(w, r, http.StatusOK, views.Page{Notice: notice}, true)
}
