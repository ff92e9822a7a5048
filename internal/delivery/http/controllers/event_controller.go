package controllers

import (
	"fmt"
	"net/http"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
)

const (
	createEventFailed = "Unknown error occurred while creating event. Please try again."
	updateEventFailed = "Could not update event details"
	inviteSentNotice  = "Invite Sent"
)

// inviteStatuses are the choices of an invite status filter, in display order.
var inviteStatuses = []domain.InviteStatus{domain.InviteAccepted, domain.InvitePending, domain.InviteDeclined, domain.InviteAny}

type EventController struct {
	Base
	Events domain.EventService
}

func NewEventController(base Base, events domain.EventService) *EventController {
	return &EventController{Base: base, Events: events}
}

type eventsPage struct {
	Filter domain.EventFilter
	Events []*domain.Event
	Failed bool
}

type eventPage struct {
	Detail   *domain.EventDetail
	Statuses []domain.InviteStatus
}

type eventFormPage struct {
	EventID int64
	Form    EventForm
}

// eventFilterFrom reads role and time from the query, defaulting each missing axis.
func eventFilterFrom(r *http.Request) domain.EventFilter {
	f := domain.DefaultEventFilter()
	q := r.URL.Query()
	if v := q.Get("role"); v != "" {
		f.Role = domain.EventRole(v)
	}
	if v := q.Get("time"); v != "" {
		f.Time = domain.TimeFilter(v)
	}
	return f
}

// List shows the events for one role and time filter. Each request replaces the whole list.
// Pages fetch uncoordinated: a navigation the browser abandons cancels its own request, and
// another tab's navigation must not cut this one short.
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	filter := eventFilterFrom(r)

	events, err := c.Events.ListEvents(r.Context(), "", filter)
	if err != nil {
		status, _ := h.StatusFor(err)
		if status >= http.StatusInternalServerError {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		c.render(w, r, status, "events", views.Page{
			Title: "Events",
			Error: domain.UserMessage(err, "Failed to fetch events"),
			Data:  eventsPage{Filter: filter, Failed: true},
		})
		return
	}
	c.render(w, r, http.StatusOK, "events", views.Page{Title: "Events", Data: eventsPage{Filter: filter, Events: events}})
}

// Show renders an event with its participants and, for the host, its invites filtered by
// the status query parameter.
func (c *EventController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	sess := middleware.SessionFromContext(r.Context())
	status := domain.InviteStatus(r.URL.Query().Get("status"))

	detail, err := c.Events.GetEventDetail(r.Context(), "", sess.User, id, status)
	if err != nil {
		c.fail(w, r, err, "Failed to load event")
		return
	}
	page := views.Page{Title: detail.Event.Title, Data: eventPage{Detail: detail, Statuses: inviteStatuses}}
	if r.URL.Query().Get("invite_sent") == "1" {
		page.Notice = inviteSentNotice
	}
	c.render(w, r, http.StatusOK, "event", page)
}

func (c *EventController) New(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "event_form", views.Page{
		Title: "New event",
		Data:  eventFormPage{Form: EventForm{}},
	})
}

func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	form := eventFormFrom(r, c.Views.Location())
	if msg := h.FirstError(form); msg != "" {
		c.render(w, r, http.StatusBadRequest, "event_form", views.Page{Title: "New event", Error: msg, Data: eventFormPage{Form: form}})
		return
	}
	if _, err := c.Events.CreateEvent(r.Context(), form.Input()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		status, _ := h.StatusFor(err)
		c.render(w, r, status, "event_form", views.Page{Title: "New event", Error: createEventFailed, Data: eventFormPage{Form: form}})
		return
	}
	redirect(w, r, "/events")
}

// hostedEvent loads the event behind a host-only page. It answers the request itself and
// returns nil when the event is missing or belongs to someone else.
func (b *Base) hostedEvent(events domain.EventService, w http.ResponseWriter, r *http.Request) *domain.Event {
	id, ok := pathID(r, "id")
	if !ok {
		b.notFound(w, r)
		return nil
	}
	event, err := events.GetEvent(r.Context(), id)
	if err != nil {
		b.fail(w, r, err, "Failed to fetch event")
		return nil
	}
	if !event.IsHostedBy(middleware.SessionFromContext(r.Context()).User) {
		b.forbidden(w, r)
		return nil
	}
	return event
}

func (c *EventController) Edit(w http.ResponseWriter, r *http.Request) {
	event := c.hostedEvent(c.Events, w, r)
	if event == nil {
		return
	}
	c.render(w, r, http.StatusOK, "event_form", views.Page{
		Title: "Edit " + event.Title,
		Data:  eventFormPage{EventID: event.ID, Form: eventFormFromEvent(event, c.Views.Location())},
	})
}

func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	form := eventFormFrom(r, c.Views.Location())
	if msg := h.FirstError(form); msg != "" {
		c.render(w, r, http.StatusBadRequest, "event_form", views.Page{Title: "Edit event", Error: msg, Data: eventFormPage{EventID: id, Form: form}})
		return
	}
	if _, err := c.Events.UpdateEvent(r.Context(), id, form.Input()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		status, _ := h.StatusFor(err)
		c.render(w, r, status, "event_form", views.Page{Title: "Edit event", Error: updateEventFailed, Data: eventFormPage{EventID: id, Form: form}})
		return
	}
	redirect(w, r, fmt.Sprintf("/events/%d", id))
}

// ConfirmDelete asks before anything is deleted.
func (c *EventController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	event := c.hostedEvent(c.Events, w, r)
	if event == nil {
		return
	}
	c.render(w, r, http.StatusOK, "event_delete", views.Page{Title: "Delete " + event.Title, Data: event})
}

func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	if err := c.Events.DeleteEvent(r.Context(), id); err != nil {
		c.fail(w, r, err, "Failed to delete event")
		return
	}
	redirect(w, r, "/events")
}
