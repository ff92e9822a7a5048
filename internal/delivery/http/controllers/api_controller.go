package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	h "plannr/internal/delivery/http/helpers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/domain"

	"github.com/gorilla/csrf"
)

// APIController is the JSON facade over the same services the pages use. Field names are
// camelCase; the backend's snake_case never leaves the API client.
type APIController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
	Events   domain.EventService
	Invites  domain.InviteService
	Cookie   middleware.SessionCookie
}

func NewAPIController(logger *slog.Logger, sessions domain.SessionService, events domain.EventService, invites domain.InviteService, cookie middleware.SessionCookie) *APIController {
	return &APIController{
		Logger:   logger,
		Sessions: sessions,
		Events:   events,
		Invites:  invites,
		Cookie:   cookie,
	}
}

// writeError logs unexpected failures and writes the envelope for err.
func (c *APIController) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if status, _ := h.StatusFor(err); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteServiceError(w, err, fallback)
}

// SessionResponse describes who the request was served for.
type SessionResponse struct {
	State domain.SessionState `json:"state"`
	User  *domain.User        `json:"user"`
}

// SessionSuccessResponse is the success envelope for the session endpoints.
type SessionSuccessResponse struct {
	Data  SessionResponse `json:"data"`
	Error *h.APIError     `json:"error"`
}

func sessionResponse(sess *domain.Session) SessionResponse {
	resp := SessionResponse{State: sess.State}
	if sess.IsAuthenticated() {
		resp.User = sess.User
	}
	return resp
}

// Session godoc
// @Summary Current session
// @Description Returns the session state and, when signed in, the user. The X-CSRF-Token response header carries the token to send with unsafe requests.
// @Tags session
// @Produce json
// @Success 200 {object} controllers.SessionSuccessResponse
// @Header 200 {string} X-CSRF-Token "token for unsafe requests"
// @Router /app/api/session [get]
func (c *APIController) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(middleware.CSRFHeader, csrf.Token(r))
	h.WriteJSONSuccess(w, http.StatusOK, sessionResponse(middleware.SessionFromContext(r.Context())))
}

// SignInRequest is the request body for POST /app/api/session.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (s SignInRequest) Validate() []string {
	return SignInForm{Email: s.Email, Password: s.Password}.Validate()
}

// SignIn godoc
// @Summary Sign in
// @Description Signs in with the backend and starts a browser session. The session cookie is set on success.
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body SignInRequest true "Email and password"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /app/api/session [post]
func (c *APIController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sess := middleware.SessionFromContext(r.Context())
	creds := domain.Credentials{Email: strings.TrimSpace(req.Email), Password: req.Password}
	if err := c.Sessions.SignIn(r.Context(), sess, creds); err != nil {
		c.writeError(w, r, err, signInFailed)
		return
	}
	c.Cookie.Set(w, sess.ID)
	h.WriteJSONSuccess(w, http.StatusOK, sessionResponse(sess))
}

// SignOut godoc
// @Summary Sign out
// @Description Signs out with the backend. The browser session is only dropped once the backend confirms.
// @Tags session
// @Produce json
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /app/api/session [delete]
func (c *APIController) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := c.Sessions.SignOut(r.Context(), sess); err != nil {
		c.writeError(w, r, err, signOutFailed)
		return
	}
	c.Cookie.Clear(w)
	h.WriteJSONSuccess(w, http.StatusOK, sessionResponse(sess))
}

// EventsSuccessResponse is the success envelope for GET /app/api/events.
type EventsSuccessResponse struct {
	Data  []*domain.Event `json:"data"`
	Error *h.APIError     `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists the signed-in user's events by role and time. A request superseded by a newer one in the same fetch scope answers 409 superseded.
// @Tags events
// @Produce json
// @Param role query string false "host or participant" default(participant)
// @Param time query string false "upcoming, past or all" default(upcoming)
// @Param X-Fetch-Scope header string false "Keeps one tab's fetches apart from another's"
// @Success 200 {object} controllers.EventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: superseded"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /app/api/events [get]
func (c *APIController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListEvents(r.Context(), middleware.FetchScope(r), eventFilterFrom(r))
	if err != nil {
		c.writeError(w, r, err, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// EventRequest is the request body for creating or replacing an event.
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Validate implements Validator with the same rules as the event form.
func (e EventRequest) Validate() []string {
	return eventRules(e.Title, e.StartTime, e.EndTime, e.Description)
}

func (e EventRequest) Input() domain.EventInput {
	return domain.EventInput{
		Title:       strings.TrimSpace(e.Title),
		Description: e.Description,
		StartTime:   e.StartTime.UTC(),
		EndTime:     e.EndTime.UTC(),
	}
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event hosted by the signed-in user.
// @Tags events
// @Accept json
// @Produce json
// @Param event body EventRequest true "Event"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /app/api/events [post]
func (c *APIController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.CreateEvent(r.Context(), req.Input())
	if err != nil {
		c.writeError(w, r, err, createEventFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// EventDetailResponse is an event with its participants and, for the host, its invites.
type EventDetailResponse struct {
	Event             *domain.Event       `json:"event"`
	IsHost            bool                `json:"isHost"`
	Participants      []*domain.Invite    `json:"participants"`
	ParticipantsError string              `json:"participantsError,omitempty"`
	InviteStatus      domain.InviteStatus `json:"inviteStatus,omitempty"`
	Invites           []*domain.Invite    `json:"invites,omitempty"`
	InvitesError      string              `json:"invitesError,omitempty"`
}

// EventDetailSuccessResponse is the success envelope for GET /app/api/events/{id}.
type EventDetailSuccessResponse struct {
	Data  EventDetailResponse `json:"data"`
	Error *h.APIError         `json:"error"`
}

func eventDetailResponse(d *domain.EventDetail) EventDetailResponse {
	resp := EventDetailResponse{
		Event:        d.Event,
		IsHost:       d.IsHost,
		Participants: d.Participants,
	}
	if resp.Participants == nil {
		resp.Participants = []*domain.Invite{}
	}
	if d.ParticipantsErr != nil {
		resp.ParticipantsError = domain.UserMessage(d.ParticipantsErr, "Failed to fetch participants")
	}
	if d.IsHost {
		resp.InviteStatus = d.InviteStatus
		resp.Invites = d.Invites
		if resp.Invites == nil {
			resp.Invites = []*domain.Invite{}
		}
		if d.InvitesErr != nil {
			resp.InvitesError = domain.UserMessage(d.InvitesErr, "Failed to fetch invites")
		}
	}
	return resp
}

// apiID reads the id path value, writing a 400 envelope when it is not a positive integer.
func apiID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid event id")
	}
	return id, ok
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with its accepted participants. The host also gets the invites filtered by status.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Param status query string false "pending, accepted, declined or all" default(accepted)
// @Param X-Fetch-Scope header string false "Keeps one tab's fetches apart from another's"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: superseded"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /app/api/events/{id} [get]
func (c *APIController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}
	sess := middleware.SessionFromContext(r.Context())
	detail, err := c.Events.GetEventDetail(r.Context(), middleware.FetchScope(r), sess.User, id, domain.InviteStatus(r.URL.Query().Get("status")))
	if err != nil {
		c.writeError(w, r, err, "Failed to fetch event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, eventDetailResponse(detail))
}

// UpdateEvent godoc
// @Summary Replace an event
// @Description Replaces title, description and times. Only the host may update.
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param event body EventRequest true "Event"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /app/api/events/{id} [put]
func (c *APIController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.UpdateEvent(r.Context(), id, req.Input())
	if err != nil {
		c.writeError(w, r, err, updateEventFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeletedResponse confirms a deletion.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event. Deleting it again answers 404.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.deleted is true"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /app/api/events/{id} [delete]
func (c *APIController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}
	if err := c.Events.DeleteEvent(r.Context(), id); err != nil {
		c.writeError(w, r, err, "Failed to delete event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeletedResponse{Deleted: true})
}

// InviteRequest is the request body for POST /app/api/events/{id}/invites.
type InviteRequest struct {
	Email string           `json:"email"`
	Role  domain.EventRole `json:"role"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	return InviteForm{Email: i.Email, Role: i.Role}.Validate()
}

// InviteSuccessResponse is the success envelope for endpoints returning one invite.
type InviteSuccessResponse struct {
	Data  *domain.Invite `json:"data"`
	Error *h.APIError    `json:"error"`
}

// CreateInvite godoc
// @Summary Invite someone to an event
// @Description Invites an email address as host or participant. The backend sends the invite email.
// @Tags invites
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param invite body InviteRequest true "Invite"
// @Success 201 {object} controllers.InviteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /app/api/events/{id}/invites [post]
func (c *APIController) CreateInvite(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}
	var req InviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	invite, err := c.Invites.CreateInvite(r.Context(), id, domain.InviteInput{Email: strings.TrimSpace(req.Email), Role: req.Role})
	if err != nil {
		c.writeError(w, r, err, createInviteFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, invite)
}

// InvitesSuccessResponse is the success envelope for GET /app/api/invites.
type InvitesSuccessResponse struct {
	Data  []*domain.Invite `json:"data"`
	Error *h.APIError      `json:"error"`
}

// ListInvites godoc
// @Summary List invites
// @Description Lists the signed-in user's invites, or one event's invites when eventId is set. userId narrows an event's invites to one invitee.
// @Tags invites
// @Produce json
// @Param status query string false "pending, accepted, declined or all" default(all)
// @Param eventId query int false "Event ID"
// @Param userId query int false "Invitee user ID"
// @Param X-Fetch-Scope header string false "Keeps one tab's fetches apart from another's"
// @Success 200 {object} controllers.InvitesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: superseded"
// @Router /app/api/invites [get]
func (c *APIController) ListInvites(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.InviteFilter{Status: domain.InviteStatus(q.Get("status"))}
	if v := q.Get("eventId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventId")
			return
		}
		filter.EventID = id
	}
	if v := q.Get("userId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid userId")
			return
		}
		filter.UserID = id
	}
	invites, err := c.Invites.ListInvites(r.Context(), middleware.FetchScope(r), filter)
	if err != nil {
		c.writeError(w, r, err, "Failed to fetch invites")
		return
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, invites)
}

// RespondRequest is the request body for POST /app/api/invites/{token}/respond.
type RespondRequest struct {
	Status domain.InviteStatus `json:"status"`
}

// Validate implements Validator.
func (rr RespondRequest) Validate() []string {
	if !rr.Status.IsResponse() {
		return []string{msgInviteStatus}
	}
	return nil
}

// RespondToInvite godoc
// @Summary Answer an invite
// @Description Accepts or declines the invite the token belongs to. The token is the credential, so no sign-in is needed. An invite can be answered once.
// @Tags invites
// @Accept json
// @Produce json
// @Param token path string true "Invite token"
// @Param response body RespondRequest true "accepted or declined"
// @Success 200 {object} controllers.InviteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (invalid or expired invite)"
// @Router /app/api/invites/{token}/respond [post]
func (c *APIController) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	invite, err := c.Invites.Respond(r.Context(), r.PathValue("token"), req.Status)
	if err != nil {
		c.writeError(w, r, err, respondInviteFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, invite)
}

// PublicEventResponse is what an invite token reveals.
type PublicEventResponse struct {
	Event             *domain.Event         `json:"event"`
	Participants      []*domain.Participant `json:"participants"`
	ParticipantsError string                `json:"participantsError,omitempty"`
}

// PublicEventSuccessResponse is the success envelope for GET /app/api/public/events/{token}.
type PublicEventSuccessResponse struct {
	Data  PublicEventResponse `json:"data"`
	Error *h.APIError         `json:"error"`
}

// PublicEvent godoc
// @Summary Event behind an invite token
// @Description Returns the event and its participants for an invite token. No sign-in is needed.
// @Tags invites
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} controllers.PublicEventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /app/api/public/events/{token} [get]
func (c *APIController) PublicEvent(w http.ResponseWriter, r *http.Request) {
	pub, err := c.Events.GetPublicEvent(r.Context(), r.PathValue("token"))
	if err != nil {
		c.writeError(w, r, err, "Event not found")
		return
	}
	resp := PublicEventResponse{Event: pub.Event, Participants: pub.Participants}
	if resp.Participants == nil {
		resp.Participants = []*domain.Participant{}
	}
	if pub.ParticipantsErr != nil {
		resp.ParticipantsError = domain.UserMessage(pub.ParticipantsErr, "Failed to fetch participants")
	}
	h.WriteJSONSuccess(w, http.StatusOK, resp)
}
