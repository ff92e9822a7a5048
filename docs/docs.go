// Package docs registers the Swagger document for the JSON API. It is maintained by hand
// alongside the swag annotations on the API controllers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/app/api/session": {
            "get": {
                "description": "Returns the session state and, when signed in, the user. The X-CSRF-Token response header carries the token to send with unsafe requests.",
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SessionSuccessResponse"}, "headers": {"X-CSRF-Token": {"type": "string", "description": "token for unsafe requests"}}}
                }
            },
            "post": {
                "description": "Signs in with the backend and starts a browser session. The session cookie is set on success.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Email and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SessionSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "description": "Signs out with the backend. The browser session is only dropped once the backend confirms.",
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SessionSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/events": {
            "get": {
                "description": "Lists the signed-in user's events by role and time. A request superseded by a newer one in the same fetch scope answers 409 superseded.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "default": "participant", "description": "host or participant", "name": "role", "in": "query"},
                    {"type": "string", "default": "upcoming", "description": "upcoming, past or all", "name": "time", "in": "query"},
                    {"type": "string", "description": "Keeps one tab's fetches apart from another's", "name": "X-Fetch-Scope", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: superseded", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Creates an event hosted by the signed-in user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/events/{id}": {
            "get": {
                "description": "Returns the event with its accepted participants. The host also gets the invites filtered by status.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "accepted", "description": "pending, accepted, declined or all", "name": "status", "in": "query"},
                    {"type": "string", "description": "Keeps one tab's fetches apart from another's", "name": "X-Fetch-Scope", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventDetailSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: superseded", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "description": "Replaces title, description and times. Only the host may update.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Replace an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "description": "Deletes the event. Deleting it again answers 404.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data.deleted is true", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/events/{id}/invites": {
            "post": {
                "description": "Invites an email address as host or participant. The backend sends the invite email.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Invite someone to an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "Invite", "name": "invite", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.InviteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.InviteSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/invites": {
            "get": {
                "description": "Lists the signed-in user's invites, or one event's invites when eventId is set. userId narrows an event's invites to one invitee.",
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "List invites",
                "parameters": [
                    {"type": "string", "default": "all", "description": "pending, accepted, declined or all", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Event ID", "name": "eventId", "in": "query"},
                    {"type": "integer", "description": "Invitee user ID", "name": "userId", "in": "query"},
                    {"type": "string", "description": "Keeps one tab's fetches apart from another's", "name": "X-Fetch-Scope", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.InvitesSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: superseded", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/invites/{token}/respond": {
            "post": {
                "description": "Accepts or declines the invite the token belongs to. The token is the credential, so no sign-in is needed. An invite can be answered once.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Answer an invite",
                "parameters": [
                    {"type": "string", "description": "Invite token", "name": "token", "in": "path", "required": true},
                    {"description": "accepted or declined", "name": "response", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RespondRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.InviteSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found (invalid or expired invite)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/app/api/public/events/{token}": {
            "get": {
                "description": "Returns the event and its participants for an invite token. No sign-in is needed.",
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Event behind an invite token",
                "parameters": [
                    {"type": "string", "description": "Invite token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PublicEventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.EventDetailResponse": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "inviteStatus": {"type": "string"},
                "invites": {"type": "array", "items": {"$ref": "#/definitions/domain.Invite"}},
                "invitesError": {"type": "string"},
                "isHost": {"type": "boolean"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/domain.Invite"}},
                "participantsError": {"type": "string"}
            }
        },
        "controllers.EventDetailSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.EventDetailResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "endTime": {"type": "string"},
                "startTime": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.InviteRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["host", "participant"]}
            }
        },
        "controllers.InviteSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Invite"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.InvitesSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Invite"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.PublicEventResponse": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/domain.Participant"}},
                "participantsError": {"type": "string"}
            }
        },
        "controllers.PublicEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.PublicEventResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.RespondRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["accepted", "declined"]}
            }
        },
        "controllers.SessionResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["uninitialized", "resolving", "authenticated", "anonymous"]},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "controllers.SessionSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.SessionResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.SignInRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "endTime": {"type": "string"},
                "hostId": {"type": "integer"},
                "hostName": {"type": "string"},
                "id": {"type": "integer"},
                "participants": {"type": "array", "items": {"type": "string"}},
                "startTime": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "domain.EventSummary": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "endTime": {"type": "string"},
                "hostId": {"type": "integer"},
                "hostName": {"type": "string"},
                "id": {"type": "integer"},
                "startTime": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "domain.Invite": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "event": {"$ref": "#/definitions/domain.EventSummary"},
                "id": {"type": "integer"},
                "role": {"type": "string", "enum": ["host", "participant"]},
                "status": {"type": "string", "enum": ["pending", "accepted", "declined"]},
                "token": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "domain.Participant": {
            "type": "object",
            "properties": {
                "participantName": {"type": "string"},
                "role": {"type": "string", "enum": ["host", "participant"]}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "isRegistered": {"type": "boolean"},
                "lastName": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "plannr web API",
	Description:      "JSON facade of the plannr web client. Unsafe requests carry the X-CSRF-Token header returned by GET /app/api/session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
