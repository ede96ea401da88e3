// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package loginhandler provides the one HTTP endpoint that sits outside the
action-dispatch table (spec §6): logging in has no uname/key pair yet to
carry as headers, so it cannot go through [middleware.Authenticate] like
every other route.
*/
package loginhandler

import (
	"net/http"

	"github.com/taibuivan/pacer/internal/sessiongate"

	"github.com/taibuivan/pacer/internal/platform/apperr"
	requestutil "github.com/taibuivan/pacer/internal/platform/request"
	"github.com/taibuivan/pacer/internal/platform/respond"
	"github.com/taibuivan/pacer/internal/platform/validate"
)

// Handler serves POST /login.
type Handler struct {
	gate *sessiongate.Gate
}

// NewHandler constructs a Handler.
func NewHandler(gate *sessiongate.Gate) *Handler {
	return &Handler{gate: gate}
}

type loginRequest struct {
	Uname    string `json:"uname"`
	Password string `json:"password"`
}

type loginResponse struct {
	Uname string `json:"uname"`
	Key   string `json:"key"`
	Role  string `json:"role"`
}

/*
ServeHTTP authenticates a uname/password pair and issues a session key.

POST /login

Request:
  - Body: loginRequest (Uname, Password)

Response:
  - 200: loginResponse (Uname, Key, Role) — Key is carried as
    [constants.HeaderPacerKey] on every subsequent request, alongside
    [constants.HeaderPacerUname].
  - 401: invalid uname or password, worded identically whichever part
    was wrong.
  - 429: too many login attempts for this uname.
*/
func (h *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("uname", input.Uname).Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := h.gate.Login(request.Context(), input.Uname, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if result == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	respond.OK(writer, loginResponse{Uname: result.Uname, Key: result.Key, Role: string(result.Role)})
}
