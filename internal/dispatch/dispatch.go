// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/pacer/internal/catalog"
	"github.com/taibuivan/pacer/internal/coordinator"
	"github.com/taibuivan/pacer/internal/domainstore"
	"github.com/taibuivan/pacer/internal/globcache"
	"github.com/taibuivan/pacer/internal/goalstore"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	requestutil "github.com/taibuivan/pacer/internal/platform/request"
	"github.com/taibuivan/pacer/internal/platform/respond"
)

// Handler serves the single action-dispatch endpoint, fanning out to one
// of the named operations based on [Request.Action].
type Handler struct {
	catalog     *catalog.Service
	goals       goalstore.GoalRepository
	coordinator *coordinator.Coordinator
	cache       *globcache.Cache
	calendar    *domainstore.Loader
	logger      *slog.Logger
}

// New constructs a Handler.
func New(catalogSvc *catalog.Service, goals goalstore.GoalRepository, coord *coordinator.Coordinator, cache *globcache.Cache, calendar *domainstore.Loader, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalogSvc, goals: goals, coordinator: coord, cache: cache, calendar: calendar, logger: logger}
}

// action is one named operation's implementation: it reads whatever it
// needs from req and the authenticated principal, and returns the payload
// to place in [Response.Data]. The signature matches a (*Handler) method
// expression, so the table below can reference methods directly.
type action func(h *Handler, ctx context.Context, principal *pacer.Principal, req *Request) (any, error)

var actions = map[string]action{
	"populate-users":   (*Handler).actionPopulateUsers,
	"add-user":         (*Handler).actionAddUser,
	"update-user":      (*Handler).actionUpdateUser,
	"delete-user":      (*Handler).actionDeleteUser,
	"upload-students":  (*Handler).actionUploadStudents,
	"populate-courses": (*Handler).actionPopulateCourses,
	"upload-course":    (*Handler).actionUploadCourse,
	"add-course":       (*Handler).actionAddCourse,
	"update-course":    (*Handler).actionUpdateCourse,
	"delete-course":    (*Handler).actionDeleteCourse,
	"add-chapters":     (*Handler).actionAddChapters,
	"update-chapter":   (*Handler).actionUpdateChapter,
	"delete-chapter":   (*Handler).actionDeleteChapter,
	"populate-cal":     (*Handler).actionPopulateCal,
	"update-cal":       (*Handler).actionUpdateCal,
	"populate-dates":   (*Handler).actionPopulateDates,
	"populate-goals":   (*Handler).actionPopulateGoals,
	"add-goal":         (*Handler).actionAddGoal,
	"update-goal":      (*Handler).actionUpdateGoal,
	"delete-goal":      (*Handler).actionDeleteGoal,
	"update-numbers":   (*Handler).actionUpdateNumbers,
	"autopace":         (*Handler).actionAutopace,
	"clear-goals":      (*Handler).actionClearGoals,
	"upload-goals":     (*Handler).actionUploadGoals,
}

// ServeHTTP decodes the dispatch envelope, authenticates (via the platform
// middleware chain, already run), looks up the action, and writes its
// result wrapped in [Response].
func (h *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var req Request
	if err := requestutil.DecodeJSON(request, &req); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fn, ok := actions[req.Action]
	if !ok {
		respond.Error(writer, request, apperr.ValidationError("unrecognized action "+req.Action))
		return
	}

	data, err := fn(h, request.Context(), principal, &req)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Response{Action: req.Action, Data: data})
}

// requireRole rejects unless principal holds exactly one of roles. Roles
// carry no hierarchy (spec §3): equality is the only comparison.
func requireRole(principal *pacer.Principal, roles ...pacer.Role) error {
	for _, role := range roles {
		if principal.Role == role {
			return nil
		}
	}
	return apperr.Forbidden("insufficient permissions for this action")
}

var staffRoles = []pacer.Role{pacer.RoleAdmin, pacer.RoleBoss}
