// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/pacer/internal/coordinator"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/sec"
	"github.com/taibuivan/pacer/internal/roster"
)

// initialPasswordLength is the length of the generated password an
// account provisioned without a caller-supplied password gets, to be
// relayed out-of-band by the mail gateway.
const initialPasswordLength = 16

func generateInitialPassword() (string, error) {
	return sec.GenerateSessionKey(initialPasswordLength)
}

// actionPopulateUsers bulk-loads staff (admins, bosses, teachers) from a
// Staff CSV document. Each row gets a freshly generated initial password;
// relaying it to the new user is the mail gateway's concern, out of scope
// here.
func (h *Handler) actionPopulateUsers(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}

	entries, err := roster.ParseStaffCSV(strings.NewReader(req.CSV))
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	inserted := 0
	for _, entry := range entries {
		password, err := generateInitialPassword()
		if err != nil {
			return nil, apperr.Internal(err)
		}

		user := pacer.User{BaseUser: pacer.BaseUser{Uname: entry.Uname, Role: entry.Role, Email: entry.Email}}
		if entry.Role == pacer.RoleTeacher {
			user.Teacher = &pacer.TeacherProfile{Name: entry.Name}
		}

		if err := h.coordinator.InsertUser(ctx, user, password); err != nil {
			return nil, err
		}
		inserted++
	}

	h.logger.Info("staff_populated", slog.Int("count", inserted))
	return map[string]int{"inserted": inserted}, nil
}

// actionAddUser inserts a single user, of any role, with a
// caller-supplied password.
func (h *Handler) actionAddUser(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.User == nil {
		return nil, apperr.ValidationError("user is required")
	}

	payload := req.User
	role := pacer.Role(payload.Role)
	if !role.Valid() {
		return nil, apperr.ValidationError("unrecognized role " + payload.Role)
	}

	user := pacer.User{BaseUser: pacer.BaseUser{Uname: payload.Uname, Role: role, Email: payload.Email}}
	switch role {
	case pacer.RoleTeacher:
		user.Teacher = &pacer.TeacherProfile{Name: payload.Name}
	case pacer.RoleStudent:
		user.Student = &pacer.StudentProfile{
			Last: payload.Last, Rest: payload.Rest,
			TeacherUname: payload.TeacherUname, ParentEmail: payload.ParentEmail,
		}
	}

	if err := h.coordinator.InsertUser(ctx, user, payload.Password); err != nil {
		return nil, err
	}
	return map[string]string{"uname": payload.Uname}, nil
}

// actionUpdateUser persists non-numeric profile changes to an existing
// user (email, name, or for a Student: last/rest/teacher/parent). Exam
// scores and notices are untouched here — see update-numbers.
func (h *Handler) actionUpdateUser(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.User == nil {
		return nil, apperr.ValidationError("user is required")
	}

	payload := req.User
	role := pacer.Role(payload.Role)
	if !role.Valid() {
		return nil, apperr.ValidationError("unrecognized role " + payload.Role)
	}

	user := pacer.User{BaseUser: pacer.BaseUser{Uname: payload.Uname, Role: role, Email: payload.Email}}
	switch role {
	case pacer.RoleTeacher:
		user.Teacher = &pacer.TeacherProfile{Name: payload.Name}
	case pacer.RoleStudent:
		user.Student = &pacer.StudentProfile{
			Last: payload.Last, Rest: payload.Rest,
			TeacherUname: payload.TeacherUname, ParentEmail: payload.ParentEmail,
		}
	}

	if err := h.coordinator.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return map[string]string{"uname": payload.Uname}, nil
}

// actionDeleteUser removes a user. The Coordinator refuses with
// [apperr.Policy] if a Teacher still has Students assigned.
func (h *Handler) actionDeleteUser(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.Uname == "" {
		return nil, apperr.ValidationError("uname is required")
	}
	if err := h.coordinator.DeleteUser(ctx, req.Uname); err != nil {
		return nil, err
	}
	return map[string]string{"uname": req.Uname}, nil
}

// actionUploadStudents bulk-loads a Student CSV document. Every student
// gets a freshly generated initial password.
func (h *Handler) actionUploadStudents(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}

	rows, err := roster.ParseStudentCSV(strings.NewReader(req.CSV))
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	uploads := make([]coordinator.StudentUpload, 0, len(rows))
	for _, row := range rows {
		password, err := generateInitialPassword()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		uploads = append(uploads, coordinator.StudentUpload{
			Uname: row.Uname, Last: row.Last, Rest: row.Rest, Email: row.Email,
			ParentEmail: row.ParentEmail, TeacherUname: row.TeacherUname, Password: password,
		})
	}

	inserted, err := h.coordinator.UploadStudents(ctx, uploads)
	if err != nil {
		return nil, err
	}
	return map[string]int{"inserted": inserted}, nil
}
