// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/pacing"
	"github.com/taibuivan/pacer/internal/platform/apperr"
)

// examScore converts a Student's stored exam-score string to the fraction
// [pacing.SemesterSummaryFor] expects, treating an unparseable value as
// unscored rather than failing the whole pace computation.
func examScore(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	score, err := pacing.ParseScore(*raw)
	if err != nil {
		return nil
	}
	return score
}

// authorizeStudentAccess permits staff unconditionally, a teacher for
// their own students, and a student for themself.
func (h *Handler) authorizeStudentAccess(principal *pacer.Principal, uname string) error {
	switch principal.Role {
	case pacer.RoleAdmin, pacer.RoleBoss:
		return nil
	case pacer.RoleStudent:
		if principal.Uname == uname {
			return nil
		}
	case pacer.RoleTeacher:
		student, ok := h.cache.User(uname)
		if ok && student.Student != nil && student.Student.TeacherUname == principal.Uname {
			return nil
		}
	}
	return apperr.Forbidden("insufficient permissions for this student")
}

func goalPayloadToGoal(p *GoalPayload) (pacer.Goal, error) {
	goal := pacer.Goal{
		ID:         p.ID,
		Uname:      p.Uname,
		Source:     pacer.GoalSource{Sym: p.Sym, Seq: p.Seq},
		Review:     p.Review,
		Incomplete: p.Incomplete,
		Tries:      p.Tries,
	}

	if p.Due != "" {
		due, err := parseDate(p.Due)
		if err != nil {
			return pacer.Goal{}, err
		}
		goal.Due = &due
	}
	if p.Done != "" {
		done, err := parseDate(p.Done)
		if err != nil {
			return pacer.Goal{}, err
		}
		goal.Done = &done
	}

	score, err := pacing.ParseScore(p.Score)
	if err != nil {
		return pacer.Goal{}, apperr.ValidationError(err.Error())
	}
	goal.Score = score

	return goal, nil
}

// actionAddGoal inserts one goal via the Goal Store's atomic batch path.
func (h *Handler) actionAddGoal(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.Goal == nil {
		return nil, apperr.ValidationError("goal is required")
	}
	if err := h.authorizeStudentAccess(principal, req.Goal.Uname); err != nil {
		return nil, err
	}

	goal, err := goalPayloadToGoal(req.Goal)
	if err != nil {
		return nil, err
	}

	inserted, err := h.goals.InsertMany(ctx, []pacer.Goal{goal})
	if err != nil {
		return nil, err
	}
	return map[string]int{"inserted": inserted}, nil
}

// actionUpdateGoal persists changes to an existing goal.
func (h *Handler) actionUpdateGoal(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.Goal == nil {
		return nil, apperr.ValidationError("goal is required")
	}
	if err := h.authorizeStudentAccess(principal, req.Goal.Uname); err != nil {
		return nil, err
	}

	goal, err := goalPayloadToGoal(req.Goal)
	if err != nil {
		return nil, err
	}

	if err := h.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return map[string]int64{"id": goal.ID}, nil
}

// actionDeleteGoal removes a goal by id.
func (h *Handler) actionDeleteGoal(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.GoalID == 0 {
		return nil, apperr.ValidationError("goal_id is required")
	}

	uname, err := h.goals.Delete(ctx, req.GoalID)
	if err != nil {
		return nil, err
	}
	if err := h.authorizeStudentAccess(principal, uname); err != nil {
		return nil, err
	}
	return map[string]string{"uname": uname}, nil
}

// actionClearGoals deletes every goal owned by a student, used before a
// from-scratch re-upload.
func (h *Handler) actionClearGoals(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.StudentUname == "" {
		return nil, apperr.ValidationError("student_uname is required")
	}
	if err := h.authorizeStudentAccess(principal, req.StudentUname); err != nil {
		return nil, err
	}
	if err := h.goals.ClearForStudent(ctx, req.StudentUname); err != nil {
		return nil, err
	}
	return map[string]string{"uname": req.StudentUname}, nil
}

// actionUploadGoals bulk-inserts a Goals CSV document's rows.
func (h *Handler) actionUploadGoals(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}

	goals, err := pacing.ParseGoalsCSV(strings.NewReader(req.CSV))
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	inserted, err := h.goals.InsertMany(ctx, goals)
	if err != nil {
		return nil, err
	}
	return map[string]int{"inserted": inserted}, nil
}

// actionUpdateNumbers persists a Student's exam scores, exam fractions,
// and notice counts — the one path authorized to change them.
func (h *Handler) actionUpdateNumbers(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.Numbers == nil {
		return nil, apperr.ValidationError("numbers is required")
	}

	n := req.Numbers
	if err := h.coordinator.UpdateNumbers(ctx, n.Uname, n.FallExam, n.SpringExam, n.FallExamFraction, n.SpringExamFraction, n.FallNotices, n.SpringNotices); err != nil {
		return nil, err
	}
	return map[string]string{"uname": n.Uname}, nil
}

// paceView is the JSON shape returned by populate-goals: the derived Pace
// plus the lag percentage and both semester summaries.
type paceView struct {
	Pace       pacer.Pace             `json:"pace"`
	LagPercent int                    `json:"lag_percent"`
	Fall       *pacer.SemesterSummary `json:"fall_summary,omitempty"`
	Spring     *pacer.SemesterSummary `json:"spring_summary,omitempty"`
}

// actionPopulateGoals reads a student's goal set, builds the derived Pace,
// and computes both semester summaries.
func (h *Handler) actionPopulateGoals(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.StudentUname == "" {
		return nil, apperr.ValidationError("student_uname is required")
	}
	if err := h.authorizeStudentAccess(principal, req.StudentUname); err != nil {
		return nil, err
	}

	student, ok := h.cache.User(req.StudentUname)
	if !ok || student.Student == nil {
		return nil, apperr.NotFound("student")
	}

	goals, err := h.goals.ByStudent(ctx, req.StudentUname)
	if err != nil {
		return nil, err
	}

	today, err := resolveToday(req.Today)
	if err != nil {
		return nil, err
	}

	pace, err := pacing.BuildPace(req.StudentUname, student.Student.TeacherUname, goals, h.cache.CourseBySym, today)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	view := paceView{Pace: pace, LagPercent: pacing.LagPercent(pace)}

	if endFall, err := h.cache.EndFall(); err == nil {
		fall, spring := pacing.SplitBySemester(pace.Goals, endFall)
		view.Fall = pacing.SemesterSummaryFor(fall, examScore(student.Student.FallExam), student.Student.FallExamFraction, student.Student.FallNotices)
		view.Spring = pacing.SemesterSummaryFor(spring, examScore(student.Student.SpringExam), student.Student.SpringExamFraction, student.Student.SpringNotices)
	}

	return view, nil
}

// actionAutopace distributes a student's unfinished goals across the
// instructional calendar and persists the new due dates.
func (h *Handler) actionAutopace(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if req.StudentUname == "" {
		return nil, apperr.ValidationError("student_uname is required")
	}
	if err := h.authorizeStudentAccess(principal, req.StudentUname); err != nil {
		return nil, err
	}

	student, ok := h.cache.User(req.StudentUname)
	if !ok || student.Student == nil {
		return nil, apperr.NotFound("student")
	}

	goals, err := h.goals.ByStudent(ctx, req.StudentUname)
	if err != nil {
		return nil, err
	}

	today, err := resolveToday(req.Today)
	if err != nil {
		return nil, err
	}

	pace, err := pacing.BuildPace(req.StudentUname, student.Student.TeacherUname, goals, h.cache.CourseBySym, today)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	repaced, err := pacing.AutoPace(pace, h.cache.Calendar(), today)
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	if err := h.goals.UpdateDueDates(ctx, repaced); err != nil {
		return nil, err
	}

	h.logger.Info("autopace_applied", slog.String("uname", req.StudentUname), slog.Int("goals", len(repaced)))
	return map[string]int{"goals_repaced": len(repaced)}, nil
}

func resolveToday(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return parseDate(raw)
}
