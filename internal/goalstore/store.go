// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package goalstore implements the Goal Store API (C2): persistent CRUD
// for goals in the domain store, with atomic batch insert and the bulk
// due-date update used by the auto-pacer.
package goalstore

import (
	"context"

	"github.com/taibuivan/pacer/internal/pacer"
)

// GoalRepository defines the data access contract for goals.
type GoalRepository interface {

	// InsertMany rejects any goal referencing an unknown student uname or
	// unknown (course sym, seq); on conflict the whole batch is refused —
	// no partial commit. Returns the count inserted.
	InsertMany(ctx context.Context, goals []pacer.Goal) (int, error)

	// Update updates everything except id/uname. Fails with
	// [apperr.NotFound] if the row does not exist.
	Update(ctx context.Context, goal pacer.Goal) error

	// Delete removes a goal and returns the uname of its owner so callers
	// can recompute that student's derived Pace.
	Delete(ctx context.Context, id int64) (string, error)

	// ByStudent returns every goal owned by uname.
	ByStudent(ctx context.Context, uname string) ([]pacer.Goal, error)

	// ByTeacher returns every goal owned by a student of tuname, joining
	// via student.teacher.
	ByTeacher(ctx context.Context, tuname string) ([]pacer.Goal, error)

	// UpdateDueDates bulk-updates only the due field of each goal. Used by
	// the auto-pacer.
	UpdateDueDates(ctx context.Context, goals []pacer.Goal) error

	// ClearForStudent deletes every goal owned by uname, used when
	// re-uploading a student's goal set from scratch.
	ClearForStudent(ctx context.Context, uname string) error
}
