// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

import "time"

// GoalSource identifies which book chapter a Goal tracks. Level is filled
// in by the Pacing Engine's augmentation step from the referenced course,
// not supplied by the caller.
type GoalSource struct {
	Sym   string
	Seq   int16
	Level float64
}

// Goal is one atomic unit of work for one student.
//
// Invariants (enforced at the Goal Store boundary, see internal/goalstore):
//   - Done without Due is allowed (spontaneous completion).
//   - Score is required whenever Done is set.
//   - Source must refer to a known course and in-range chapter.
type Goal struct {
	ID         int64
	Uname      string
	Source     GoalSource
	Review     bool
	Incomplete bool
	Due        *time.Time
	Done       *time.Time
	Tries      int
	Score      *float64 // normalized fraction in [0,1]; nil means no score

	// Weight is derived by the Pacing Engine's augmentation step:
	// chapter.Weight / course.TotalWeight(). Zero until augmented.
	Weight float64
}

// Status classifies a goal for presentation purposes.
type Status string

const (
	StatusDone    Status = "done"
	StatusLate    Status = "late"
	StatusOverdue Status = "overdue"
	StatusYet     Status = "yet"
)

// GoalStatus computes a Goal's [Status] relative to today.
func GoalStatus(g Goal, today time.Time) Status {
	switch {
	case g.Done != nil && (g.Due == nil || !g.Done.After(*g.Due)):
		return StatusDone
	case g.Done != nil && g.Due != nil && g.Done.After(*g.Due):
		return StatusLate
	case g.Done == nil && g.Due != nil && g.Due.Before(today):
		return StatusOverdue
	default:
		return StatusYet
	}
}
