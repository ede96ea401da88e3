// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pacing implements the Pacing Engine (C6): augmenting a student's
// goals with their course/chapter weights, sorting them into presentation
// order, computing derived weights and lag, building semester summaries,
// and distributing unfinished work across instructional days.
package pacing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
)

const lagWeightGuard = 1e-3

// CourseLookup resolves a course by sym, as the Global Cache does.
type CourseLookup func(sym string) (*pacer.Course, bool)

/*
Augment sets goal.Weight and goal.Source.Level for every goal from its
Course and Chapter, looked up via lookup(sym).chapter(seq). An unknown
course or chapter reference is a hard error — the caller's goal set must
already have passed Goal Store referential checks, so this only fires on
a genuinely corrupt cache.
*/
func Augment(goals []pacer.Goal, lookup CourseLookup) error {
	for i := range goals {
		goal := &goals[i]

		course, ok := lookup(goal.Source.Sym)
		if !ok {
			return fmt.Errorf("pacing: unknown course %q", goal.Source.Sym)
		}

		chapter, ok := course.Chapter(goal.Source.Seq)
		if !ok {
			return fmt.Errorf("pacing: unknown chapter %s#%d", goal.Source.Sym, goal.Source.Seq)
		}

		if !course.ValidForPacing() {
			return fmt.Errorf("pacing: course %q has zero total weight", goal.Source.Sym)
		}

		goal.Weight = chapter.Weight / course.TotalWeight()
		goal.Source.Level = course.Level
	}
	return nil
}

/*
Sort orders goals by: due ascending (no-due sorts last), then done
ascending (no-done sorts last), then (level ascending, seq ascending).
*/
func Sort(goals []pacer.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]

		if cmp := compareDatePtr(a.Due, b.Due); cmp != 0 {
			return cmp < 0
		}
		if cmp := compareDatePtr(a.Done, b.Done); cmp != 0 {
			return cmp < 0
		}
		if a.Source.Level != b.Source.Level {
			return a.Source.Level < b.Source.Level
		}
		return a.Source.Seq < b.Source.Seq
	})
}

// compareDatePtr orders nil (no date) after any concrete date.
func compareDatePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}

/*
BuildPace augments, sorts, and computes the derived weights for one
student's goal set, producing the transient [pacer.Pace] the rest of the
system presents.
*/
func BuildPace(student, teacher string, goals []pacer.Goal, lookup CourseLookup, today time.Time) (pacer.Pace, error) {
	if err := Augment(goals, lookup); err != nil {
		return pacer.Pace{}, err
	}
	Sort(goals)

	pace := pacer.Pace{Student: student, Teacher: teacher, Goals: goals}
	for _, g := range goals {
		pace.TotalWeight += g.Weight
		if g.Due != nil && g.Due.Before(today) {
			pace.DueWeight += g.Weight
		}
		if g.Done != nil && g.Done.Before(today) {
			pace.DoneWeight += g.Weight
		}
	}

	return pace, nil
}

// LagPercent returns round(100 · (done_weight − due_weight) / total_weight),
// or 0 if |total_weight| is below the division guard.
func LagPercent(pace pacer.Pace) int {
	if math.Abs(pace.TotalWeight) < lagWeightGuard {
		return 0
	}
	return int(math.Round(100 * (pace.DoneWeight - pace.DueWeight) / pace.TotalWeight))
}
