// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacing

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
)

// ErrNoDaysLeft is returned by [AutoPace] when every supplied instructional
// date has already passed.
var ErrNoDaysLeft = errors.New("pacing: no instructional days left")

// ErrNoUnfinishedGoals is returned by [AutoPace] when every goal in the
// Pace is already done; there is nothing left to distribute.
var ErrNoUnfinishedGoals = errors.New("pacing: no unfinished goals to distribute")

/*
AutoPace distributes the unfinished goals of pace across the supplied
instructional days, proportionally to weight, and returns the goals with
their new Due dates set (in pace sort order). The caller persists the
result via GoalRepository.UpdateDueDates.

Description:
 1. U = goals with Done == nil, in pace's existing sort order.
 2. W = Σ weight over U.
 3. Dates are filtered to those strictly after max(latest done date, today);
    call the survivors D'.
 4. If D' is empty, fails with [ErrNoDaysLeft].
 5. Walking U in order, an accumulator w_acc tracks cumulative weight;
    t = w_acc / W is the fraction of remaining work done by the end of
    goal g; idx = clamp(ceil(t·|D'|) − 1, 0, |D'|−1); g.Due = D'[idx].

This spreads weight proportionally across available days and is
monotonic in sort order: earlier goals receive earlier due dates.
*/
func AutoPace(pace pacer.Pace, days []time.Time, today time.Time) ([]pacer.Goal, error) {
	var unfinished []int
	var latestDone time.Time
	hasDone := false

	for i, g := range pace.Goals {
		if g.Done == nil {
			unfinished = append(unfinished, i)
			continue
		}
		if !hasDone || g.Done.After(latestDone) {
			latestDone = *g.Done
			hasDone = true
		}
	}

	if len(unfinished) == 0 {
		return nil, ErrNoUnfinishedGoals
	}

	cutoff := today
	if hasDone && latestDone.After(cutoff) {
		cutoff = latestDone
	}

	sortedDays := append([]time.Time(nil), days...)
	sort.Slice(sortedDays, func(i, j int) bool { return sortedDays[i].Before(sortedDays[j]) })

	var remaining []time.Time
	for _, d := range sortedDays {
		if d.After(cutoff) {
			remaining = append(remaining, d)
		}
	}
	if len(remaining) == 0 {
		return nil, ErrNoDaysLeft
	}

	var totalWeight float64
	for _, i := range unfinished {
		totalWeight += pace.Goals[i].Weight
	}

	n := len(remaining)
	var wAcc float64
	result := make([]pacer.Goal, 0, len(unfinished))

	for _, i := range unfinished {
		goal := pace.Goals[i]
		wAcc += goal.Weight

		t := 1.0
		if totalWeight > 0 {
			t = wAcc / totalWeight
		}

		idx := int(math.Ceil(t*float64(n))) - 1
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}

		due := remaining[idx]
		goal.Due = &due
		result = append(result, goal)
	}

	return result, nil
}
