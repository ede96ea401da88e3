// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacing

import (
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
)

// Semester identifies which half of the academic year a goal's done date
// falls in, relative to the named date end-fall.
type Semester int

const (
	SemesterFall Semester = iota
	SemesterSpring
)

/*
SemesterSummaryFor computes the summary for one semester.

Description: test_avg is the mean of parsed scores over done goals in
that semester. If examScore is non-nil, the semester grade folds in the
exam at examFraction and subtracts notices (an absolute percentage-point
penalty). If no exam is recorded, only test_avg is meaningful.

Parameters:
  - goals: []pacer.Goal (already restricted to the target semester)
  - examScore: *float64 (parsed student exam score for this semester, or nil)
  - examFraction: float64
  - notices: int

Returns:
  - *pacer.SemesterSummary: nil if no goal in the set has both a done
    date and a score
*/
func SemesterSummaryFor(goals []pacer.Goal, examScore *float64, examFraction float64, notices int) *pacer.SemesterSummary {
	var sum float64
	var count int

	for _, g := range goals {
		if g.Done == nil || g.Score == nil {
			continue
		}
		sum += *g.Score
		count++
	}

	if count == 0 {
		return nil
	}

	testAvg := sum / float64(count)
	summary := &pacer.SemesterSummary{TestAvg: testAvg}

	if examScore != nil {
		semPct := 100*(examFraction*(*examScore)+(1-examFraction)*testAvg) - float64(notices)
		summary.SemPct = &semPct
	}

	return summary
}

// SplitBySemester partitions goals by whether their Done date falls before
// or on/after the named end-fall date. A goal is only ever scored in the
// semester it was actually completed in, regardless of when it was due; a
// goal with no Done date is not yet completed and falls on the spring side.
func SplitBySemester(goals []pacer.Goal, endFall time.Time) (fall, spring []pacer.Goal) {
	for _, g := range goals {
		if g.Done != nil && g.Done.Before(endFall) {
			fall = append(fall, g)
		} else {
			spring = append(spring, g)
		}
	}
	return fall, spring
}
