// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pacer/internal/pacer"
)

func score(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSemesterSummaryFor_NoCompletedGoals(t *testing.T) {
	goals := []pacer.Goal{{Due: day(2026, 9, 1)}}
	summary := SemesterSummaryFor(goals, nil, 0.2, 0)
	assert.Nil(t, summary)
}

func TestSemesterSummaryFor_TestAvgOnly(t *testing.T) {
	goals := []pacer.Goal{
		{Done: day(2026, 9, 1), Score: score(0.8)},
		{Done: day(2026, 9, 5), Score: score(0.6)},
	}
	summary := SemesterSummaryFor(goals, nil, 0.2, 0)
	require.NotNil(t, summary)
	assert.InDelta(t, 0.7, summary.TestAvg, 1e-9)
	assert.Nil(t, summary.SemPct)
}

func TestSemesterSummaryFor_WithExamAndNotices(t *testing.T) {
	goals := []pacer.Goal{
		{Done: day(2026, 9, 1), Score: score(0.9)},
	}
	summary := SemesterSummaryFor(goals, score(0.8), 0.25, 2)
	require.NotNil(t, summary)
	require.NotNil(t, summary.SemPct)
	// 100*(0.25*0.8 + 0.75*0.9) - 2 = 100*(0.2+0.675) - 2 = 87.5 - 2 = 85.5
	assert.InDelta(t, 85.5, *summary.SemPct, 1e-9)
}

func TestSplitBySemester(t *testing.T) {
	endFall := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	goals := []pacer.Goal{
		{Due: day(2026, 9, 1), Done: day(2026, 1, 10)},
		{Due: day(2026, 1, 5), Done: day(2026, 1, 20)},
		{Due: day(2026, 1, 1), Done: nil},
	}

	fall, spring := SplitBySemester(goals, endFall)
	// the first goal is split by its done date (fall), not its due date (spring).
	require.Len(t, fall, 1)
	// goals with no Done date fall on the spring side along with on/after-endFall goals.
	require.Len(t, spring, 2)
}
