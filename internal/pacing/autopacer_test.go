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

func TestAutoPace_DistributesProportionally(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	days := []time.Time{
		today.AddDate(0, 0, 1),
		today.AddDate(0, 0, 2),
		today.AddDate(0, 0, 3),
		today.AddDate(0, 0, 4),
	}

	pace := pacer.Pace{
		Goals: []pacer.Goal{
			{ID: 1, Weight: 1},
			{ID: 2, Weight: 1},
			{ID: 3, Weight: 1},
			{ID: 4, Weight: 1},
		},
	}

	repaced, err := AutoPace(pace, days, today)
	require.NoError(t, err)
	require.Len(t, repaced, 4)

	for i, goal := range repaced {
		require.NotNil(t, goal.Due)
		assert.Equal(t, days[i], *goal.Due)
	}
}

func TestAutoPace_SkipsDoneGoals(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	done := today.AddDate(0, 0, -1)
	days := []time.Time{today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)}

	pace := pacer.Pace{
		Goals: []pacer.Goal{
			{ID: 1, Weight: 1, Done: &done},
			{ID: 2, Weight: 1},
		},
	}

	repaced, err := AutoPace(pace, days, today)
	require.NoError(t, err)
	require.Len(t, repaced, 1)
	assert.Equal(t, int64(2), repaced[0].ID)
}

func TestAutoPace_NoUnfinishedGoals(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	done := today.AddDate(0, 0, -1)
	pace := pacer.Pace{Goals: []pacer.Goal{{ID: 1, Done: &done}}}

	_, err := AutoPace(pace, []time.Time{today.AddDate(0, 0, 1)}, today)
	assert.ErrorIs(t, err, ErrNoUnfinishedGoals)
}

func TestAutoPace_NoDaysLeft(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pace := pacer.Pace{Goals: []pacer.Goal{{ID: 1, Weight: 1}}}

	_, err := AutoPace(pace, []time.Time{today.AddDate(0, 0, -1)}, today)
	assert.ErrorIs(t, err, ErrNoDaysLeft)
}
