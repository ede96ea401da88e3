// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

// Pace is the transient, derived state for one student: the sorted goals
// plus aggregate weights. It is never persisted; it is recomputed by the
// Pacing Engine on every request that needs it.
type Pace struct {
	Student      string
	Teacher      string
	Goals        []Goal
	TotalWeight  float64
	DueWeight    float64
	DoneWeight   float64
}

// SemesterSummary is the derived grade summary for one semester (fall or
// spring).
type SemesterSummary struct {
	TestAvg float64
	// SemPct is nil when the student has no exam recorded for the semester;
	// in that case only TestAvg is meaningful.
	SemPct *float64
}
