// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

import "time"

// Calendar is the set of instructional Dates, unordered in storage and
// presented sorted ascending by the Global Cache.
type Calendar []time.Time

// NamedDates maps a short name (e.g. "end-fall") to a single Date. The
// name "end-fall" is the semester boundary consulted by the Pacing Engine.
type NamedDates map[string]time.Time

const NamedDateEndFall = "end-fall"
