// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
)

/*
ParseGoalsCSV parses a Goals CSV document (no header row, `#` begins a
comment line): uname, sym, seq, y, m, d, rev, inc.

Description: Fields uname, sym, y, m inherit from the previous non-comment
row if blank. rev/inc are true iff their cell is non-blank. A blank seq is
a hard parse error. Dates are calendar dates (year, 1-based month,
1-based day). Rows produced here always have Done == nil, Tries == 0,
Score == nil: a goal read from this format is freshly assigned, never
already completed.

Parameters:
  - r: io.Reader (the raw CSV document)

Returns:
  - []pacer.Goal: the parsed goals, in file order
  - error: the first row-level parse failure encountered
*/
func ParseGoalsCSV(r io.Reader) ([]pacer.Goal, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var goals []pacer.Goal
	var prev *pacer.Goal
	lineNo := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pacing: goals csv: %w", err)
		}
		lineNo++

		goal, err := goalFromCSVRow(record, prev)
		if err != nil {
			return nil, fmt.Errorf("pacing: goals csv line %d: %w", lineNo, err)
		}

		goals = append(goals, goal)
		prev = &goals[len(goals)-1]
	}

	return goals, nil
}

func goalFromCSVRow(row []string, prev *pacer.Goal) (pacer.Goal, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	uname := cell(0)
	if uname == "" {
		if prev == nil {
			return pacer.Goal{}, fmt.Errorf("no uname")
		}
		uname = prev.Uname
	}

	sym := cell(1)
	if sym == "" {
		if prev == nil {
			return pacer.Goal{}, fmt.Errorf("no course symbol")
		}
		sym = prev.Source.Sym
	}

	seqRaw := cell(2)
	if seqRaw == "" {
		return pacer.Goal{}, fmt.Errorf("no chapter number")
	}
	seq64, err := strconv.ParseInt(seqRaw, 10, 16)
	if err != nil {
		return pacer.Goal{}, fmt.Errorf("unable to parse %q as a chapter number", seqRaw)
	}

	yRaw := cell(3)
	var year int
	if yRaw == "" {
		if prev == nil || prev.Due == nil {
			return pacer.Goal{}, fmt.Errorf("no year")
		}
		year = prev.Due.Year()
	} else {
		year, err = strconv.Atoi(yRaw)
		if err != nil {
			return pacer.Goal{}, fmt.Errorf("unable to parse %q as a year", yRaw)
		}
	}

	mRaw := cell(4)
	var month int
	if mRaw == "" {
		if prev == nil || prev.Due == nil {
			return pacer.Goal{}, fmt.Errorf("no month")
		}
		month = int(prev.Due.Month())
	} else {
		month, err = strconv.Atoi(mRaw)
		if err != nil {
			return pacer.Goal{}, fmt.Errorf("unable to parse %q as a month number", mRaw)
		}
	}
	if month < 1 || month > 12 {
		return pacer.Goal{}, fmt.Errorf("%d is not an appropriate month value", month)
	}

	dRaw := cell(5)
	if dRaw == "" {
		return pacer.Goal{}, fmt.Errorf("no day")
	}
	day, err := strconv.Atoi(dRaw)
	if err != nil {
		return pacer.Goal{}, fmt.Errorf("unable to parse %q as a day number", dRaw)
	}

	due := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if due.Day() != day || int(due.Month()) != month || due.Year() != year {
		return pacer.Goal{}, fmt.Errorf("%d-%d-%d is not a valid date", year, month, day)
	}

	return pacer.Goal{
		Uname:      uname,
		Source:     pacer.GoalSource{Sym: sym, Seq: int16(seq64)},
		Review:     cell(6) != "",
		Incomplete: cell(7) != "",
		Due:        &due,
	}, nil
}
