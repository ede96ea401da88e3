// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// StudentEntry is one row of a Student CSV upload.
type StudentEntry struct {
	Uname        string
	Last         string
	Rest         string
	Email        string
	ParentEmail  string
	TeacherUname string
}

/*
ParseStudentCSV parses a Student CSV document: no header row, columns
uname, last, rest, email, parent, teacher. Unlike the Goals CSV format,
no column inherits a value from the previous row — every cell must be
present on its own row, except ParentEmail, which may be blank.
*/
func ParseStudentCSV(r io.Reader) ([]StudentEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []StudentEntry
	lineNo := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: student csv: %w", err)
		}
		lineNo++

		entry, err := studentFromCSVRow(record)
		if err != nil {
			return nil, fmt.Errorf("roster: student csv line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func studentFromCSVRow(row []string) (StudentEntry, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	uname := cell(0)
	if uname == "" {
		return StudentEntry{}, fmt.Errorf("no uname")
	}

	last := normalizeName(cell(1))
	if last == "" {
		return StudentEntry{}, fmt.Errorf("no last name")
	}

	rest := normalizeName(cell(2))
	if rest == "" {
		return StudentEntry{}, fmt.Errorf("no given name")
	}

	email := cell(3)
	if email == "" {
		return StudentEntry{}, fmt.Errorf("no email")
	}

	teacher := cell(5)
	if teacher == "" {
		return StudentEntry{}, fmt.Errorf("no teacher uname")
	}

	return StudentEntry{
		Uname:        uname,
		Last:         last,
		Rest:         rest,
		Email:        email,
		ParentEmail:  cell(4),
		TeacherUname: teacher,
	}, nil
}
