// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/pacer/internal/pacer"
)

// StaffEntry is one row of a Staff CSV upload: an admin, boss, or
// teacher to be added. Name is empty for admins and bosses.
type StaffEntry struct {
	Role  pacer.Role
	Uname string
	Email string
	Name  string
}

// staffHeader is the required, case-insensitive header row of a Staff
// CSV document.
var staffHeader = []string{"role", "uname", "email", "name"}

/*
ParseStaffCSV parses a Staff CSV document: a required header row
(role, uname, email, name), followed by one row per admin, boss, or
teacher. role is one of a/A (admin), b/B (boss), t/T (teacher); name is
required only when role is teacher.
*/
func ParseStaffCSV(r io.Reader) ([]StaffEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("roster: staff csv: empty document, header row required")
	}
	if err != nil {
		return nil, fmt.Errorf("roster: staff csv: reading header: %w", err)
	}
	if err := checkHeader(header, staffHeader); err != nil {
		return nil, fmt.Errorf("roster: staff csv: %w", err)
	}

	var entries []StaffEntry
	lineNo := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: staff csv: %w", err)
		}
		lineNo++

		entry, err := staffFromCSVRow(record)
		if err != nil {
			return nil, fmt.Errorf("roster: staff csv line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func staffFromCSVRow(row []string) (StaffEntry, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	role, err := parseStaffRole(cell(0))
	if err != nil {
		return StaffEntry{}, err
	}

	uname := cell(1)
	if uname == "" {
		return StaffEntry{}, fmt.Errorf("no uname")
	}

	email := cell(2)
	if email == "" {
		return StaffEntry{}, fmt.Errorf("no email")
	}

	name := normalizeName(cell(3))
	if role == pacer.RoleTeacher && name == "" {
		return StaffEntry{}, fmt.Errorf("name is required for a teacher")
	}

	return StaffEntry{Role: role, Uname: uname, Email: email, Name: name}, nil
}

func parseStaffRole(cell string) (pacer.Role, error) {
	switch cell {
	case "a", "A":
		return pacer.RoleAdmin, nil
	case "b", "B":
		return pacer.RoleBoss, nil
	case "t", "T":
		return pacer.RoleTeacher, nil
	default:
		return "", fmt.Errorf("unrecognized role %q, expected one of a/A, b/B, t/T", cell)
	}
}

func checkHeader(got, want []string) error {
	if len(got) < len(want) {
		return fmt.Errorf("header has %d columns, expected at least %d (%s)", len(got), len(want), strings.Join(want, ", "))
	}
	for i, w := range want {
		if strings.EqualFold(strings.TrimSpace(got[i]), w) {
			continue
		}
		return fmt.Errorf("header column %d is %q, expected %q", i+1, got[i], w)
	}
	return nil
}
