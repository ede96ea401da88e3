// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pacer/internal/pacer"
)

func TestParseDate(t *testing.T) {
	day, err := parseDate("2026-08-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), day)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := parseDate("08/17/2026")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-05", formatDate(day))
}

func TestRequireRole(t *testing.T) {
	admin := &pacer.Principal{Uname: "admin1", Role: pacer.RoleAdmin}
	teacher := &pacer.Principal{Uname: "teach1", Role: pacer.RoleTeacher}

	assert.NoError(t, requireRole(admin, staffRoles...))
	assert.Error(t, requireRole(teacher, staffRoles...))
}
