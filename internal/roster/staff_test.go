// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roster_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/roster"
)

/*
TestParseStaffCSV_Valid checks role mapping and that name is only
required for teachers.
*/
func TestParseStaffCSV_Valid(t *testing.T) {
	doc := "role,uname,email,name\n" +
		"a,admin1,admin1@school.test,\n" +
		"b,boss1,boss1@school.test,\n" +
		"t,teach1,teach1@school.test,José García\n"

	entries, err := roster.ParseStaffCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, pacer.RoleAdmin, entries[0].Role)
	assert.Equal(t, "admin1", entries[0].Uname)
	assert.Empty(t, entries[0].Name)

	assert.Equal(t, pacer.RoleBoss, entries[1].Role)

	assert.Equal(t, pacer.RoleTeacher, entries[2].Role)
	assert.Equal(t, "José García", entries[2].Name)
}

func TestParseStaffCSV_MissingHeader(t *testing.T) {
	doc := "a,admin1,admin1@school.test,\n"

	_, err := roster.ParseStaffCSV(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParseStaffCSV_TeacherRequiresName(t *testing.T) {
	doc := "role,uname,email,name\n" +
		"t,teach1,teach1@school.test,\n"

	_, err := roster.ParseStaffCSV(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParseStaffCSV_UnknownRole(t *testing.T) {
	doc := "role,uname,email,name\n" +
		"x,who1,who1@school.test,\n"

	_, err := roster.ParseStaffCSV(strings.NewReader(doc))
	assert.Error(t, err)
}
