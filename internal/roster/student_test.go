// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roster_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pacer/internal/roster"
)

func TestParseStudentCSV_Valid(t *testing.T) {
	doc := "stu1,García,Noa,stu1@school.test,parent@home.test,teach1\n" +
		"stu2,Smith,  Ann  ,stu2@school.test,,teach2\n"

	entries, err := roster.ParseStudentCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "stu1", entries[0].Uname)
	assert.Equal(t, "García", entries[0].Last)
	assert.Equal(t, "Noa", entries[0].Rest)
	assert.Equal(t, "parent@home.test", entries[0].ParentEmail)
	assert.Equal(t, "teach1", entries[0].TeacherUname)

	assert.Equal(t, "Ann", entries[1].Rest)
	assert.Empty(t, entries[1].ParentEmail)
}

func TestParseStudentCSV_MissingTeacher(t *testing.T) {
	doc := "stu1,García,Noa,stu1@school.test,parent@home.test,\n"

	_, err := roster.ParseStudentCSV(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParseStudentCSV_MissingUname(t *testing.T) {
	doc := ",García,Noa,stu1@school.test,,teach1\n"

	_, err := roster.ParseStudentCSV(strings.NewReader(doc))
	assert.Error(t, err)
}
