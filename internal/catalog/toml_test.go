// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCourseTOML(t *testing.T) {
	doc := `
sym = "alg1"
title = "Algebra I"
book = "Big Ideas"
level = 1

[[chapters]]
sequence = 1
title = "Linear Equations"
subject = "algebra"
weight = 1.5

[[chapters]]
sequence = 2
title = "Functions"
weight = 1
`
	course, err := LoadCourseTOML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "alg1", course.Sym)
	require.Len(t, course.Chapters, 2)
	assert.Equal(t, int16(1), course.Chapters[0].Seq)
	require.NotNil(t, course.Chapters[0].Subject)
	assert.Equal(t, "algebra", *course.Chapters[0].Subject)
	assert.Nil(t, course.Chapters[1].Subject)
}

func TestLoadCourseTOML_MissingSym(t *testing.T) {
	_, err := LoadCourseTOML([]byte(`title = "No Sym"`))
	assert.Error(t, err)
}

func TestLoadCoursesTOML_Bulk(t *testing.T) {
	doc := `
[[courses]]
sym = "alg1"
title = "Algebra I"

[[courses]]
sym = "geo1"
title = "Geometry I"

[[courses.chapters]]
sequence = 1
title = "Triangles"
weight = 1
`
	courses, err := LoadCoursesTOML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "alg1", courses[0].Sym)
	assert.Equal(t, "geo1", courses[1].Sym)
}

func TestLoadCoursesTOML_PropagatesPerCourseError(t *testing.T) {
	doc := `
[[courses]]
title = "Missing Sym"
`
	_, err := LoadCoursesTOML([]byte(doc))
	assert.Error(t, err)
}
