// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/taibuivan/pacer/internal/pacer"
)

// tomlChapter mirrors one [chapters] table entry in a course definition file.
type tomlChapter struct {
	Sequence int16   `toml:"sequence"`
	Title    string  `toml:"title"`
	Subject  string  `toml:"subject"`
	Weight   float64 `toml:"weight"`
}

// tomlCourse mirrors a single course definition file on disk.
type tomlCourse struct {
	Sym      string        `toml:"sym"`
	Title    string        `toml:"title"`
	Book     string        `toml:"book"`
	Level    float64       `toml:"level"`
	Chapters []tomlChapter `toml:"chapters"`
}

/*
LoadCourseTOML parses a single course definition document.

Description: The document declares one course and its ordered chapters;
it is the out-of-store counterpart to [CourseRepository.FindBySym] used
to seed the domain store or to validate a re-upload before committing it.

Parameters:
  - data: []byte (raw TOML document)

Returns:
  - *pacer.Course: the parsed course, chapters attached
  - error: a parse or structural error
*/
func LoadCourseTOML(data []byte) (*pacer.Course, error) {
	var doc tomlCourse
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: invalid course TOML: %w", err)
	}
	return courseFromTOML(doc)
}

// coursesDocument wraps a bulk course-definition file: an array of tables
// under [[courses]], each shaped like a single-course document.
type coursesDocument struct {
	Courses []tomlCourse `toml:"courses"`
}

/*
LoadCoursesTOML parses a bulk course-definition document — an array of
course tables under [[courses]] — used to (re)populate the entire
catalog in one pass.
*/
func LoadCoursesTOML(data []byte) ([]*pacer.Course, error) {
	var doc coursesDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: invalid courses TOML: %w", err)
	}

	courses := make([]*pacer.Course, 0, len(doc.Courses))
	for _, c := range doc.Courses {
		course, err := courseFromTOML(c)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func courseFromTOML(doc tomlCourse) (*pacer.Course, error) {
	if doc.Sym == "" {
		return nil, fmt.Errorf("catalog: course TOML missing required field %q", "sym")
	}

	chapters := make([]pacer.Chapter, 0, len(doc.Chapters))
	for _, c := range doc.Chapters {
		chapter := pacer.Chapter{
			Seq:    c.Sequence,
			Title:  c.Title,
			Weight: c.Weight,
		}
		if c.Subject != "" {
			subject := c.Subject
			chapter.Subject = &subject
		}
		chapters = append(chapters, chapter)
	}

	var book *string
	if doc.Book != "" {
		b := doc.Book
		book = &b
	}

	return pacer.NewCourse(doc.Sym, doc.Title, book, doc.Level, chapters), nil
}
