// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog implements the Course Catalog (C1): loading courses and
// their chapters from either a TOML course definition or the domain store,
// and the per-course lookups the Pacing Engine relies on.
package catalog

import (
	"context"

	"github.com/taibuivan/pacer/internal/pacer"
)

// CourseRepository defines the data access contract for courses and chapters
// in the domain store.
type CourseRepository interface {

	// ListCourses returns every course with its chapters, ordered by sym.
	ListCourses(ctx context.Context) ([]*pacer.Course, error)

	// FindBySym returns the course with the given sym, including its chapters.
	FindBySym(ctx context.Context, sym string) (*pacer.Course, error)

	// Create persists a new course definition (without chapters).
	Create(ctx context.Context, course *pacer.Course) error

	// Update persists changes to a course's own fields (sym/title/book/level).
	Update(ctx context.Context, course *pacer.Course) error

	// Delete removes a course. Returns [apperr.Policy] if goals still
	// reference it.
	Delete(ctx context.Context, sym string) error

	// AddChapters bulk-inserts chapters for an existing course.
	AddChapters(ctx context.Context, courseID int64, chapters []pacer.Chapter) error

	// UpdateChapter persists changes to a single chapter.
	UpdateChapter(ctx context.Context, chapter pacer.Chapter) error

	// DeleteChapter removes a chapter. Returns [apperr.Policy] if goals
	// still reference it.
	DeleteChapter(ctx context.Context, chapterID int64) error
}
