// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/validate"
)

const (
	FieldSym      = "sym"
	FieldTitle    = "title"
	FieldLevel    = "level"
	FieldSequence = "sequence"
)

// # Service Layer

// Service orchestrates course catalog business logic atop [CourseRepository].
type Service struct {
	courseRepo CourseRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(courseRepo CourseRepository, logger *slog.Logger) *Service {
	return &Service{courseRepo: courseRepo, logger: logger}
}

// # Course Lookup

// Chapter returns the chapter with the given seq, or false if none exists.
// Ties are broken by seq only — sequence numbers need not be contiguous.
func Chapter(course *pacer.Course, seq int16) (pacer.Chapter, bool) {
	return course.Chapter(seq)
}

// AllChapters returns every chapter of the course in ascending seq order.
func AllChapters(course *pacer.Course) []pacer.Chapter {
	return course.AllChapters()
}

// ListCourses returns every course, chapters included.
func (service *Service) ListCourses(ctx context.Context) ([]*pacer.Course, error) {
	return service.courseRepo.ListCourses(ctx)
}

// GetCourse returns the course with the given sym.
func (service *Service) GetCourse(ctx context.Context, sym string) (*pacer.Course, error) {
	return service.courseRepo.FindBySym(ctx, sym)
}

// # Course Mutation

/*
AddCourse validates and persists a new course definition.

Parameters:
  - ctx: context.Context
  - course: *pacer.Course (sym, title, book, level; Chapters ignored here —
    use AddChapters)

Returns:
  - error: validation or persistence errors
*/
func (service *Service) AddCourse(ctx context.Context, course *pacer.Course) error {
	validator := &validate.Validator{}
	validator.Required(FieldSym, course.Sym)
	validator.Required(FieldTitle, course.Title)
	validator.Custom(FieldLevel, course.Level < 0, "level cannot be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	service.logger.Info("course_added", slog.String("sym", course.Sym))
	return nil
}

/*
UpdateCourse persists changes to an existing course's own fields.
*/
func (service *Service) UpdateCourse(ctx context.Context, course *pacer.Course) error {
	validator := &validate.Validator{}
	validator.Required(FieldSym, course.Sym)
	validator.Required(FieldTitle, course.Title)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.courseRepo.Update(ctx, course); err != nil {
		return err
	}

	service.logger.Info("course_updated", slog.String("sym", course.Sym))
	return nil
}

/*
DeleteCourse removes a course. The repository refuses with [apperr.Policy]
if any goal still references it.
*/
func (service *Service) DeleteCourse(ctx context.Context, sym string) error {
	if err := service.courseRepo.Delete(ctx, sym); err != nil {
		return err
	}
	service.logger.Info("course_deleted", slog.String("sym", sym))
	return nil
}

/*
AddChapters validates and bulk-inserts chapters for a course.
*/
func (service *Service) AddChapters(ctx context.Context, courseID int64, chapters []pacer.Chapter) error {
	if len(chapters) == 0 {
		return apperr.ValidationError("at least one chapter is required")
	}

	validator := &validate.Validator{}
	for i, ch := range chapters {
		validator.Custom(FieldSequence, ch.Seq < 0, "chapter "+strconv.Itoa(i)+": sequence cannot be negative")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.courseRepo.AddChapters(ctx, courseID, chapters); err != nil {
		return err
	}

	service.logger.Info("chapters_added", slog.Int64("course_id", courseID), slog.Int("count", len(chapters)))
	return nil
}

// UpdateChapter persists changes to a single chapter.
func (service *Service) UpdateChapter(ctx context.Context, chapter pacer.Chapter) error {
	if err := service.courseRepo.UpdateChapter(ctx, chapter); err != nil {
		return err
	}
	service.logger.Info("chapter_updated", slog.Int64("chapter_id", chapter.ID))
	return nil
}

// DeleteChapter removes a chapter. The repository refuses with
// [apperr.Policy] if any goal still references it.
func (service *Service) DeleteChapter(ctx context.Context, chapterID int64) error {
	if err := service.courseRepo.DeleteChapter(ctx, chapterID); err != nil {
		return err
	}
	service.logger.Info("chapter_deleted", slog.Int64("chapter_id", chapterID))
	return nil
}

