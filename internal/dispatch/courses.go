// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pacer/internal/catalog"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/pkg/slice"
)

// actionPopulateCourses bulk-(re)loads the full catalog from a TOML
// document holding an array of course tables.
func (h *Handler) actionPopulateCourses(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}

	courses, err := catalog.LoadCoursesTOML([]byte(req.TOML))
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	for _, course := range courses {
		if err := h.catalog.AddCourse(ctx, course); err != nil {
			return nil, err
		}
		if len(course.Chapters) > 0 {
			if err := h.catalog.AddChapters(ctx, course.ID, course.Chapters); err != nil {
				return nil, err
			}
		}
	}

	h.logger.Info("courses_populated", slog.Int("count", len(courses)))
	return map[string]int{"inserted": len(courses)}, nil
}

// actionUploadCourse loads one course (with chapters) from a TOML document.
func (h *Handler) actionUploadCourse(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}

	course, err := catalog.LoadCourseTOML([]byte(req.TOML))
	if err != nil {
		return nil, apperr.ValidationError(err.Error())
	}

	if err := h.catalog.AddCourse(ctx, course); err != nil {
		return nil, err
	}
	if len(course.Chapters) > 0 {
		if err := h.catalog.AddChapters(ctx, course.ID, course.Chapters); err != nil {
			return nil, err
		}
	}
	return map[string]string{"sym": course.Sym}, nil
}

func coursePayloadToCourse(p *CoursePayload) *pacer.Course {
	return pacer.NewCourse(p.Sym, p.Title, p.Book, p.Level, nil)
}

// actionAddCourse adds a course's own fields (no chapters — see
// add-chapters).
func (h *Handler) actionAddCourse(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.Course == nil {
		return nil, apperr.ValidationError("course is required")
	}

	course := coursePayloadToCourse(req.Course)
	if err := h.catalog.AddCourse(ctx, course); err != nil {
		return nil, err
	}
	return map[string]string{"sym": course.Sym}, nil
}

// actionUpdateCourse persists changes to a course's own fields.
func (h *Handler) actionUpdateCourse(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.Course == nil {
		return nil, apperr.ValidationError("course is required")
	}

	course := coursePayloadToCourse(req.Course)
	if err := h.catalog.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return map[string]string{"sym": course.Sym}, nil
}

// actionDeleteCourse removes a course. The Course Catalog refuses with
// [apperr.Policy] if any goal still references it, listing distinct
// students.
func (h *Handler) actionDeleteCourse(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.CourseSym == "" {
		return nil, apperr.ValidationError("course_sym is required")
	}
	if err := h.catalog.DeleteCourse(ctx, req.CourseSym); err != nil {
		return nil, err
	}
	return map[string]string{"sym": req.CourseSym}, nil
}

// actionAddChapters bulk-inserts chapters for an existing course.
func (h *Handler) actionAddChapters(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if len(req.Chapters) == 0 {
		return nil, apperr.ValidationError("chapters is required")
	}

	course, err := h.catalog.GetCourse(ctx, req.CourseSym)
	if err != nil {
		return nil, err
	}

	chapters := slice.Map(req.Chapters, func(c ChapterPayload) pacer.Chapter {
		return pacer.Chapter{Seq: c.Seq, Title: c.Title, Subject: c.Subject, Weight: c.Weight}
	})

	if err := h.catalog.AddChapters(ctx, course.ID, chapters); err != nil {
		return nil, err
	}
	return map[string]int{"inserted": len(chapters)}, nil
}

// actionUpdateChapter persists changes to one chapter.
func (h *Handler) actionUpdateChapter(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.Chapter == nil {
		return nil, apperr.ValidationError("chapter is required")
	}

	p := req.Chapter
	chapter := pacer.Chapter{ID: p.ID, CourseID: p.CourseID, Seq: p.Seq, Title: p.Title, Subject: p.Subject, Weight: p.Weight}
	if err := h.catalog.UpdateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return map[string]int64{"id": chapter.ID}, nil
}

// actionDeleteChapter removes a chapter. The Course Catalog refuses with
// [apperr.Policy] if any goal still references it.
func (h *Handler) actionDeleteChapter(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.ChapterID == 0 {
		return nil, apperr.ValidationError("chapter_id is required")
	}
	if err := h.catalog.DeleteChapter(ctx, req.ChapterID); err != nil {
		return nil, err
	}
	return map[string]int64{"id": req.ChapterID}, nil
}
