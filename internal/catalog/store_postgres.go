// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
)

// courseRepository implements [CourseRepository] against the domain store.
type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository constructs a PostgreSQL-backed course repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

// ListCourses returns every course with its chapters, ordered by sym then
// chapter sequence.
func (repository *courseRepository) ListCourses(ctx context.Context) ([]*pacer.Course, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s`,
		schema.Courses.ID, schema.Courses.Sym, schema.Courses.Title, schema.Courses.Book, schema.Courses.Level,
		schema.Courses.Table, schema.Courses.Sym,
	)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "courses")
	}
	defer rows.Close()

	var courses []*pacer.Course
	for rows.Next() {
		course := &pacer.Course{}
		if err := rows.Scan(&course.ID, &course.Sym, &course.Title, &course.Book, &course.Level); err != nil {
			return nil, dberr.Wrap(err, "courses")
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "courses")
	}

	for _, course := range courses {
		chapters, err := repository.listChapters(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		course.Chapters = chapters
	}

	return courses, nil
}

// FindBySym returns a single course by its sym, chapters attached.
func (repository *courseRepository) FindBySym(ctx context.Context, sym string) (*pacer.Course, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Courses.ID, schema.Courses.Sym, schema.Courses.Title, schema.Courses.Book, schema.Courses.Level,
		schema.Courses.Table, schema.Courses.Sym,
	)

	course := &pacer.Course{}
	row := repository.pool.QueryRow(ctx, query, sym)
	if err := row.Scan(&course.ID, &course.Sym, &course.Title, &course.Book, &course.Level); err != nil {
		return nil, dberr.Wrap(err, "course")
	}

	chapters, err := repository.listChapters(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.Chapters = chapters

	return course, nil
}

func (repository *courseRepository) listChapters(ctx context.Context, courseID int64) ([]pacer.Chapter, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.Chapters.ID, schema.Chapters.Course, schema.Chapters.Sequence, schema.Chapters.Title,
		schema.Chapters.Subject, schema.Chapters.Weight,
		schema.Chapters.Table, schema.Chapters.Course, schema.Chapters.Sequence,
	)

	rows, err := repository.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, dberr.Wrap(err, "chapters")
	}
	defer rows.Close()

	var chapters []pacer.Chapter
	for rows.Next() {
		var ch pacer.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Seq, &ch.Title, &ch.Subject, &ch.Weight); err != nil {
			return nil, dberr.Wrap(err, "chapters")
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// Create persists a new course's own fields.
func (repository *courseRepository) Create(ctx context.Context, course *pacer.Course) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.Courses.Table, schema.Courses.Sym, schema.Courses.Title, schema.Courses.Book, schema.Courses.Level,
		schema.Courses.ID,
	)

	row := repository.pool.QueryRow(ctx, query, course.Sym, course.Title, course.Book, course.Level)
	if err := row.Scan(&course.ID); err != nil {
		return dberr.Wrap(err, "course")
	}
	return nil
}

// Update persists changes to a course's own fields.
func (repository *courseRepository) Update(ctx context.Context, course *pacer.Course) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		schema.Courses.Table, schema.Courses.Title, schema.Courses.Book, schema.Courses.Level, schema.Courses.Sym,
	)

	tag, err := repository.pool.Exec(ctx, query, course.Title, course.Book, course.Level, course.Sym)
	if err != nil {
		return dberr.Wrap(err, "course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("course")
	}
	return nil
}

// Delete removes a course if no goal references it.
func (repository *courseRepository) Delete(ctx context.Context, sym string) error {
	students, err := repository.blockingStudents(ctx, fmt.Sprintf(
		`SELECT DISTINCT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.Goals.Uname, schema.Goals.Table, schema.Goals.Sym, schema.Goals.Uname,
	), sym)
	if err != nil {
		return err
	}
	if len(students) > 0 {
		return apperr.Policy(fmt.Sprintf("course %s still has goals assigned", sym), students...)
	}

	deleteChaptersQuery := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = (SELECT %s FROM %s WHERE %s = $1)`,
		schema.Chapters.Table, schema.Chapters.Course, schema.Courses.ID, schema.Courses.Table, schema.Courses.Sym,
	)
	if _, err := repository.pool.Exec(ctx, deleteChaptersQuery, sym); err != nil {
		return dberr.Wrap(err, "course")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Courses.Table, schema.Courses.Sym)
	tag, err := repository.pool.Exec(ctx, deleteQuery, sym)
	if err != nil {
		return dberr.Wrap(err, "course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("course")
	}
	return nil
}

// AddChapters bulk-inserts chapters within a single transaction via
// [pgx.Batch], so a malformed row in the middle of a large upload never
// leaves a partial chapter set behind.
func (repository *courseRepository) AddChapters(ctx context.Context, courseID int64, chapters []pacer.Chapter) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "chapters")
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.Chapters.Table, schema.Chapters.Course, schema.Chapters.Sequence, schema.Chapters.Title,
		schema.Chapters.Subject, schema.Chapters.Weight,
	)

	batch := &pgx.Batch{}
	for _, ch := range chapters {
		batch.Queue(query, courseID, ch.Seq, ch.Title, ch.Subject, ch.Weight)
	}

	results := tx.SendBatch(ctx, batch)
	for range chapters {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return dberr.Wrap(err, "chapters")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "chapters")
	}

	return dberr.Wrap(tx.Commit(ctx), "chapters")
}

// UpdateChapter persists changes to a single chapter's own fields.
func (repository *courseRepository) UpdateChapter(ctx context.Context, chapter pacer.Chapter) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5`,
		schema.Chapters.Table, schema.Chapters.Sequence, schema.Chapters.Title, schema.Chapters.Subject,
		schema.Chapters.Weight, schema.Chapters.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, chapter.Seq, chapter.Title, chapter.Subject, chapter.Weight, chapter.ID)
	if err != nil {
		return dberr.Wrap(err, "chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("chapter")
	}
	return nil
}

// DeleteChapter removes a chapter if no goal references it.
func (repository *courseRepository) DeleteChapter(ctx context.Context, chapterID int64) error {
	students, err := repository.blockingStudents(ctx, fmt.Sprintf(
		`SELECT DISTINCT g.%s FROM %s g
		 WHERE (g.%s, g.%s) = (
		     SELECT c.%s, ch.%s
		     FROM %s ch JOIN %s c ON ch.%s = c.%s
		     WHERE ch.%s = $1
		 )
		 ORDER BY g.%s`,
		schema.Goals.Uname, schema.Goals.Table,
		schema.Goals.Sym, schema.Goals.Seq,
		schema.Courses.Sym, schema.Chapters.Sequence,
		schema.Chapters.Table, schema.Courses.Table, schema.Chapters.Course, schema.Courses.ID,
		schema.Chapters.ID,
		schema.Goals.Uname,
	), chapterID)
	if err != nil {
		return err
	}
	if len(students) > 0 {
		return apperr.Policy(fmt.Sprintf("chapter %d still has goals assigned", chapterID), students...)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Chapters.Table, schema.Chapters.ID)
	tag, err := repository.pool.Exec(ctx, deleteQuery, chapterID)
	if err != nil {
		return dberr.Wrap(err, "chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("chapter")
	}
	return nil
}

// blockingStudents runs query (args... bound positionally) and returns one
// [apperr.FieldError] per distinct uname in the result, for use as
// [apperr.Policy] Details.
func (repository *courseRepository) blockingStudents(ctx context.Context, query string, args ...any) ([]apperr.FieldError, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "goals")
	}
	defer rows.Close()

	var blocking []apperr.FieldError
	for rows.Next() {
		var uname string
		if err := rows.Scan(&uname); err != nil {
			return nil, dberr.Wrap(err, "goals")
		}
		blocking = append(blocking, apperr.FieldError{Field: uname, Message: "has a goal referencing this chapter/course"})
	}
	return blocking, rows.Err()
}
