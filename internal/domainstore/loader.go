// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package domainstore implements [globcache.Loader]: the bulk reads the
Global Cache issues against the domain store at startup and on every
refresh. Its only write path is the calendar and named-date writes in
calendar.go; all other mutation flows through
[github.com/taibuivan/pacer/internal/coordinator],
[github.com/taibuivan/pacer/internal/catalog], and
[github.com/taibuivan/pacer/internal/goalstore].
*/
package domainstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pacer/internal/catalog"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
	"github.com/taibuivan/pacer/pkg/pointer"
)

// Loader implements [globcache.Loader] atop the domain store's pool.
type Loader struct {
	pool       *pgxpool.Pool
	courseRepo catalog.CourseRepository
}

// NewLoader constructs a Loader. courseRepo is reused from the Course
// Catalog so course-loading logic (chapters, ordering) lives in one place.
func NewLoader(pool *pgxpool.Pool, courseRepo catalog.CourseRepository) *Loader {
	return &Loader{pool: pool, courseRepo: courseRepo}
}

/*
LoadUsers reads every user row, left-joined against teachers and
students, and assembles the tagged-variant [pacer.User] for each.
*/
func (l *Loader) LoadUsers(ctx context.Context) (map[string]pacer.User, error) {
	query := fmt.Sprintf(`
		SELECT u.%s, u.%s, u.%s, u.%s,
		       t.%s,
		       s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s
		FROM %s u
		LEFT JOIN %s t ON t.%s = u.%s
		LEFT JOIN %s s ON s.%s = u.%s`,
		schema.Users.Uname, schema.Users.Role, schema.Users.Salt, schema.Users.Email,
		schema.Teachers.Name,
		schema.Students.Last, schema.Students.Rest, schema.Students.Teacher, schema.Students.Parent,
		schema.Students.FallExam, schema.Students.SpringExam,
		schema.Students.FallExamFraction, schema.Students.SpringExamFraction,
		schema.Students.FallNotices, schema.Students.SpringNotices,
		schema.Users.Table,
		schema.Teachers.Table, schema.Teachers.Uname, schema.Users.Uname,
		schema.Students.Table, schema.Students.Uname, schema.Users.Uname,
	)

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "users")
	}
	defer rows.Close()

	users := make(map[string]pacer.User)
	for rows.Next() {
		var u pacer.User
		var teacherName *string
		var last, rest, teacherUname, parent *string
		var fallExam, springExam *string
		var fallFrac, springFrac *float64
		var fallNotices, springNotices *int

		err := rows.Scan(
			&u.Uname, &u.Role, &u.Salt, &u.Email,
			&teacherName,
			&last, &rest, &teacherUname, &parent,
			&fallExam, &springExam, &fallFrac, &springFrac, &fallNotices, &springNotices,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "users")
		}

		switch u.Role {
		case pacer.RoleTeacher:
			u.Teacher = &pacer.TeacherProfile{Name: pointer.Val(teacherName)}
		case pacer.RoleStudent:
			u.Student = &pacer.StudentProfile{
				Last:               pointer.Val(last),
				Rest:               pointer.Val(rest),
				TeacherUname:       pointer.Val(teacherUname),
				ParentEmail:        pointer.Val(parent),
				FallExam:           fallExam,
				SpringExam:         springExam,
				FallExamFraction:   pointer.Val(fallFrac),
				SpringExamFraction: pointer.Val(springFrac),
				FallNotices:        pointer.Val(fallNotices),
				SpringNotices:      pointer.Val(springNotices),
			}
		}

		users[u.Uname] = u
	}

	return users, rows.Err()
}

// LoadCourses delegates to the Course Catalog's repository and reindexes
// the result by course ID, as [globcache.Cache] stores it.
func (l *Loader) LoadCourses(ctx context.Context) (map[int64]*pacer.Course, error) {
	courses, err := l.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*pacer.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return byID, nil
}

// LoadCalendar reads every instructional date.
func (l *Loader) LoadCalendar(ctx context.Context) (pacer.Calendar, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, schema.Calendar.Day, schema.Calendar.Table)

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "calendar")
	}
	defer rows.Close()

	var days pacer.Calendar
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, dberr.Wrap(err, "calendar")
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// LoadDates reads the named-date map.
func (l *Loader) LoadDates(ctx context.Context) (pacer.NamedDates, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s`, schema.Dates.Name, schema.Dates.Day, schema.Dates.Table)

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "dates")
	}
	defer rows.Close()

	dates := make(pacer.NamedDates)
	for rows.Next() {
		var name string
		var day time.Time
		if err := rows.Scan(&name, &day); err != nil {
			return nil, dberr.Wrap(err, "dates")
		}
		dates[name] = day
	}
	return dates, rows.Err()
}
