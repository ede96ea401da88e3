// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dispatch implements the single action-dispatch endpoint (§6):
one POST route carrying a JSON body with an `action` field, fanned out
to one of ~23 named operations spanning user/course/goal/calendar
maintenance and the pacing reads. Every response echoes the action it
served.
*/
package dispatch

// Request is the envelope for every dispatched action. Only the fields a
// given action actually reads are populated by the caller; the rest are
// ignored.
type Request struct {
	Action string `json:"action"`

	// CSV carries raw CSV text for the upload-students, upload-goals and
	// populate-users actions.
	CSV string `json:"csv,omitempty"`

	// TOML carries a raw course-definition document for upload-course
	// (one course) and populate-courses (an array under [[courses]]).
	TOML string `json:"toml,omitempty"`

	Uname string      `json:"uname,omitempty"`
	User  *UserPayload `json:"user,omitempty"`

	CourseSym string         `json:"course_sym,omitempty"`
	Course    *CoursePayload `json:"course,omitempty"`

	ChapterID int64           `json:"chapter_id,omitempty"`
	Chapters  []ChapterPayload `json:"chapters,omitempty"`
	Chapter   *ChapterPayload  `json:"chapter,omitempty"`

	GoalID int64        `json:"goal_id,omitempty"`
	Goal   *GoalPayload `json:"goal,omitempty"`

	TeacherUname string `json:"teacher_uname,omitempty"`
	StudentUname string `json:"student_uname,omitempty"`

	Dates      []string          `json:"dates,omitempty"`
	NamedDate  string            `json:"named_date,omitempty"`
	Day        string            `json:"day,omitempty"`
	NamedDates map[string]string `json:"named_dates,omitempty"`

	Numbers *NumbersPayload `json:"numbers,omitempty"`

	// Today overrides "now" for autopace/semester-summary requests, as a
	// calendar date string (YYYY-MM-DD). Blank means the wall-clock date.
	Today string `json:"today,omitempty"`
}

// Response is the envelope for every dispatch result; Action always echoes
// the request's action value.
type Response struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// UserPayload carries the fields of one user across the wire, role-tagged.
type UserPayload struct {
	Uname        string  `json:"uname"`
	Role         string  `json:"role"`
	Email        string  `json:"email"`
	Password     string  `json:"password,omitempty"`
	Name         string  `json:"name,omitempty"`
	Last         string  `json:"last,omitempty"`
	Rest         string  `json:"rest,omitempty"`
	ParentEmail  string  `json:"parent_email,omitempty"`
	TeacherUname string  `json:"teacher_uname,omitempty"`
	FallExam     *string `json:"fall_exam,omitempty"`
	SpringExam   *string `json:"spring_exam,omitempty"`
}

// CoursePayload carries a course's own fields (chapters travel separately).
type CoursePayload struct {
	Sym   string   `json:"sym"`
	Title string   `json:"title"`
	Book  *string  `json:"book,omitempty"`
	Level float64  `json:"level"`
}

// ChapterPayload carries one chapter's fields.
type ChapterPayload struct {
	ID       int64    `json:"id,omitempty"`
	CourseID int64    `json:"course_id,omitempty"`
	Seq      int16    `json:"seq"`
	Title    string   `json:"title,omitempty"`
	Subject  *string  `json:"subject,omitempty"`
	Weight   float64  `json:"weight"`
}

// GoalPayload carries one goal's mutable fields.
type GoalPayload struct {
	ID         int64   `json:"id,omitempty"`
	Uname      string  `json:"uname"`
	Sym        string  `json:"sym"`
	Seq        int16   `json:"seq"`
	Review     bool    `json:"review"`
	Incomplete bool    `json:"incomplete"`
	Due        string  `json:"due,omitempty"`
	Done       string  `json:"done,omitempty"`
	Tries      int     `json:"tries"`
	Score      string  `json:"score,omitempty"`
}

// NumbersPayload carries the grade-relevant numeric fields update-numbers
// is allowed to touch on a Student — the fields the Dual-Store
// Coordinator otherwise holds fixed on a plain update-user.
type NumbersPayload struct {
	Uname              string  `json:"uname"`
	FallExam           *string `json:"fall_exam,omitempty"`
	SpringExam         *string `json:"spring_exam,omitempty"`
	FallExamFraction   float64 `json:"fall_exam_fraction"`
	SpringExamFraction float64 `json:"spring_exam_fraction"`
	FallNotices        int     `json:"fall_notices"`
	SpringNotices      int     `json:"spring_notices"`
}
