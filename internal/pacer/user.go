// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

// BaseUser holds the fields shared by every role. Uname is the stable,
// case-sensitive, unique identifier; salt is assigned once by the domain
// store at insertion and is that user's sole authority for salt (the auth
// store never stores it).
type BaseUser struct {
	Uname string
	Role  Role
	Salt  string
	Email string
}

// TeacherProfile is the role-specific payload for a Teacher.
type TeacherProfile struct {
	Name string
}

// StudentProfile is the role-specific payload for a Student. TeacherUname
// is a weak reference (lookup, not ownership) resolved via the Global
// Cache; it is never an ownership edge.
type StudentProfile struct {
	Last                string
	Rest                string
	TeacherUname        string
	ParentEmail         string
	FallExam            *string
	SpringExam          *string
	FallExamFraction    float64
	SpringExamFraction  float64
	FallNotices         int
	SpringNotices       int
}

// User is modeled as a tagged variant: BaseUser plus an optional
// role-specific payload. At most one of Teacher/Student is non-nil, and
// only when Role is RoleTeacher/RoleStudent respectively; Admin and Boss
// carry neither.
type User struct {
	BaseUser
	Teacher *TeacherProfile
	Student *StudentProfile
}

// IsTeacher reports whether u carries a teacher payload.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher && u.Teacher != nil }

// IsStudent reports whether u carries a student payload.
func (u *User) IsStudent() bool { return u.Role == RoleStudent && u.Student != nil }
