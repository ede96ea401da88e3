// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pacer defines the core domain entities of the academic pacing
platform: roles, users, courses, chapters, goals, the derived Pace, the
calendar, and session keys.

Entities here have no dependency on storage, cache, or transport — they are
the "Truth" of the system, per the has-a-role polymorphism design note.
*/
package pacer

// Role is the sum of {Admin, Boss, Teacher, Student}. Equality is the only
// comparison the core requires; there is no total order between roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleBoss    Role = "boss"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the four recognised roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBoss, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Principal identifies the caller of an authenticated request: the uname
// the Session Gate resolved the key to, and that user's role at the time of
// the cache lookup.
type Principal struct {
	Uname string
	Role  Role
}
