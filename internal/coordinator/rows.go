// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package coordinator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
)

func insertBaseUser(ctx context.Context, tx pgx.Tx, user pacer.User) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.Users.Table, schema.Users.Uname, schema.Users.Role, schema.Users.Salt, schema.Users.Email,
	)
	_, err := tx.Exec(ctx, query, user.Uname, user.Role, user.Salt, user.Email)
	return dberr.Wrap(err, "user")
}

func insertRoleRow(ctx context.Context, tx pgx.Tx, user pacer.User) error {
	switch user.Role {
	case pacer.RoleTeacher:
		if user.Teacher == nil {
			return apperr.ValidationError("teacher profile is required for role teacher")
		}
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.Teachers.Table, schema.Teachers.Uname, schema.Teachers.Name)
		_, err := tx.Exec(ctx, query, user.Uname, user.Teacher.Name)
		return dberr.Wrap(err, "teacher")

	case pacer.RoleStudent:
		if user.Student == nil {
			return apperr.ValidationError("student profile is required for role student")
		}
		s := user.Student
		query := fmt.Sprintf(
			`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			schema.Students.Table,
			schema.Students.Uname, schema.Students.Last, schema.Students.Rest, schema.Students.Teacher,
			schema.Students.Parent, schema.Students.FallExam, schema.Students.SpringExam,
			schema.Students.FallExamFraction, schema.Students.SpringExamFraction,
			schema.Students.FallNotices, schema.Students.SpringNotices,
		)
		_, err := tx.Exec(ctx, query,
			user.Uname, s.Last, s.Rest, s.TeacherUname, s.ParentEmail,
			s.FallExam, s.SpringExam, s.FallExamFraction, s.SpringExamFraction,
			s.FallNotices, s.SpringNotices,
		)
		return dberr.Wrap(err, "student")

	default:
		// Admin and Boss carry no role-specific row.
		return nil
	}
}

func updateBaseUser(ctx context.Context, tx pgx.Tx, user pacer.User) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.Users.Table, schema.Users.Email, schema.Users.Uname)
	tag, err := tx.Exec(ctx, query, user.Email, user.Uname)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func updateRoleRow(ctx context.Context, tx pgx.Tx, user pacer.User) error {
	switch user.Role {
	case pacer.RoleTeacher:
		if user.Teacher == nil {
			return nil
		}
		query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			schema.Teachers.Table, schema.Teachers.Name, schema.Teachers.Uname)
		_, err := tx.Exec(ctx, query, user.Teacher.Name, user.Uname)
		return dberr.Wrap(err, "teacher")

	case pacer.RoleStudent:
		if user.Student == nil {
			return nil
		}
		s := user.Student
		query := fmt.Sprintf(
			`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4,
			 %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10
			 WHERE %s = $11`,
			schema.Students.Table,
			schema.Students.Last, schema.Students.Rest, schema.Students.Teacher, schema.Students.Parent,
			schema.Students.FallExam, schema.Students.SpringExam,
			schema.Students.FallExamFraction, schema.Students.SpringExamFraction,
			schema.Students.FallNotices, schema.Students.SpringNotices,
			schema.Students.Uname,
		)
		_, err := tx.Exec(ctx, query,
			s.Last, s.Rest, s.TeacherUname, s.ParentEmail,
			s.FallExam, s.SpringExam, s.FallExamFraction, s.SpringExamFraction,
			s.FallNotices, s.SpringNotices,
			user.Uname,
		)
		return dberr.Wrap(err, "student")

	default:
		return nil
	}
}

func deleteRoleRow(ctx context.Context, tx pgx.Tx, role pacer.Role, uname string) error {
	var table, unameColumn string
	switch role {
	case pacer.RoleTeacher:
		table, unameColumn = schema.Teachers.Table, schema.Teachers.Uname
	case pacer.RoleStudent:
		table, unameColumn = schema.Students.Table, schema.Students.Uname
	default:
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, unameColumn)
	_, err := tx.Exec(ctx, query, uname)
	return dberr.Wrap(err, "user")
}
