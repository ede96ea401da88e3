// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package coordinator implements the Dual-Store Coordinator (C5): the
subsystem that sequences writes across the domain store and the
separate auth store so that a reader never observes one store's half
of a write without the other's.

Every write here follows the same shape: open the domain transaction,
make the domain-side change (discovering or consuming the user's salt
along the way), then commit the auth-side change before committing the
domain transaction. If the final domain commit fails after the auth
side has already committed, the two stores are left inconsistent; this
is logged at WARN and surfaced as [apperr.CrossStoreInconsistency]
rather than silently retried — see spec §7 for why that failure is
reported, not masked.
*/
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/pacer/internal/authstore"
	"github.com/taibuivan/pacer/internal/globcache"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
	"github.com/taibuivan/pacer/internal/platform/sec"
)

// saltLength is the number of characters drawn for a freshly assigned
// user salt — shorter than a session key since it is never itself
// carried over the wire.
const saltLength = 16

// Coordinator owns the domain store's connection pool and the Auth
// Store, and sequences writes that touch both.
type Coordinator struct {
	domainPool *pgxpool.Pool
	auth       authstore.Store
	cache      *globcache.Cache
	logger     *slog.Logger
}

// New constructs a Coordinator.
func New(domainPool *pgxpool.Pool, auth authstore.Store, cache *globcache.Cache, logger *slog.Logger) *Coordinator {
	return &Coordinator{domainPool: domainPool, auth: auth, cache: cache, logger: logger}
}

// StudentUpload is one row of a bulk student roster upload.
type StudentUpload struct {
	Uname        string
	Last         string
	Rest         string
	Email        string
	ParentEmail  string
	TeacherUname string
	Password     string
}

/*
InsertUser inserts a single user across both stores: open the domain
transaction, insert the base (and role-specific) row to obtain a fresh
salt, then insert the auth credential before committing the domain
transaction.
*/
func (c *Coordinator) InsertUser(ctx context.Context, user pacer.User, password string) error {
	tx, err := c.domainPool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback(ctx)
		}
	}()

	salt, err := sec.GenerateSalt(saltLength)
	if err != nil {
		return apperr.Internal(err)
	}
	user.Salt = salt

	if err := insertBaseUser(ctx, tx, user); err != nil {
		return err
	}
	if err := insertRoleRow(ctx, tx, user); err != nil {
		return err
	}

	if err := c.auth.AddUser(ctx, user.Uname, password, salt); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		c.logger.Warn("cross_store_inconsistency",
			slog.String("operation", "insert_user"), slog.String("uname", user.Uname), slog.Any("error", err))
		return apperr.CrossStoreInconsistency(err)
	}
	committed = true

	if err := c.cache.RefreshUsers(ctx); err != nil {
		c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}
	return nil
}

/*
UploadStudents bulk-inserts a student roster. Every entry's teacher
uname is pre-validated against the Global Cache, fanned out
concurrently via errgroup, before either store is touched; if any
teacher is unknown the whole batch is refused.
*/
func (c *Coordinator) UploadStudents(ctx context.Context, entries []StudentUpload) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	group, _ := errgroup.WithContext(ctx)
	for _, entry := range entries {
		entry := entry
		group.Go(func() error {
			teacher, ok := c.cache.User(entry.TeacherUname)
			if !ok || !teacher.IsTeacher() {
				return apperr.ValidationError(fmt.Sprintf("unknown teacher uname %q", entry.TeacherUname))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	tx, err := c.domainPool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "students")
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback(ctx)
		}
	}()

	credentials := make([]authstore.NewCredential, 0, len(entries))
	for _, entry := range entries {
		salt, err := sec.GenerateSalt(saltLength)
		if err != nil {
			return 0, apperr.Internal(err)
		}

		user := pacer.User{
			BaseUser: pacer.BaseUser{Uname: entry.Uname, Role: pacer.RoleStudent, Salt: salt, Email: entry.Email},
			Student: &pacer.StudentProfile{
				Last:         entry.Last,
				Rest:         entry.Rest,
				TeacherUname: entry.TeacherUname,
				ParentEmail:  entry.ParentEmail,
			},
		}

		if err := insertBaseUser(ctx, tx, user); err != nil {
			return 0, err
		}
		if err := insertRoleRow(ctx, tx, user); err != nil {
			return 0, err
		}

		credentials = append(credentials, authstore.NewCredential{Uname: entry.Uname, Password: entry.Password, Salt: salt})
	}

	inserted, err := c.auth.AddUsers(ctx, credentials)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		c.logger.Warn("cross_store_inconsistency",
			slog.String("operation", "upload_students"), slog.Int("count", len(entries)), slog.Any("error", err))
		return 0, apperr.CrossStoreInconsistency(err)
	}
	committed = true

	if err := c.cache.RefreshUsers(ctx); err != nil {
		c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}
	return inserted, nil
}

/*
UpdateUser persists changes to a user within a single domain
transaction; the auth store is untouched. For a Student, the
caller-supplied exam scores and notice counts are discarded in favor
of the cache's current values — those are changed only through
[Coordinator.UpdateNumbers].
*/
func (c *Coordinator) UpdateUser(ctx context.Context, user pacer.User) error {
	if user.Role == pacer.RoleStudent && user.Student != nil {
		if cached, ok := c.cache.User(user.Uname); ok && cached.Student != nil {
			user.Student.FallExam = cached.Student.FallExam
			user.Student.SpringExam = cached.Student.SpringExam
			user.Student.FallExamFraction = cached.Student.FallExamFraction
			user.Student.SpringExamFraction = cached.Student.SpringExamFraction
			user.Student.FallNotices = cached.Student.FallNotices
			user.Student.SpringNotices = cached.Student.SpringNotices
		}
	}

	tx, err := c.domainPool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	defer tx.Rollback(ctx)

	if err := updateBaseUser(ctx, tx, user); err != nil {
		return err
	}
	if err := updateRoleRow(ctx, tx, user); err != nil {
		return err
	}

	if err := dberr.Wrap(tx.Commit(ctx), "user"); err != nil {
		return err
	}

	if err := c.cache.RefreshUsers(ctx); err != nil {
		c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}
	return nil
}

/*
DeleteUser refuses to delete a Teacher who still has Students pointing
at them, listing their unames. Otherwise it deletes the role-specific
and base rows in the domain store, then the auth credential, before
committing the domain transaction.
*/
func (c *Coordinator) DeleteUser(ctx context.Context, uname string) error {
	cached, ok := c.cache.User(uname)
	if !ok {
		return apperr.NotFound("user")
	}

	if cached.Role == pacer.RoleTeacher {
		students := c.cache.GetStudentsByTeacher(uname)
		if len(students) > 0 {
			details := make([]apperr.FieldError, len(students))
			for i, s := range students {
				details[i] = apperr.FieldError{Field: s.Uname, Message: "still assigned to this teacher"}
			}
			return apperr.Policy(fmt.Sprintf("teacher %s still has students assigned", uname), details...)
		}
	}

	tx, err := c.domainPool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback(ctx)
		}
	}()

	if err := deleteRoleRow(ctx, tx, cached.Role, uname); err != nil {
		return err
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.Uname)
	tag, err := tx.Exec(ctx, deleteQuery, uname)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	if err := c.auth.DeleteUsers(ctx, []string{uname}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		c.logger.Warn("cross_store_inconsistency",
			slog.String("operation", "delete_user"), slog.String("uname", uname), slog.Any("error", err))
		return apperr.CrossStoreInconsistency(err)
	}
	committed = true

	if err := c.cache.RefreshUsers(ctx); err != nil {
		c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}
	return nil
}

/*
BootstrapAdmin upserts the configured default admin on startup: insert
the domain row (and a fresh salt) if absent, then insert or reconcile
the auth credential. A credential present under a different password
is left untouched — an operator has changed it — and only logged at
WARN.
*/
func (c *Coordinator) BootstrapAdmin(ctx context.Context, uname, password, email string) error {
	salt, err := c.fetchOrCreateAdminSalt(ctx, uname, email)
	if err != nil {
		return err
	}

	result, err := c.auth.CheckPassword(ctx, uname, password, salt)
	if err != nil {
		return err
	}

	switch result {
	case authstore.CheckNoSuchUser:
		return c.auth.AddUser(ctx, uname, password, salt)
	case authstore.CheckBadPassword:
		c.logger.Warn("admin_bootstrap_password_mismatch", slog.String("uname", uname))
		return nil
	default:
		return nil
	}
}

/*
UpdateNumbers persists the grade-relevant numeric fields of a Student —
exam scores, exam fractions, notice counts — that [Coordinator.UpdateUser]
otherwise holds fixed against the cache. This is the one path authorized
to change them.
*/
func (c *Coordinator) UpdateNumbers(ctx context.Context, uname string, fallExam, springExam *string, fallFraction, springFraction float64, fallNotices, springNotices int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $7`,
		schema.Students.Table,
		schema.Students.FallExam, schema.Students.SpringExam,
		schema.Students.FallExamFraction, schema.Students.SpringExamFraction,
		schema.Students.FallNotices, schema.Students.SpringNotices,
		schema.Students.Uname,
	)

	tag, err := c.domainPool.Exec(ctx, query, fallExam, springExam, fallFraction, springFraction, fallNotices, springNotices, uname)
	if err != nil {
		return dberr.Wrap(err, "student")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("student")
	}

	if err := c.cache.RefreshUsers(ctx); err != nil {
		c.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}
	return nil
}

func (c *Coordinator) fetchOrCreateAdminSalt(ctx context.Context, uname, email string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Users.Salt, schema.Users.Table, schema.Users.Uname)

	var salt string
	err := c.domainPool.QueryRow(ctx, query, uname).Scan(&salt)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", dberr.Wrap(err, "user")
	}

	salt, err = sec.GenerateSalt(saltLength)
	if err != nil {
		return "", apperr.Internal(err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.Users.Table, schema.Users.Uname, schema.Users.Role, schema.Users.Salt, schema.Users.Email)
	if _, err := c.domainPool.Exec(ctx, insertQuery, uname, pacer.RoleAdmin, salt, email); err != nil {
		return "", dberr.Wrap(err, "user")
	}
	return salt, nil
}
