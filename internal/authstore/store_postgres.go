// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
	"github.com/taibuivan/pacer/internal/platform/sec"
)

// store implements [Store] against the auth database.
type store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewStore constructs a PostgreSQL-backed Auth Store. ttl <= 0 defaults to
// [pacer.DefaultSessionKeyTTL].
func NewStore(pool *pgxpool.Pool, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = pacer.DefaultSessionKeyTTL
	}
	return &store{pool: pool, ttl: ttl}
}

// AddUser fails with [apperr.Conflict] if uname already exists.
func (s *store) AddUser(ctx context.Context, uname, password, salt string) error {
	hash, err := sec.HashPassword(password, salt)
	if err != nil {
		return apperr.Internal(err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.AuthUsers.Table, schema.AuthUsers.Uname, schema.AuthUsers.Hash)

	_, err = s.pool.Exec(ctx, query, uname, hash)
	return dberr.Wrap(err, "credential")
}

/*
AddUsers pre-checks the whole set of unames inside one transaction; if any
collide, nothing is inserted.
*/
func (s *store) AddUsers(ctx context.Context, entries []NewCredential) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "credentials")
	}
	defer tx.Rollback(ctx)

	unames := make([]string, len(entries))
	for i, e := range entries {
		unames[i] = e.Uname
	}

	var collisions int
	checkQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ANY($1)`,
		schema.AuthUsers.Table, schema.AuthUsers.Uname)
	if err := tx.QueryRow(ctx, checkQuery, unames).Scan(&collisions); err != nil {
		return 0, dberr.Wrap(err, "credentials")
	}
	if collisions > 0 {
		return 0, apperr.Conflict(fmt.Sprintf("%d uname(s) already have credentials", collisions))
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.AuthUsers.Table, schema.AuthUsers.Uname, schema.AuthUsers.Hash)

	batch := &pgx.Batch{}
	for _, e := range entries {
		hash, err := sec.HashPassword(e.Password, e.Salt)
		if err != nil {
			return 0, apperr.Internal(err)
		}
		batch.Queue(insertQuery, e.Uname, hash)
	}

	results := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, dberr.Wrap(err, "credentials")
		}
	}
	if err := results.Close(); err != nil {
		return 0, dberr.Wrap(err, "credentials")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "credentials")
	}

	return len(entries), nil
}

// CheckPassword reports Ok, BadPassword, or NoSuchUser. Hash comparison is
// constant-time.
func (s *store) CheckPassword(ctx context.Context, uname, password, salt string) (CheckResult, error) {
	hash, err := s.fetchHash(ctx, uname)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
			return CheckNoSuchUser, nil
		}
		return CheckNoSuchUser, err
	}

	ok, err := sec.CheckPasswordHash(password, salt, hash)
	if err != nil {
		return CheckNoSuchUser, apperr.Internal(err)
	}
	if !ok {
		return CheckBadPassword, nil
	}
	return CheckOK, nil
}

// CheckPasswordAndIssueKey checks the password and, on success, persists a
// fresh session key with last_used = now.
func (s *store) CheckPasswordAndIssueKey(ctx context.Context, uname, password, salt string) (CheckResult, string, error) {
	result, err := s.CheckPassword(ctx, uname, password, salt)
	if err != nil || result != CheckOK {
		return result, "", err
	}

	key, err := sec.GenerateSessionKey(sec.SessionKeyDefaultLength)
	if err != nil {
		return CheckNoSuchUser, "", apperr.Internal(err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, now())`,
		schema.Keys.Table, schema.Keys.Key, schema.Keys.Uname, schema.Keys.LastUsed)

	if _, err := s.pool.Exec(ctx, query, key, uname); err != nil {
		return CheckNoSuchUser, "", dberr.Wrap(err, "session key")
	}

	return CheckOK, key, nil
}

/*
CheckKey reports Ok only if the (uname, key) row exists and
last_used + ttl > now, updating last_used to now atomically with the
lookup via a single UPDATE ... WHERE ... RETURNING — this resolves the
lookup-then-renew race a separate SELECT+UPDATE pair would have.
*/
func (s *store) CheckKey(ctx context.Context, uname, key string) (KeyResult, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = now()
		 WHERE %s = $1 AND %s = $2 AND %s + $3 > now()
		 RETURNING %s`,
		schema.Keys.Table, schema.Keys.LastUsed,
		schema.Keys.Key, schema.Keys.Uname, schema.Keys.LastUsed,
		schema.Keys.Key,
	)

	var returned string
	err := s.pool.QueryRow(ctx, query, key, uname, s.ttl).Scan(&returned)
	if err != nil {
		return KeyInvalid, nil
	}
	return KeyOK, nil
}

// CullOldKeys removes every key row whose TTL has elapsed.
func (s *store) CullOldKeys(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s + $1 < now()`, schema.Keys.Table, schema.Keys.LastUsed)

	tag, err := s.pool.Exec(ctx, query, s.ttl)
	if err != nil {
		return 0, dberr.Wrap(err, "session keys")
	}
	return int(tag.RowsAffected()), nil
}

// DeleteUsers removes session keys first, then user rows, within a single
// transaction.
func (s *store) DeleteUsers(ctx context.Context, unames []string) error {
	if len(unames) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "credentials")
	}
	defer tx.Rollback(ctx)

	deleteKeysQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, schema.Keys.Table, schema.Keys.Uname)
	if _, err := tx.Exec(ctx, deleteKeysQuery, unames); err != nil {
		return dberr.Wrap(err, "session keys")
	}

	deleteUsersQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, schema.AuthUsers.Table, schema.AuthUsers.Uname)
	if _, err := tx.Exec(ctx, deleteUsersQuery, unames); err != nil {
		return dberr.Wrap(err, "credentials")
	}

	return dberr.Wrap(tx.Commit(ctx), "credentials")
}

func (s *store) fetchHash(ctx context.Context, uname string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.AuthUsers.Hash, schema.AuthUsers.Table, schema.AuthUsers.Uname)

	var hash string
	if err := s.pool.QueryRow(ctx, query, uname).Scan(&hash); err != nil {
		return "", dberr.Wrap(err, "credential")
	}
	return hash, nil
}
