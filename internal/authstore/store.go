// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authstore implements the Auth Store API (C3): the {uname → hash}
credential table and the {(uname, key, last_used)} session-key table, in
the separate auth database.

Password hashing and session-key generation live in
[github.com/taibuivan/pacer/internal/platform/sec]; this package owns
only the persistence and the atomic semantics around it.
*/
package authstore

import (
	"context"
)

// CheckResult is the outcome of [Store.CheckPassword].
type CheckResult int

const (
	CheckOK CheckResult = iota
	CheckBadPassword
	CheckNoSuchUser
)

// KeyResult is the outcome of [Store.CheckKey].
type KeyResult int

const (
	KeyOK KeyResult = iota
	KeyInvalid
)

// Store is the Auth Store's full contract.
type Store interface {

	// AddUser fails with [apperr.Conflict] if uname already has a credential row.
	AddUser(ctx context.Context, uname, password, salt string) error

	// AddUsers is atomic: the entire set of unames is pre-checked for
	// collisions; if any collide, nothing is inserted. Returns the count
	// inserted.
	AddUsers(ctx context.Context, entries []NewCredential) (int, error)

	// CheckPassword hashes password with salt (caller-supplied; the auth
	// store never stores salts) and constant-time-compares it to the
	// stored hash.
	CheckPassword(ctx context.Context, uname, password, salt string) (CheckResult, error)

	// CheckPasswordAndIssueKey checks the password and, on success,
	// generates and persists a fresh session key with last_used = now.
	CheckPasswordAndIssueKey(ctx context.Context, uname, password, salt string) (CheckResult, string, error)

	// CheckKey reports Ok only if the (uname, key) row exists and
	// last_used + ttl > now; on Ok, last_used is set to now atomically
	// with the lookup.
	CheckKey(ctx context.Context, uname, key string) (KeyResult, error)

	// CullOldKeys removes every key row with last_used + ttl < now. Safe
	// to call concurrently with CheckKey.
	CullOldKeys(ctx context.Context) (int, error)

	// DeleteUsers removes session keys first, then user rows.
	DeleteUsers(ctx context.Context, unames []string) error
}

// NewCredential is one row of an [Store.AddUsers] batch.
type NewCredential struct {
	Uname    string
	Password string
	Salt     string
}
