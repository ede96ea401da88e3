// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

import "time"

// SessionKey is an ephemeral credential issued at login. At-most-one row
// exists per (Uname, Key) pair; multiple keys may coexist for one Uname
// (multiple concurrent sessions/devices).
type SessionKey struct {
	Key      string
	Uname    string
	LastUsed time.Time
}

// DefaultSessionKeyTTL is the default lifetime of a session key measured
// from its last use.
const DefaultSessionKeyTTL = 20 * time.Minute

// Expired reports whether the key is no longer valid at instant now,
// i.e. LastUsed + ttl <= now.
func (k SessionKey) Expired(ttl time.Duration, now time.Time) bool {
	return !k.LastUsed.Add(ttl).After(now)
}
