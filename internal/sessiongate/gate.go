// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sessiongate implements the Session Gate (C7): login issues a
session key, and a per-request check verifies one on every subsequent
call. It implements [middleware.KeyVerifier] so the platform
middleware chain can authenticate requests without depending on the
auth store directly.
*/
package sessiongate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/pacer/internal/authstore"
	"github.com/taibuivan/pacer/internal/globcache"
	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
)

// badCredentialsMessage is returned uniformly regardless of whether the
// uname is unknown or the password was wrong — the gate never lets a
// caller distinguish "no such user" from "wrong password" (spec §4.7).
// Login takes no role, so no role check is made.
const badCredentialsMessage = "invalid uname or password"

// Gate is the Session Gate. It consults the Global Cache to resolve a
// uname before ever touching the Auth Store, and throttles login
// attempts per uname to blunt brute-forcing despite the uniform
// response.
type Gate struct {
	auth    authstore.Store
	cache   *globcache.Cache
	limiter *perKeyLimiter
}

// New constructs a Gate. loginRate/loginBurst configure the per-uname
// login-attempt limiter.
func New(auth authstore.Store, cache *globcache.Cache, loginRate rate.Limit, loginBurst int) *Gate {
	return &Gate{
		auth:    auth,
		cache:   cache,
		limiter: newPerKeyLimiter(loginRate, loginBurst),
	}
}

// LoginResult is returned to the caller on a successful login: the key
// to carry on subsequent requests and the uname it was issued to.
type LoginResult struct {
	Uname string
	Key   string
	Role  pacer.Role
}

/*
Login looks up uname in the Global Cache; if absent, it still delegates
to the Auth Store with a synthetic salt so the round-trip time is
indistinguishable from a real lookup, then returns the fixed bad-
credentials error regardless of outcome. On a genuine hit it delegates
to the Auth Store's check-and-issue.
*/
func (g *Gate) Login(ctx context.Context, uname, password string) (*LoginResult, error) {
	if !g.limiter.Allow(uname) {
		return nil, apperr.RateLimited(1)
	}

	user, ok := g.cache.User(uname)
	if !ok {
		// Still touch the Auth Store, with the real uname, so a timing
		// side-channel can't distinguish "no such user" from "known user,
		// bad password": CheckPassword already fails closed to NoSuchUser
		// in that case, and the response is the same either way.
		_, _, _ = g.auth.CheckPasswordAndIssueKey(ctx, uname, password, "")
		return nil, apperr.Auth(badCredentialsMessage)
	}

	result, key, err := g.auth.CheckPasswordAndIssueKey(ctx, uname, password, user.Salt)
	if err != nil {
		return nil, err
	}
	if result != authstore.CheckOK {
		return nil, apperr.Auth(badCredentialsMessage)
	}

	return &LoginResult{Uname: uname, Key: key, Role: user.Role}, nil
}

/*
CheckKey implements [middleware.KeyVerifier]: it delegates to the Auth
Store and, on success, resolves the caller's current role from the
Global Cache so authorization reflects the user's latest role even if
it changed since the key was issued.
*/
func (g *Gate) CheckKey(ctx context.Context, uname, key string) (*pacer.Principal, error) {
	result, err := g.auth.CheckKey(ctx, uname, key)
	if err != nil {
		return nil, err
	}
	if result != authstore.KeyOK {
		return nil, apperr.Auth("invalid or expired session key")
	}

	user, ok := g.cache.User(uname)
	if !ok {
		return nil, apperr.Auth("invalid or expired session key")
	}

	return &pacer.Principal{Uname: uname, Role: user.Role}, nil
}

// loginClient pairs a per-uname token bucket with the last time it was
// touched, so idle entries can be swept — same shape as the platform
// middleware's per-IP rate limiter.
type loginClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// perKeyLimiter holds one [rate.Limiter] per uname, created lazily, and
// is periodically swept by [Gate.RunLimiterCleanup].
type perKeyLimiter struct {
	r     rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*loginClient
}

func newPerKeyLimiter(r rate.Limit, burst int) *perKeyLimiter {
	return &perKeyLimiter{r: r, burst: burst, clients: make(map[string]*loginClient)}
}

func (l *perKeyLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, ok := l.clients[key]
	if !ok {
		client = &loginClient{limiter: rate.NewLimiter(l.r, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (l *perKeyLimiter) cleanup(ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for uname, client := range l.clients {
		if time.Since(client.lastSeen) > ttl {
			delete(l.clients, uname)
		}
	}
}

// RunLimiterCleanup periodically evicts idle per-uname limiter entries
// until ctx is cancelled; run it in its own goroutine.
func (g *Gate) RunLimiterCleanup(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.limiter.cleanup(ttl)
		}
	}
}

// DefaultLoginRate and DefaultLoginBurst are the per-uname login
// throttle defaults: one attempt every 2 seconds, bursting to 5.
const (
	DefaultLoginRate  = rate.Limit(1.0 / 2.0)
	DefaultLoginBurst = 5
)
