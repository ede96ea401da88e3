// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Authentication: session header names.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "pacer-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication
//
// Session identity travels as a pair of plain headers rather than a bearer
// token: the caller's uname and the opaque key issued at login.

const (
	// HeaderPacerUname carries the caller's uname on every authenticated request.
	HeaderPacerUname = "X-Pacer-Uname"

	// HeaderPacerKey carries the opaque session key issued at login.
	HeaderPacerKey = "X-Pacer-Key"

	// ContextKeyUser names the principal's request-context entry; the context
	// itself is keyed by [ctxkey.KeyUser], not by this string.
	ContextKeyUser = "user_claims"
)

// # Correlation & Proxy Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// ProdOriginSuffix is the domain suffix allowed to make cross-origin
// requests in production.
const ProdOriginSuffix = "pacer.app"

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas
//
// The data store and the auth store are two separate Postgres databases
// (see [SPEC_FULL.md] §4.8); each keeps its tables in its own schema.

const (
	SchemaData = "data"
	SchemaAuth = "auth"
)

// # Redis Keys
//
// Redis holds no durable state; it only coordinates the culler's
// leader election and the Global Cache's cross-replica invalidation.

const (
	RedisKeyCullerLock          = "pacer:culler:lock"
	RedisChannelCacheInvalidate = "pacer:cache:invalidate"
)
