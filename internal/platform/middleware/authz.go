// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Pacer API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/constants"
	"github.com/taibuivan/pacer/internal/platform/ctxkey"
	"github.com/taibuivan/pacer/internal/platform/respond"
)

// KeyVerifier checks an opaque session key against the Auth Store, renewing
// its TTL on success, and returns the caller's identity.
//
// # Why an interface?
//
// Defining KeyVerifier here decouples the middleware from the auth store's
// implementation, allowing us to inject mocks during unit testing.
type KeyVerifier interface {
	CheckKey(ctx context.Context, uname, key string) (*pacer.Principal, error)
}

// Authenticate extracts and verifies the caller's session key from the
// [constants.HeaderPacerUname]/[constants.HeaderPacerKey] header pair.
//
// # Flow
//  1. Check for both headers.
//  2. If either is absent, request proceeds as anonymous.
//  3. If present, verify the pair via [KeyVerifier.CheckKey].
//  4. Inject [*pacer.Principal] into the request context for downstream use.
func Authenticate(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			uname := request.Header.Get(constants.HeaderPacerUname)
			key := request.Header.Get(constants.HeaderPacerKey)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if uname == "" || key == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Key Verification ────────────────────────────────────────────
			principal, err := verifier.CheckKey(request.Context(), uname, key)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session key"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := GetUser(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests unless the authenticated caller holds exactly
// the given role. Roles form no hierarchy in this system: a Boss is not a
// Teacher and a Teacher is not a Student, so equality is the only check.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
func RequireRole(role pacer.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := GetUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if principal.Role != role {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAnyRole blocks requests unless the authenticated caller holds one
// of the given roles. Useful for endpoints shared by Admin and Boss, or by
// Teacher and Student.
func RequireAnyRole(roles ...pacer.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := GetUser(request.Context())

			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(writer, request)
					return
				}
			}

			respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
		})
	}
}

// GetUser retrieves the [*pacer.Principal] from the [context.Context].
//
// # Returns
//   - A pointer to [*pacer.Principal] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *pacer.Principal {
	principal, ok := ctx.Value(ctxkey.KeyUser).(*pacer.Principal)
	if !ok {
		return nil
	}
	return principal
}
