// Copyright (c) 2026 Pulseboard. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/pulseboard/pulseboard/internal/platform/apperr"
	"github.com/pulseboard/pulseboard/internal/platform/constants"
	"github.com/pulseboard/pulseboard/internal/platform/ctxutil"
	"github.com/pulseboard/pulseboard/internal/platform/respond"
	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit
// testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous ([RequireAuth] gates
//     protected routes).
//  3. If present, parse and verify the token via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// Verification failures are reported with a single generic message: the
// client never learns whether the cause was expiry or forgery.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
				respond.Error(writer, request, apperr.Unauthorized("Token is not valid"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Token is not valid"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("No authentication token, access denied"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
