// Copyright (c) 2026 Pulseboard. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by [TokenService.Verify] for every verification
// failure: bad signature, malformed structure, or expiry.
//
// # Why a single error?
//
// Callers must not be able to distinguish a forged token from an expired one,
// otherwise the error message becomes an oracle for attackers probing the
// verification internals.
var ErrInvalidToken = errors.New("sec: invalid or expired token")

// TokenUser is the minimal identity embedded inside a session token.
type TokenUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthClaims represents the payload embedded inside a JWT session token.
//
// The identity is nested under a "user" key, which is the wire format the
// dashboard client expects.
type AuthClaims struct {
	jwt.RegisteredClaims

	User TokenUser `json:"user"`
}

// TokenService issues and verifies HS256-signed session tokens.
//
// Tokens are stateless and self-contained: the signature proves authenticity
// and the embedded expiry proves freshness, so verification never touches
// the database. There is no server-side revocation.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService signing with the given shared secret.
// The secret is process-wide configuration loaded once at startup; an empty
// secret is a fatal misconfiguration.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Issue creates a signed session token for the given identity, valid for ttl.
func (service *TokenService) Issue(user TokenUser, ttl time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		User: user,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token string and returns the
// embedded claims. Any failure collapses to [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
