// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package auth implements the user identity layer of the dashboard.

It defines the core domain entity (User) and the logic for credential
registration, credential verification, and session-token issuance.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all business rules related to user
identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered member of the dashboard.
//
// Records are created only via registration; there is no update or delete
// path. Username and email are unique across all records, enforced by the
// credential store.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldToken     = "token"
	FieldUser      = "user"
)
