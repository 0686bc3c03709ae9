// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is the minimum accepted password length at
	// registration. Existing hashes are never re-validated against it.
	MinPasswordLength = 6

	// MinUsernameLength keeps usernames readable in logs and URLs.
	MinUsernameLength = 3

	// MaxPasswordBytes is bcrypt's input limit; longer passwords fail to
	// hash, so they are rejected at validation instead.
	MaxPasswordBytes = 72
)

// # Bootstrap Account

// Credentials of the seeded administrative record. Seeding is an explicit
// operator opt-in (SEED_ADMIN_USER) and only fires on an empty users table;
// the placeholder password is well known and must be rotated immediately.
const (
	DefaultAdminUsername  = "admin"
	DefaultAdminEmail     = "admin@example.com"
	DefaultAdminPassword  = "password123"
	DefaultAdminFirstName = "Admin"
	DefaultAdminLastName  = "User"
)
