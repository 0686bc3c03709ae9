// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups report absence through an apperr.NotFound error rather than a nil
// entity, so callers always branch on the error.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and fills in the
		store-generated ID and timestamps.

		The store is the final authority on username/email uniqueness: a
		constraint violation surfaces as an apperr.Conflict even when the
		caller pre-checked.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or persistence failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		Count returns the total number of user records.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - int64: Record count
		  - error: Database retrieval failures
	*/
	Count(ctx context.Context) (int64, error)
}
