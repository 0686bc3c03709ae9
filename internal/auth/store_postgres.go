// Copyright (c) 2026 Pulseboard. All rights reserved.

// PostgreSQL implementation of the credential store.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] values so that no storage implementation
// detail leaks past this file.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pulseboard/pulseboard/internal/platform/apperr"
)

// DB is the narrow slice of pgxpool.Pool the repository needs. It is
// satisfied by *pgxpool.Pool in production and by pgxmock in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create persists a new user record into the users table.

Description: The id is generated by the store and written back into the
entity, along with the store-maintained timestamps. Unique-constraint
violations are classified by constraint name so the conflict message names
the colliding field.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on uniqueness violations, otherwise wrapped
    connectivity/constraint errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if conflict := conflictFromPgError(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup by username for authentication and identity
resolution.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE username = $1`

	return repository.scanOne(ctx, query, username)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE email = $1`

	return repository.scanOne(ctx, query, email)
}

/*
Count returns the total number of user records.

Description: Used by the bootstrap seeding check on startup.

Parameters:
  - ctx: context.Context

Returns:
  - int64: Record count
  - error: Database errors
*/
func (repository *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	const query = "SELECT COUNT(*) FROM users"

	var total int64
	if err := repository.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	return total, nil
}

// scanOne runs a single-row user query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// conflictFromPgError translates a unique-constraint violation into the
// client-facing conflict error, or returns nil for any other failure.
func conflictFromPgError(err error) *apperr.AppError {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgError.ConstraintName {
	case "users_username_key":
		return apperr.Conflict("Username already exists")
	case "users_email_key":
		return apperr.Conflict("Email already exists")
	default:
		return apperr.Conflict("User already exists")
	}
}
