// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard/internal/platform/apperr"
	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing session tokens.
type TokenProvider interface {
	// Issue creates a signed session token embedding the given identity,
	// valid for timeToLive.
	Issue(user sec.TokenUser, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases: credential registration,
// credential verification, and session-token issuance.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	tokenTTL       time.Duration
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, tokenTTL time.Duration) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		tokenTTL:       tokenTTL,
	}
}

// Session is the result of a successful registration or login: a signed
// bearer token plus the account it identifies.
type Session struct {
	Token string
	User  *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member. Field
// validation happens at the transport boundary; this layer assumes
// well-formed input and enforces uniqueness.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register hashes, persists, and establishes a session for a new user account.

Description: Uniqueness is pre-checked username first, then email — an
ordering contract: when both collide, the username conflict is the one
reported. The pre-check is advisory under concurrency; the store's own
constraint is the final authority and the sole serialization point, so a
racing duplicate still surfaces as a Conflict from Create.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: Signed token and created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// Verify username uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username already exists")
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	// Persist the user; the store assigns the ID and timestamps.
	if err := service.userRepository.Create(ctx, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	token, err := service.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity with a constant-time password comparison. An
unknown username and a wrong password produce the same generic error so the
response cannot be used to enumerate accounts.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: Signed token and the authenticated entity
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByUsername(ctx, input.Username)

	// Unknown user: generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Verify the password hash. bcrypt compares in constant time.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

// # Identity Resolution

/*
GetCurrentUser re-resolves the account behind a verified token claim.

Description: The claim only carries id and username; the fresh record is
fetched so the caller always sees current profile fields. A record deleted
out-of-band since token issuance yields NotFound.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims

Returns:
  - *User: Hydrated entity (password hash never serializes)
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetCurrentUser(ctx context.Context, claims *sec.AuthClaims) (*User, error) {
	user, err := service.userRepository.FindByUsername(ctx, claims.User.Username)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_current_user_failed: %w", err)
	}
	return user, nil
}

// issueToken signs a session token carrying the minimal identity claim.
func (service *Service) issueToken(user *User) (string, error) {
	token, err := service.tokenProvider.Issue(sec.TokenUser{
		ID:       user.ID,
		Username: user.Username,
	}, service.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}
	return token, nil
}
