// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

/*
SeedAdminUser provisions the bootstrap administrator account.

Description: Runs only against an empty users table so it never clobbers a
real deployment. The account uses the well-known default credentials and is
meant for first login on a fresh install; the operator is loudly warned to
rotate the password.

Parameters:
  - ctx: context.Context
  - userRepo: UserRepository
  - logger: *slog.Logger

Returns:
  - error: Storage failures; nil when the table was already populated
*/
func SeedAdminUser(ctx context.Context, userRepo UserRepository, logger *slog.Logger) error {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("auth_seed_count_failed: %w", err)
	}
	if count > 0 {
		logger.InfoContext(ctx, "seed_skipped_users_exist", slog.Int64("user_count", count))
		return nil
	}

	hashedPassword, err := sec.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("auth_seed_hash_failed: %w", err)
	}

	admin := &User{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: hashedPassword,
		FirstName:    DefaultAdminFirstName,
		LastName:     DefaultAdminLastName,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("auth_seed_create_failed: %w", err)
	}

	logger.WarnContext(ctx, "seed_admin_created",
		slog.String("username", DefaultAdminUsername),
		slog.String("notice", "default credentials in use, change the password immediately"),
	)
	return nil
}
