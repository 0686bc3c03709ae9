// Copyright (c) 2026 Pulseboard. All rights reserved.

package cli

import (
	"github.com/spf13/cobra"
)

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(); err != nil {
				return err
			}
			app.printf("Signed out\n")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd); err != nil {
				return err
			}

			user := app.session.User()
			app.printf("Username:  %s\n", user.Username)
			app.printf("Name:      %s %s\n", user.FirstName, user.LastName)
			app.printf("Email:     %s\n", user.Email)
			app.printf("Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := app.session.Health(cmd.Context())
			if err != nil {
				return err
			}

			app.printf("Server:      %s\n", app.serverURL)
			app.printf("Status:      %v\n", health["status"])
			app.printf("Database:    %v\n", health["database"])
			app.printf("Environment: %v\n", health["environment"])
			return nil
		},
	}
}
