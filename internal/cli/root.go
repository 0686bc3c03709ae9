// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package cli implements the dashctl terminal client for Pulseboard.

# Architecture

Every command runs against a shared [App] that owns the API session manager.
The session token persists in the user's config directory, so an earlier
`dashctl login` carries over to later invocations until `dashctl logout`.
*/
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulseboard/pulseboard/pkg/client"
)

// defaultServerURL matches the API server's default port.
const defaultServerURL = "http://localhost:3000"

// App carries the shared state of a dashctl invocation.
type App struct {
	serverURL string
	session   *client.Client
	out       io.Writer
}

// NewRootCommand builds the dashctl command tree.
func NewRootCommand() *cobra.Command {
	app := &App{out: os.Stdout}

	rootCommand := &cobra.Command{
		Use:   "dashctl",
		Short: "Terminal client for the Pulseboard dashboard",
		Long: `dashctl signs in to a Pulseboard server and works with the
dashboard from the terminal: manage your session, inspect your account,
and view the dashboard metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.connect()
		},
	}

	rootCommand.PersistentFlags().StringVar(&app.serverURL, "server",
		defaultServerURL, "base URL of the Pulseboard API server")

	rootCommand.AddCommand(
		newLoginCommand(app),
		newRegisterCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newMetricsCommand(app),
		newStatusCommand(app),
	)

	return rootCommand
}

// connect wires the session manager with the persistent token store.
func (app *App) connect() error {
	tokenStore, err := client.NewFileTokenStore()
	if err != nil {
		return fmt.Errorf("dashctl: %w", err)
	}
	app.session = client.New(app.serverURL, tokenStore)
	return nil
}

// restoreSession recovers the persisted session, translating the anonymous
// case into an actionable message.
func (app *App) restoreSession(cmd *cobra.Command) error {
	if err := app.session.Restore(cmd.Context()); err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			return fmt.Errorf("not signed in, run 'dashctl login' first")
		}
		return err
	}
	return nil
}

func (app *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(app.out, format, args...)
}
