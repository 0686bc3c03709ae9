// Copyright (c) 2026 Pulseboard. All rights reserved.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pulseboard/pulseboard/pkg/client"
)

func newLoginCommand(app *App) *cobra.Command {
	var username string
	var password string

	loginCommand := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Pulseboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			if err := app.session.Login(cmd.Context(), username, password); err != nil {
				var apiError *client.APIError
				if errors.As(err, &apiError) {
					return fmt.Errorf("login failed: %s", apiError.Message)
				}
				return err
			}

			app.printf("Signed in as %s\n", app.session.User().Username)
			return nil
		},
	}

	loginCommand.Flags().StringVarP(&username, "username", "u", "", "account username")
	loginCommand.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")

	return loginCommand
}

// promptLine reads one line of visible input from the terminal.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("dashctl: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a line with terminal echo disabled.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("dashctl: read password: %w", err)
	}
	return string(raw), nil
}
