// Copyright (c) 2026 Pulseboard. All rights reserved.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulseboard/pulseboard/pkg/client"
)

func newRegisterCommand(app *App) *cobra.Command {
	var input client.RegisterInput

	registerCommand := &cobra.Command{
		Use:   "register",
		Short: "Create a new Pulseboard account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if input.Username == "" {
				if input.Username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			if input.Email == "" {
				if input.Email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			if input.FirstName == "" {
				if input.FirstName, err = promptLine("First name: "); err != nil {
					return err
				}
			}
			if input.LastName == "" {
				if input.LastName, err = promptLine("Last name: "); err != nil {
					return err
				}
			}
			if input.Password == "" {
				if input.Password, err = promptPassword("Password: "); err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != input.Password {
					return fmt.Errorf("passwords do not match")
				}
			}

			if err := app.session.Register(cmd.Context(), input); err != nil {
				var apiError *client.APIError
				if errors.As(err, &apiError) {
					return fmt.Errorf("registration failed: %s", apiError.Message)
				}
				return err
			}

			app.printf("Account created, signed in as %s\n", app.session.User().Username)
			return nil
		},
	}

	flags := registerCommand.Flags()
	flags.StringVarP(&input.Username, "username", "u", "", "account username")
	flags.StringVarP(&input.Email, "email", "e", "", "account email")
	flags.StringVarP(&input.Password, "password", "p", "", "account password (prompted when omitted)")
	flags.StringVar(&input.FirstName, "first-name", "", "first name")
	flags.StringVar(&input.LastName, "last-name", "", "last name")

	return registerCommand
}
