// Copyright (c) 2026 Pulseboard. All rights reserved.

package cli

import (
	"github.com/spf13/cobra"
)

// metricCard mirrors one dashboard tile.
type metricCard struct {
	title string
	value string
}

// dashboardCards are the placeholder metrics shown on the dashboard until
// real telemetry lands.
// TODO: replace with a /api/metrics endpoint once the server collects real data.
var dashboardCards = []metricCard{
	{title: "Server Status", value: "Online"},
	{title: "CPU Usage", value: "23%"},
	{title: "Database Connections", value: "42"},
	{title: "Requests per Minute", value: "256"},
}

func newMetricsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the dashboard metric cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The dashboard is a signed-in view.
			if err := app.restoreSession(cmd); err != nil {
				return err
			}

			app.printf("Welcome back, %s!\n\n", app.session.User().FirstName)
			for _, card := range dashboardCards {
				app.printf("%-22s %s\n", card.title, card.value)
			}
			return nil
		},
	}
}
