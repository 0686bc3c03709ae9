// Copyright (c) 2026 Pulseboard. All rights reserved.

// dashctl is the terminal client for the Pulseboard dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/pulseboard/pulseboard/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
