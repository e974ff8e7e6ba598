// Package cmd holds the rentwatch command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := &cobra.Command{
		Use:           "rentwatch",
		Short:         "Rental portfolio backend: reports, contract expiry alerts and notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		RunCmd(),
		TokenCmd(),
		SeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
