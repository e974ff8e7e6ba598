package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"rentwatch/database"
	"rentwatch/services/tasks"

	"github.com/spf13/cobra"
)

var jobNames = map[string]string{
	"expiry-scan": tasks.TypeExpiryScan,
	"purge":       tasks.TypeRetentionPurge,
}

// RunCmd runs one scheduled job immediately and prints its result.
func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "run [expiry-scan|purge]",
		Short:     "Run a scheduled job once",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"expiry-scan", "purge"},
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap()
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer database.Close(context.Background())

			res, runErr := a.runner.Run(ctx, jobNames[args[0]])
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("%s: %w", args[0], runErr)
			}
			return nil
		},
	}
}
