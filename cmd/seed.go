package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"rentwatch/config"
	"rentwatch/database"
	"rentwatch/database/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SeedCmd writes a demo portfolio into the configured store.
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with a demo portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := bootstrap()
			if config.IsProduction() {
				return fmt.Errorf("refusing to seed a production store")
			}
			opts := seed.DefaultOptions
			opts.Apartments, _ = cmd.Flags().GetInt("apartments")
			opts.RoomsPerApartment, _ = cmd.Flags().GetInt("rooms")
			opts.ExpiringContracts, _ = cmd.Flags().GetInt("expiring")
			randSeed, _ := cmd.Flags().GetInt64("rand-seed")

			ctx := cmd.Context()
			gw, err := database.OpenGateway(ctx)
			if err != nil {
				return err
			}
			defer database.Close(context.Background())

			ds := seed.Demo(time.Now(), rand.New(rand.NewSource(randSeed)), opts)
			written, err := seed.Load(ctx, gw, ds)
			if err != nil {
				logger.Error("Seeding stopped", zap.Int("written", written), zap.Error(err))
				return err
			}
			logger.Info("Seeded demo data", zap.Int("documents", written))
			return nil
		},
	}
	cmd.Flags().Int("apartments", seed.DefaultOptions.Apartments, "Number of apartments")
	cmd.Flags().Int("rooms", seed.DefaultOptions.RoomsPerApartment, "Rooms per apartment")
	cmd.Flags().Int("expiring", seed.DefaultOptions.ExpiringContracts, "Contracts ending inside the expiry lookahead")
	cmd.Flags().Int64("rand-seed", 1, "Random seed for amounts and dates")
	return cmd
}
