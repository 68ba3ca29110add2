package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passprove/internal/platform/config"
	"passprove/internal/platform/logger"
	"passprove/internal/platform/postgres"
)

var seedDev bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.Log.Level, cfg.Log.Format)

		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.InfoContext(ctx, "migrations applied")

		if seedDev {
			if err := postgres.SeedDevShop(ctx, db); err != nil {
				return err
			}
			log.InfoContext(ctx, "dev shop seeded",
				"shop_id", postgres.DevShopID,
				"api_key", postgres.DevShopAPIKey,
			)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedDev, "seed-dev", false, "insert a local development shop")
}
