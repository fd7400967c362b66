package cli

import (
	"fmt"

	"github.com/autospa/autospa-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed roles, permissions, shop settings and the admin account",
		Long:  "Seed is idempotent. The admin account is created from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME when set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			if err := database.SeedDefaultData(db, cfg.Shop); err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Default data seeded")
			return nil
		},
	}
}
