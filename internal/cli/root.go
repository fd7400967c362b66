package cli

import (
	"fmt"

	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "autospactl",
		Short:         "Administer the AutoSpa POS backend",
		Long:          "autospactl migrates and seeds the database, manages staff accounts and exports sales reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newReportCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// connect loads configuration and opens the database
func connect() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, db, nil
}
