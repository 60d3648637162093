package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/it-logbook-api/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply pending migrations and print the schema version.

PostgreSQL is migrated with the embedded goose migrations; a SQLite database
is brought up to date with AutoMigrate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// newApp already prepares the schema.
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Database.Driver == "sqlite" {
			fmt.Fprintf(cmd.OutOrStdout(), "sqlite schema up to date (%s)\n", a.cfg.Database.SQLitePath)
			return nil
		}

		sqlDB, err := a.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		version, err := migrations.Version(sqlDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
