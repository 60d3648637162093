package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "IT logbook service",
	Long: `logbook records IT work tickets and database backup shift logs.

It serves the JSON API, applies the PostgreSQL schema and exports the
logbook as CSV files.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
