package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/export"
	"github.com/it-logbook-api/internal/service"
)

const exportLong = `Export work entries or backup logs to <out>/<Prefix>_<YYYY-MM-DD>.csv.
Filters apply to work entries only.`

var exportCmd = &cobra.Command{
	Use:       "export <entries|backups>",
	Short:     "Write the logbook as a CSV file",
	Long:      exportLong,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"entries", "backups"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		status, _ := cmd.Flags().GetString("status")
		department, _ := cmd.Flags().GetString("department")
		search, _ := cmd.Flags().GetString("search")

		filter := service.EntryFilter{
			Search:     search,
			Status:     domain.Status(status),
			Department: department,
		}
		if status != "" && !filter.Status.Valid() {
			return fmt.Errorf("unknown status %q, want one of %s", status, statusList())
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		a.load(cmd.Context())

		var doc export.Document
		switch args[0] {
		case "entries":
			doc = a.store.ExportWorkEntries(filter, time.Now())
		case "backups":
			doc = a.store.ExportBackupEntries(time.Now())
		default:
			return fmt.Errorf("unknown export %q, want entries or backups", args[0])
		}

		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		path := filepath.Join(out, doc.Filename)
		if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", ".", "Directory to write the CSV file to")
	exportCmd.Flags().String("status", "", "Only export entries with this status ("+statusList()+")")
	exportCmd.Flags().String("department", "", "Only export entries of this department")
	exportCmd.Flags().StringP("search", "s", "", "Only export entries matching this text")
}

// statusList renders the accepted statuses for help and error text.
func statusList() string {
	names := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		names[i] = strconv.Quote(string(s))
	}
	return strings.Join(names, ", ")
}
