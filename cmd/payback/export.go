// ABOUTME: CLI commands for exporting and importing ledger data.
// ABOUTME: Supports JSON, YAML, and CSV export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportCSVSet string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export ledger data",
	Long: `Export ledger data in various formats.

FORMATS:

  json    Full JSON export (suitable for backup/restore)
  yaml    YAML export (human-readable)
  csv     CSV rows, oldest first (for spreadsheets)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --csv          Which table to export as CSV: entries (default) or checkins

EXAMPLES:

  payback export json                   # Export all data as JSON
  payback export json -o backup.json    # Save to file
  payback export yaml                   # Export as YAML
  payback export csv                    # Entries as CSV
  payback export csv --csv checkins     # Check-ins as CSV`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		export, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = export.MarshalJSONIndent()
		case "yaml":
			data, err = export.MarshalYAMLBytes()
		case "csv":
			switch exportCSVSet {
			case "", "entries":
				data, err = export.EntriesCSV()
			case "checkins":
				data, err = export.CheckInsCSV()
			default:
				return fmt.Errorf("unknown csv table: %s (use entries or checkins)", exportCSVSet)
			}
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or csv)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import ledger data from JSON",
	Long: `Import ledger data from a JSON backup file.

Entries and check-ins whose IDs already exist locally are skipped, so
importing the same backup twice is safe.

EXAMPLES:

  payback import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		parsed, err := storage.UnmarshalExport(data)
		if err != nil {
			return fmt.Errorf("invalid backup file: %w", err)
		}

		if err := repo.ImportData(parsed); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  %d entries, %d check-ins in backup\n", len(parsed.Entries), len(parsed.CheckIns))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportCSVSet, "csv", "entries", "csv table: entries or checkins")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
