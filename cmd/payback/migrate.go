// ABOUTME: CLI command for moving ledger data between storage backends.
// ABOUTME: Copies sqlite data into Charm KV or vice versa, skipping known IDs.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/charm"
	"github.com/harperreed/payback/internal/storage"
	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate <target>",
	Short: "Move ledger data to another backend",
	Long: `Copy all ledger data from the current backend into another one.

TARGETS:

  charm    Copy local SQLite data into Charm KV (before enabling sync)
  sqlite   Copy Charm KV data into local SQLite (to leave sync behind)

Records whose IDs already exist in the target are skipped, so running
the migration twice is safe. The source is never modified.

USAGE:

  payback migrate charm --dry-run   # Preview what would be copied
  payback migrate charm             # Copy, then switch backends:
  payback config set --backend charm`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sqlite", "charm"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		// The global repo is the source; the target opens separately.
		var dst storage.Repository
		var err error
		switch target {
		case "charm":
			if cfg.GetBackend() == "charm" {
				return fmt.Errorf("backend is already charm; nothing to migrate")
			}
			dst, err = charm.GetClient()
		case "sqlite":
			if cfg.GetBackend() == "sqlite" {
				return fmt.Errorf("backend is already sqlite; nothing to migrate")
			}
			dst, err = storage.Open(filepath.Join(cfg.GetDataDir(), "payback.db"))
		default:
			return fmt.Errorf("unknown target: %s (use sqlite or charm)", target)
		}
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", target, err)
		}
		defer dst.Close()

		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read source data: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			fmt.Printf("Would copy %d entries and %d check-ins to %s.\n",
				len(data.Entries), len(data.CheckIns), target)
			return nil
		}

		if err := dst.ImportData(data); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d entries and %d check-ins to %s",
			len(data.Entries), len(data.CheckIns), target)
		fmt.Println()
		fmt.Println("To switch over, run:")
		fmt.Printf("  payback config set --backend %s\n", target)

		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
