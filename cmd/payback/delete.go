// ABOUTME: CLI command for deleting ledger entries and check-ins.
// ABOUTME: Deleting a drink reconciles its day, restoring any revoked bonus.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/engine"
	"github.com/spf13/cobra"
)

var deleteCheckin bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a ledger entry",
	Long: `Delete a ledger entry by its ID or ID prefix.

You can use either the full UUID or just the first few characters
(prefix). The ID prefix is shown in the first column of 'payback list'
output.

Deleting a drink re-derives the bonus for that day's exercise: if the
drink was the only one that day and a streak was active, the revoked
multiplier comes back.

EXAMPLES:

  payback delete abc12345          # Delete by 8-char prefix
  payback rm abc1                  # Short prefix (if unique)
  payback delete --checkin abc1    # Delete a check-in instead

CAUTION:

  This permanently deletes the record. There is no undo.
  If the prefix matches multiple records, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		if deleteCheckin {
			c, err := repo.GetCheckIn(idOrPrefix)
			if err != nil {
				return fmt.Errorf("check-in not found: %s", idOrPrefix)
			}
			if err := repo.DeleteCheckIn(idOrPrefix); err != nil {
				return fmt.Errorf("failed to delete check-in: %w", err)
			}
			color.Yellow("✗ Deleted check-in")
			fmt.Printf("  %s %s\n",
				color.New(color.Faint).Sprint(c.ID.String()[:8]),
				c.Timestamp.Format("2006-01-02"))
			return nil
		}

		entry, err := repo.DeleteEntry(idOrPrefix)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		color.Yellow("✗ Deleted %s", entry.Name)
		fmt.Printf("  %s %+d min\n",
			color.New(color.Faint).Sprint(entry.ID.String()[:8]),
			entry.Minutes)

		if entry.IsDebit() {
			result, err := engine.ReconcileDay(repo, profile, entry.Timestamp)
			if err != nil {
				return fmt.Errorf("failed to reconcile day: %w", err)
			}
			if result.BonusGained {
				color.Green("  🔥 streak bonus restored on that day's exercise")
			}
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteCheckin, "checkin", false, "delete a check-in instead of an entry")
	rootCmd.AddCommand(deleteCmd)
}
