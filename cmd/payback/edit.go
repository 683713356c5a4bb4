// ABOUTME: CLI command for editing existing ledger entries.
// ABOUTME: Re-derives the edited entry and reconciles every day a drink touches.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/engine"
	"github.com/spf13/cobra"
)

var (
	editStyle   string
	editSize    string
	editCount   float64
	editABV     float64
	editML      float64
	editDry     bool
	editBrewery string
	editBrand   string
	editRating  int
	editMinutes int
	editType    string
	editNoBonus bool
	editAt      string
	editNotes   string
)

var editDrinkFlags = []string{"style", "size", "count", "abv", "ml", "dry", "brewery", "brand", "rating"}
var editExerciseFlags = []string{"minutes", "type", "no-bonus"}

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"update"},
	Short:   "Edit a ledger entry",
	Long: `Edit a ledger entry by its ID or ID prefix. The entry keeps its ID;
only the flags you pass change, and its cost or earned minutes are
re-derived from the new values.

Drink entries accept the same flags as 'payback drink'; exercise entries
accept --minutes and --type. Moving a drink to another day re-derives
the streak bonus on both the old and the new day, the same way deleting
and re-logging it would.

EXAMPLES:

  payback edit abc12345 --style pilsner        # Logged the wrong style
  payback edit abc1 --count 2 --rating 5       # It was two, and good
  payback edit abc1 --at "2025-06-01 21:00"    # Actually yesterday
  payback edit abc1 --minutes 45               # The run was longer
  payback edit abc1 --notes ""                 # Clear the notes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := repo.GetEntry(args[0])
		if err != nil {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		if old.IsDebit() {
			for _, name := range editExerciseFlags {
				if cmd.Flags().Changed(name) {
					return fmt.Errorf("--%s only applies to exercise entries", name)
				}
			}
		} else {
			for _, name := range editDrinkFlags {
				if cmd.Flags().Changed(name) {
					return fmt.Errorf("--%s only applies to drink entries", name)
				}
			}
		}

		var edit engine.EditRequest
		if cmd.Flags().Changed("style") {
			edit.Style = &editStyle
		}
		if cmd.Flags().Changed("size") {
			edit.Size = &editSize
		}
		if cmd.Flags().Changed("count") {
			edit.Count = &editCount
		}
		if cmd.Flags().Changed("abv") {
			edit.ABV = &editABV
		}
		if cmd.Flags().Changed("ml") {
			edit.VolumeML = &editML
		}
		if cmd.Flags().Changed("dry") {
			edit.Dry = &editDry
		}
		if cmd.Flags().Changed("brewery") {
			edit.Brewery = &editBrewery
		}
		if cmd.Flags().Changed("brand") {
			edit.Brand = &editBrand
		}
		if cmd.Flags().Changed("rating") {
			edit.Rating = &editRating
		}
		if cmd.Flags().Changed("minutes") {
			edit.Minutes = &editMinutes
		}
		if cmd.Flags().Changed("type") {
			edit.Exercise = &editType
		}
		if cmd.Flags().Changed("no-bonus") {
			bonus := !editNoBonus
			edit.Bonus = &bonus
		}
		if cmd.Flags().Changed("at") {
			at, err := parseTime(editAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", editAt)
			}
			edit.Timestamp = &at
		}
		if cmd.Flags().Changed("notes") {
			edit.Notes = &editNotes
		}

		entries, err := repo.ListEntries(0)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		checkins, err := repo.ListCheckIns(0)
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}

		updated, err := engine.EditEntry(profile, old, edit, entries, checkins)
		if err != nil {
			return err
		}
		if err := repo.UpdateEntry(updated); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		color.Green("✓ Updated %s", updated.Name)
		fmt.Printf("  %s %+d min\n",
			color.New(color.Faint).Sprint(updated.ID.String()[:8]),
			updated.Minutes)
		if updated.IsCredit() && updated.BonusNote != "" {
			fmt.Printf("  %s\n", updated.BonusNote)
		}

		if updated.IsDebit() {
			result, err := engine.ReconcileDay(repo, profile, old.Timestamp)
			if err != nil {
				return fmt.Errorf("failed to reconcile day: %w", err)
			}
			if !sameDate(old.Timestamp, updated.Timestamp) {
				moved, err := engine.ReconcileDay(repo, profile, updated.Timestamp)
				if err != nil {
					return fmt.Errorf("failed to reconcile day: %w", err)
				}
				result.BonusGained = result.BonusGained || moved.BonusGained
				result.BonusLost = result.BonusLost || moved.BonusLost
			}
			if result.BonusGained {
				color.Green("  🔥 streak bonus restored on that day's exercise")
			}
			if result.BonusLost {
				color.Yellow("  ⚠ streak bonus on that day's exercise was revoked")
			}
		}
		return nil
	},
}

// sameDate reports whether two instants fall on the same local calendar day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func init() {
	editCmd.Flags().StringVar(&editStyle, "style", "", "new beer style")
	editCmd.Flags().StringVar(&editSize, "size", "", "new serving size in ml")
	editCmd.Flags().Float64VarP(&editCount, "count", "c", 1, "new number of servings")
	editCmd.Flags().Float64Var(&editABV, "abv", 0, "new ABV percent")
	editCmd.Flags().Float64Var(&editML, "ml", 0, "new volume for custom drinks")
	editCmd.Flags().BoolVar(&editDry, "dry", false, "new dry flag for custom drinks")
	editCmd.Flags().StringVar(&editBrewery, "brewery", "", "new brewery name")
	editCmd.Flags().StringVar(&editBrand, "brand", "", "new beer brand/name")
	editCmd.Flags().IntVar(&editRating, "rating", 0, "new rating 1-5")
	editCmd.Flags().IntVar(&editMinutes, "minutes", 0, "new exercise duration in minutes")
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "new exercise type")
	editCmd.Flags().BoolVar(&editNoBonus, "no-bonus", false, "skip the streak multiplier when re-deriving")
	editCmd.Flags().StringVar(&editAt, "at", "", "new timestamp (YYYY-MM-DD HH:MM)")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "new notes (empty clears them)")
	rootCmd.AddCommand(editCmd)
}
