// ABOUTME: CLI command for logging exercise as ledger credits.
// ABOUTME: Applies the streak multiplier and reports debt repayment.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseType    string
	exerciseAt      string
	exerciseNotes   string
	exerciseNoBonus bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise <minutes>",
	Aliases: []string{"ex", "e"},
	Short:   "Log exercise",
	Long: `Log minutes of exercise. The earned calories are converted back to
reference-exercise minutes and credited against your drink debt.

If you are on a rest-day streak, the streak multiplier (1.1x after two
days, 1.2x after three) is applied to the earned calories. A drink
logged later the same day revokes the bonus.

EXERCISE TYPES:

  stepper, walking, brisk_walking, cycling, strength, running, hiit,
  yoga, cleaning

EXAMPLES:

  payback exercise 30                    # Default exercise
  payback exercise 45 --type running     # 45 min run
  payback exercise 60 -t yoga --at "2025-06-01 07:00"
  payback exercise 20 --no-bonus         # Skip the streak multiplier`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes: %s", args[0])
		}

		exerciseKey := exerciseType
		if exerciseKey == "" {
			exerciseKey = profile.DefaultExercise
		}
		if exerciseKey == "" {
			exerciseKey = models.DefaultExerciseKey
		}

		at, err := resolveAt(exerciseAt)
		if err != nil {
			return err
		}

		entries, err := repo.ListEntries(0)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		checkins, err := repo.ListCheckIns(0)
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}

		result, err := engine.NewCredit(profile, exerciseKey, minutes, at, !exerciseNoBonus, entries, checkins)
		if err != nil {
			return err
		}
		if exerciseNotes != "" {
			result.Entry.WithNotes(exerciseNotes)
		}

		if err := repo.CreateEntry(result.Entry); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		e := result.Entry
		color.Green("✓ Logged %s", e.Name)
		fmt.Printf("  %s %d min → %.0f kcal → %d min repaid\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.RawMinutes, e.Kcal, e.Minutes)
		if e.BonusNote != "" {
			fmt.Printf("  %s\n", e.BonusNote)
		}
		if result.DebtRepaid {
			color.Green("  🎉 Debt fully repaid!")
		}
		return nil
	},
}

func init() {
	exerciseCmd.Flags().StringVarP(&exerciseType, "type", "t", "", "exercise type (default: profile's default exercise)")
	exerciseCmd.Flags().StringVar(&exerciseAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	exerciseCmd.Flags().StringVar(&exerciseNotes, "notes", "", "notes for the entry")
	exerciseCmd.Flags().BoolVar(&exerciseNoBonus, "no-bonus", false, "skip the streak multiplier")
	rootCmd.AddCommand(exerciseCmd)
}
