// ABOUTME: CLI command showing balance, streak, today's status, and grade.
// ABOUTME: All values are derived on the fly from the ledger.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/spf13/cobra"
)

var statusShare bool

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show balance, streak, and grade",
	Long: `Show the current state of your ledger:

  Balance     Running sum of all entries, in reference-exercise minutes.
              Negative means outstanding drink debt.
  Today       What today looks like so far (rest, drink, repaid, ...).
  Streak      Consecutive success days ending yesterday, and the
              multiplier your next exercise earns.
  Grade       Success days in the trailing 28-day window mapped to a
              tier. Histories younger than 28 days are graded on rate
              instead (rookie mode).

Pass --share for a single copy-pasteable line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListEntries(0)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		checkins, err := repo.ListCheckIns(0)
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}

		now := time.Now()
		balance := engine.Balance(entries)
		today := engine.ClassifyDay(now, entries, checkins)
		streak := engine.Streak(now, entries, checkins)
		multiplier := engine.MultiplierFor(streak)
		grade := engine.Grade(now, entries, checkins)

		refLabel := models.ActivityFor(profile.Reference()).Label

		if statusShare {
			balanceText := fmt.Sprintf("%+d min", balance)
			if balance == 0 {
				balanceText = "all square"
			}
			window := "28d"
			if grade.IsRookie {
				window = "rookie"
			}
			fmt.Printf("payback: %s %s | %d success days (%s) | streak %d | %s\n",
				grade.Tier, grade.Label, grade.Current, window, streak, balanceText)
			return nil
		}

		if balance < 0 {
			color.Red("Balance: %d min of %s owed", -balance, refLabel)
		} else if balance == 0 {
			color.Green("Balance: all square ✨")
		} else {
			color.Green("Balance: +%d min banked", balance)
		}

		fmt.Printf("Today:   %s\n", describeDay(today))
		if multiplier > 1.0 {
			fmt.Printf("Streak:  %d days → next exercise earns x%.1f 🔥\n", streak, multiplier)
		} else {
			fmt.Printf("Streak:  %d days\n", streak)
		}

		fmt.Println()
		if grade.IsRookie {
			fmt.Printf("Grade:   %s %s\n", grade.Tier, grade.Label)
			fmt.Printf("         %d success days (%.0f%% rate, next tier at %.0f%%)\n",
				grade.Current, grade.Rate*100, grade.TargetRate*100)
		} else {
			fmt.Printf("Grade:   %s %s\n", grade.Tier, grade.Label)
			if grade.Next > 0 {
				fmt.Printf("         %d success days in 28 (next tier at %d)\n", grade.Current, grade.Next)
			} else {
				fmt.Printf("         %d success days in 28 — top tier\n", grade.Current)
			}
		}

		return nil
	},
}

func describeDay(s engine.DayStatus) string {
	switch s {
	case engine.StatusRest:
		return "rest day 🌿"
	case engine.StatusRestWithExercise:
		return "rest day + exercise 💪"
	case engine.StatusDrink:
		return "drinks logged, debt outstanding 🍺"
	case engine.StatusDrinkWithExercise:
		return "drinks and exercise, debt outstanding"
	case engine.StatusDrinkRepaid:
		return "drinks logged and paid off ✨"
	case engine.StatusExerciseOnly:
		return "exercise logged 🏃"
	default:
		return "nothing yet"
	}
}

func init() {
	statusCmd.Flags().BoolVar(&statusShare, "share", false, "print a one-line shareable summary")
	rootCmd.AddCommand(statusCmd)
}
