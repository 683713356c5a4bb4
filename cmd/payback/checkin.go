// ABOUTME: CLI command for daily wellness check-ins.
// ABOUTME: Replaces any existing check-in on the same calendar day.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/models"
	"github.com/spf13/cobra"
)

var (
	checkinRest   bool
	checkinWaist  bool
	checkinFoot   bool
	checkinWater  bool
	checkinFiber  bool
	checkinWeight float64
	checkinAt     string
)

var checkinCmd = &cobra.Command{
	Use:     "checkin",
	Aliases: []string{"ci"},
	Short:   "Record a daily check-in",
	Long: `Record a daily wellness check-in. Pass --rest to mark the day as a
deliberate alcohol-free day; rest days build the streak that earns the
exercise bonus multiplier.

Only one check-in per calendar day is kept. Checking in again on the
same day replaces the earlier one.

EXAMPLES:

  payback checkin --rest                      # Alcohol-free day
  payback checkin --rest --weight 58.5        # ...with weight
  payback checkin --rest --waist --foot       # ...feeling lighter too
  payback checkin --water --fiber             # Not a rest day, habits held`,
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := resolveAt(checkinAt)
		if err != nil {
			return err
		}

		existing, err := repo.FindCheckInOn(at)
		if err != nil {
			return fmt.Errorf("failed to look up check-in: %w", err)
		}
		if existing != nil {
			if err := repo.DeleteCheckIn(existing.ID.String()); err != nil {
				return fmt.Errorf("failed to replace check-in: %w", err)
			}
		}

		c := models.NewCheckIn(checkinRest).WithTimestamp(at)
		c.WaistEase = checkinWaist
		c.FootLightness = checkinFoot
		c.WaterOK = checkinWater
		c.FiberOK = checkinFiber
		if checkinWeight > 0 {
			c.WithWeight(checkinWeight)
		}

		if err := repo.CreateCheckIn(c); err != nil {
			return fmt.Errorf("failed to create check-in: %w", err)
		}

		if checkinRest {
			color.Green("✓ Checked in: rest day 🌿")
		} else {
			color.Green("✓ Checked in")
		}
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(c.ID.String()[:8]),
			c.Timestamp.Format("2006-01-02"))
		if existing != nil {
			color.Yellow("  replaced earlier check-in for the same day")
		}
		return nil
	},
}

func init() {
	checkinCmd.Flags().BoolVar(&checkinRest, "rest", false, "alcohol-free rest day")
	checkinCmd.Flags().BoolVar(&checkinWaist, "waist", false, "waist feels easier")
	checkinCmd.Flags().BoolVar(&checkinFoot, "foot", false, "feet feel lighter")
	checkinCmd.Flags().BoolVar(&checkinWater, "water", false, "drank enough water")
	checkinCmd.Flags().BoolVar(&checkinFiber, "fiber", false, "ate enough fiber")
	checkinCmd.Flags().Float64Var(&checkinWeight, "weight", 0, "weight in kg")
	checkinCmd.Flags().StringVar(&checkinAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	rootCmd.AddCommand(checkinCmd)
}
