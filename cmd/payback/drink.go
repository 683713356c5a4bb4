// ABOUTME: CLI commands for logging drinks as ledger debits.
// ABOUTME: Covers catalog styles, custom ml/ABV drinks, and the style listing.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/spf13/cobra"
)

var (
	drinkSize    string
	drinkCount   float64
	drinkABV     float64
	drinkBrewery string
	drinkBrand   string
	drinkRating  int
	drinkAt      string
	drinkNotes   string
)

var drinkCmd = &cobra.Command{
	Use:     "drink <style>",
	Aliases: []string{"d"},
	Short:   "Log a drink",
	Long: `Log a drink from the style catalog. The calorie cost is converted to
minutes of your reference exercise and added to the ledger as debt.

Logging a drink on a day you already exercised revokes that day's streak
bonus: the exercise entries are re-derived at 1.0x.

EXAMPLES:

  payback drink hazy_ipa                       # One 350ml can
  payback drink stout --size 568               # A UK pint
  payback drink pilsner -c 2 --at 2025-06-01   # Two, backdated
  payback drink hazy_ipa --brewery "Other Half" --brand "Green City" --rating 5
  payback drink styles                         # Show the catalog

Use 'payback drink custom' for drinks outside the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styleKey := args[0]

		if !models.IsValidBeerStyle(styleKey) {
			return fmt.Errorf("unknown beer style: %s\nRun 'payback drink styles' to see the catalog", styleKey)
		}

		at, err := resolveAt(drinkAt)
		if err != nil {
			return err
		}

		abv := drinkABV
		if abv == 0 {
			abv = models.BeerStyles[styleKey].DefaultABV
		}

		entry, err := engine.NewDebitFromStyle(profile, styleKey, drinkSize, drinkCount, abv, at)
		if err != nil {
			return err
		}
		entry.Brewery = drinkBrewery
		entry.Brand = drinkBrand
		entry.Rating = drinkRating
		if drinkNotes != "" {
			entry.WithNotes(drinkNotes)
		}

		if err := repo.CreateEntry(entry); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		result, err := engine.ReconcileDay(repo, profile, at)
		if err != nil {
			return fmt.Errorf("failed to reconcile day: %w", err)
		}

		printDebit(entry)
		if result.BonusLost {
			color.Yellow("  ⚠ streak bonus on that day's exercise was revoked")
		}
		return nil
	},
}

var drinkCustomCmd = &cobra.Command{
	Use:   "custom <ml> <abv>",
	Short: "Log a drink by volume and ABV",
	Long: `Log a drink outside the style catalog from its volume and ABV.
The calorie cost is computed from ethanol energy plus a residual-carb
adjustment; pass --dry for low-carb drinks (shochu highballs, dry cider).

EXAMPLES:

  payback drink custom 350 9           # 350ml at 9% (strong chuhai)
  payback drink custom 500 7 --dry     # 500ml dry highball`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid volume: %s", args[0])
		}
		abv, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid abv: %s", args[1])
		}

		at, err := resolveAt(drinkAt)
		if err != nil {
			return err
		}

		dry, _ := cmd.Flags().GetBool("dry")
		entry, err := engine.NewDebitCustom(profile, ml, abv, dry, at)
		if err != nil {
			return err
		}
		if drinkNotes != "" {
			entry.WithNotes(drinkNotes)
		}

		if err := repo.CreateEntry(entry); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		result, err := engine.ReconcileDay(repo, profile, at)
		if err != nil {
			return fmt.Errorf("failed to reconcile day: %w", err)
		}

		printDebit(entry)
		if result.BonusLost {
			color.Yellow("  ⚠ streak bonus on that day's exercise was revoked")
		}
		return nil
	},
}

var drinkStylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the beer style catalog",
	Long: `List the beer style catalog, most caloric first.

The kcal column is per 350ml serving; other serving sizes scale by
volume. The minutes column is the cost of one serving for your profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		for _, key := range models.BeerStyleKeys() {
			style := models.BeerStyles[key]
			minutes := engine.KcalToMinutes(style.KcalPerServing, profile.Reference(), profile)
			fmt.Printf("%s %s %4.0f kcal  %3d min  %s\n",
				padRight(key, 16),
				padRight(style.Label, 22),
				style.KcalPerServing,
				minutes,
				faint.Sprintf("%.1f%%", style.DefaultABV))
		}
		return nil
	},
}

func printDebit(e *models.LedgerEntry) {
	color.Green("✓ Logged %s", e.Name)
	fmt.Printf("  %s %.0f kcal → %d min of %s debt\n",
		color.New(color.Faint).Sprint(e.ID.String()[:8]),
		-e.Kcal, -e.Minutes, models.ActivityFor(profile.Reference()).Label)
}

// resolveAt parses the --at flag, defaulting to now when unset.
func resolveAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
	}
	return t, nil
}

func init() {
	drinkCmd.Flags().StringVar(&drinkSize, "size", models.DefaultServingKey, "serving size in ml (350, 500, 473, 568, 250, 1000)")
	drinkCmd.Flags().Float64VarP(&drinkCount, "count", "c", 1, "number of servings")
	drinkCmd.Flags().Float64Var(&drinkABV, "abv", 0, "ABV percent (default: style's typical ABV)")
	drinkCmd.Flags().StringVar(&drinkBrewery, "brewery", "", "brewery name")
	drinkCmd.Flags().StringVar(&drinkBrand, "brand", "", "beer brand/name")
	drinkCmd.Flags().IntVar(&drinkRating, "rating", 0, "rating 1-5")
	drinkCmd.Flags().StringVar(&drinkAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	drinkCmd.Flags().StringVar(&drinkNotes, "notes", "", "notes for the entry")

	drinkCustomCmd.Flags().Bool("dry", false, "low-carb drink (smaller carb adjustment)")
	drinkCustomCmd.Flags().StringVar(&drinkAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	drinkCustomCmd.Flags().StringVar(&drinkNotes, "notes", "", "notes for the entry")

	drinkCmd.AddCommand(drinkCustomCmd)
	drinkCmd.AddCommand(drinkStylesCmd)
	rootCmd.AddCommand(drinkCmd)
}
