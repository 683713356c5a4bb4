// ABOUTME: CLI command for listing ledger entries and check-ins.
// ABOUTME: Supports filtering by kind and limiting results.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listKind     string
	listLimit    int
	listCheckins bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List ledger entries",
	Long: `List recent ledger entries, newest first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  NAME  MINUTES  (NOTES)

  Negative minutes are drink debt, positive minutes are exercise
  credit. The ID is an 8-character prefix you can use with 'payback
  delete'.

EXAMPLES:

  payback list                   # Last 20 entries
  payback list -n 50             # Last 50 entries
  payback list --kind drink      # Only drinks
  payback list --kind exercise   # Only exercise
  payback list --checkins        # Check-ins instead of entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listCheckins {
			return listCheckInRows()
		}

		if listKind != "" && listKind != "drink" && listKind != "exercise" {
			return fmt.Errorf("unknown kind: %s (use drink or exercise)", listKind)
		}

		// Over-fetch when filtering so the limit applies post-filter.
		fetch := listLimit
		if listKind != "" {
			fetch = 0
		}
		entries, err := repo.ListEntries(fetch)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		faint := color.New(color.Faint)
		shown := 0
		for _, e := range entries {
			if listKind == "drink" && !e.IsDebit() {
				continue
			}
			if listKind == "exercise" && !e.IsCredit() {
				continue
			}
			if listLimit > 0 && shown >= listLimit {
				break
			}
			shown++

			notes := ""
			if e.Notes != nil && *e.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*e.Notes, 30))
			}
			minutes := fmt.Sprintf("%+d min", e.Minutes)
			if e.IsDebit() {
				minutes = color.RedString(minutes)
			} else {
				minutes = color.GreenString(minutes)
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(e.ID.String()[:8]),
				faint.Sprint(e.Timestamp.Format("2006-01-02 15:04")),
				padRight(e.Name, 24),
				minutes,
				notes)
		}

		if shown == 0 {
			fmt.Println("No entries found.")
		}
		return nil
	},
}

func listCheckInRows() error {
	checkins, err := repo.ListCheckIns(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list check-ins: %w", err)
	}
	if len(checkins) == 0 {
		fmt.Println("No check-ins found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, c := range checkins {
		var flags []string
		if c.RestDay {
			flags = append(flags, "rest")
		}
		if c.WaistEase {
			flags = append(flags, "waist")
		}
		if c.FootLightness {
			flags = append(flags, "foot")
		}
		if c.WaterOK {
			flags = append(flags, "water")
		}
		if c.FiberOK {
			flags = append(flags, "fiber")
		}
		weight := ""
		if c.WeightKg != nil {
			weight = fmt.Sprintf(" %.1fkg", *c.WeightKg)
		}
		fmt.Printf("%s %s %s%s\n",
			faint.Sprint(c.ID.String()[:8]),
			faint.Sprint(c.Timestamp.Format("2006-01-02")),
			padRight(strings.Join(flags, ","), 24),
			weight)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "filter by kind (drink, exercise)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	listCmd.Flags().BoolVar(&listCheckins, "checkins", false, "list check-ins instead of entries")
	rootCmd.AddCommand(listCmd)
}
