// ABOUTME: Grade evaluator: rolling 28-day success-day count mapped to tiers.
// ABOUTME: Histories younger than 28 days use a rate-based rookie mode instead.
package engine

import (
	"time"

	"github.com/harperreed/payback/internal/models"
)

// gradeWindowDays is the trailing evaluation window.
const gradeWindowDays = 28

// GradeResult is the derived performance grade. In rookie mode Rate and
// TargetRate drive the progress display; in normal mode Next is the
// success-day count for the tier above (0 at the top tier).
type GradeResult struct {
	Tier       string
	Label      string
	Current    int
	Next       int
	IsRookie   bool
	Rate       float64
	TargetRate float64
}

// Grade evaluates the trailing 28-day window ending at now. A success day
// is a distinct local calendar date with a rest-day check-in or a
// non-negative entry balance; each date counts once no matter how many
// qualifying records it has.
func Grade(now time.Time, entries []*models.LedgerEntry, checkins []*models.CheckIn) GradeResult {
	start := now
	for _, c := range checkins {
		if c.Timestamp.Before(start) {
			start = c.Timestamp
		}
	}
	for _, e := range entries {
		if e.Timestamp.Before(start) {
			start = e.Timestamp
		}
	}
	daysSinceStart := int(now.Sub(start).Hours() / 24)
	if daysSinceStart < 1 {
		daysSinceStart = 1
	}

	cutoff := startOfDay(now.AddDate(0, 0, -gradeWindowDays))

	successDays := make(map[string]struct{})
	for _, c := range checkins {
		if c.RestDay && c.Timestamp.After(cutoff) {
			successDays[dayKey(c.Timestamp)] = struct{}{}
		}
	}

	dailyBalance := make(map[string]int)
	for _, e := range entries {
		if e.Timestamp.After(cutoff) {
			dailyBalance[dayKey(e.Timestamp)] += e.Minutes
		}
	}
	for day, balance := range dailyBalance {
		if balance >= 0 {
			successDays[day] = struct{}{}
		}
	}

	count := len(successDays)

	if daysSinceStart < gradeWindowDays {
		rate := float64(count) / float64(daysSinceStart)
		g := GradeResult{Current: count, IsRookie: true, Rate: rate}
		switch {
		case rate >= 0.7:
			g.Tier, g.Label, g.TargetRate = "Rookie S", "Rising Star 🌟", 1.0
		case rate >= 0.4:
			g.Tier, g.Label, g.TargetRate = "Rookie A", "Promising 🔥", 0.7
		case rate >= 0.25:
			g.Tier, g.Label, g.TargetRate = "Rookie B", "Fledgling 🐣", 0.4
		default:
			g.Tier, g.Label, g.TargetRate = "Beginner", "Hatchling 🥚", 0.25
		}
		return g
	}

	g := GradeResult{Current: count}
	switch {
	case count >= 20:
		g.Tier, g.Label, g.Next = "S", "Golden Liver 👼", 0
	case count >= 12:
		g.Tier, g.Label, g.Next = "A", "Iron Liver 🛡️", 20
	case count >= 8:
		g.Tier, g.Label, g.Next = "B", "Health Conscious 🌿", 12
	default:
		g.Tier, g.Label, g.Next = "C", "Needs Attention ⚠️", 8
	}
	return g
}
