// ABOUTME: Streak evaluator and multiplier policy for consecutive success days.
// ABOUTME: Walks strictly backward from the reference day; lookback capped at 30.
package engine

import (
	"time"

	"github.com/harperreed/payback/internal/models"
)

// maxStreakLookback bounds the backward walk.
const maxStreakLookback = 30

// Streak counts consecutive success days strictly before ref's calendar
// day. The walk stops at the first non-success day. ref may be any
// instant, not just now; reconciliation evaluates streaks as of
// historical days.
func Streak(ref time.Time, entries []*models.LedgerEntry, checkins []*models.CheckIn) int {
	streak := 0
	for i := 1; i <= maxStreakLookback; i++ {
		day := ref.AddDate(0, 0, -i)
		if !ClassifyDay(day, entries, checkins).IsSuccess() {
			break
		}
		streak++
	}
	return streak
}

// MultiplierFor maps a streak length to the reward multiplier applied to
// credit entries. Tiers are closed; no interpolation.
func MultiplierFor(streak int) float64 {
	switch {
	case streak >= 3:
		return 1.2
	case streak >= 2:
		return 1.1
	default:
		return 1.0
	}
}
