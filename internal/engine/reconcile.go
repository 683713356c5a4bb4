// ABOUTME: Retroactive reconciliation of same-day credit bonuses after a debit change.
// ABOUTME: Idempotent; touches only the target day's credit entries.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

// Store is the slice of the event-store contract reconciliation needs.
// UpdateEntryDerived on a missing id must be a no-op: an entry deleted
// mid-reconciliation already satisfies the goal.
type Store interface {
	ListEntries(limit int) ([]*models.LedgerEntry, error)
	ListEntriesBetween(start, end time.Time) ([]*models.LedgerEntry, error)
	ListCheckIns(limit int) ([]*models.CheckIn, error)
	UpdateEntryDerived(id uuid.UUID, minutes int, kcal, multiplier float64, bonusNote string) error
}

// ReconcileResult reports what a reconciliation pass changed.
type ReconcileResult struct {
	Updated     int
	BonusGained bool
	BonusLost   bool
}

// ReconcileDay re-derives the multiplier for every credit entry on the
// calendar day containing day, after a debit entry was inserted into or
// removed from that day. A drink on the day forces the multiplier to 1.0
// regardless of prior streak; with no drinks left, the streak as of that
// day decides. Entries whose stored multiplier already matches are left
// untouched, which makes a second pass with no intervening mutation a
// no-op.
func ReconcileDay(store Store, p models.Profile, day time.Time) (ReconcileResult, error) {
	var res ReconcileResult

	dayEntries, err := store.ListEntriesBetween(startOfDay(day), endOfDay(day))
	if err != nil {
		return res, fmt.Errorf("load day entries: %w", err)
	}

	var credits []*models.LedgerEntry
	for _, e := range dayEntries {
		if e.IsCredit() {
			credits = append(credits, e)
		}
	}
	if len(credits) == 0 {
		return res, nil
	}

	allEntries, err := store.ListEntries(0)
	if err != nil {
		return res, fmt.Errorf("load entries: %w", err)
	}
	allCheckins, err := store.ListCheckIns(0)
	if err != nil {
		return res, fmt.Errorf("load checkins: %w", err)
	}

	newMultiplier := 1.0
	if !HasDebitOn(day, allEntries) {
		newMultiplier = MultiplierFor(Streak(day, allEntries, allCheckins))
	}

	for _, e := range credits {
		raw := e.RawMinutes
		if raw == 0 {
			// Pre-bonus entries stored only derived minutes.
			raw = e.Minutes
		}
		baseKcal := MinutesToKcal(raw, e.ExerciseKey, p)
		newKcal := baseKcal * newMultiplier
		newMinutes := KcalToMinutes(newKcal, p.Reference(), p)

		if e.Multiplier == newMultiplier && e.Minutes == newMinutes {
			continue
		}

		if newMultiplier > 1.0 && e.Multiplier <= 1.0 {
			res.BonusGained = true
		}
		if newMultiplier <= 1.0 && e.Multiplier > 1.0 {
			res.BonusLost = true
		}

		err := store.UpdateEntryDerived(e.ID, newMinutes, newKcal, newMultiplier, BonusNoteFor(newMultiplier))
		if err != nil {
			return res, fmt.Errorf("update entry %s: %w", e.ID, err)
		}
		res.Updated++
	}

	return res, nil
}
