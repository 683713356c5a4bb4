// ABOUTME: Credit- and debit-entry construction through the energy rate model.
// ABOUTME: Credits bake in the streak multiplier; debits price drinks via the catalog.
package engine

import (
	"fmt"
	"time"

	"github.com/harperreed/payback/internal/models"
)

// CreditResult reports a created credit entry and whether it flipped the
// running balance from debt to non-negative.
type CreditResult struct {
	Entry      *models.LedgerEntry
	DebtRepaid bool
}

// BonusNoteFor renders the human-readable bonus annotation for a
// multiplier, empty when no bonus applies.
func BonusNoteFor(multiplier float64) string {
	if multiplier > 1.0 {
		return fmt.Sprintf("🔥 streak bonus x%.1f", multiplier)
	}
	return ""
}

// NewCredit builds a credit entry for rawMinutes of exerciseKey at the
// given instant. When bonusEnabled, the streak multiplier as of that
// instant is applied to the earned kcal; a debit already on the same day
// forces 1.0, the same rule reconciliation enforces. The multiplier in
// effect is stored on the entry so later reconciliation can detect drift.
func NewCredit(p models.Profile, exerciseKey string, rawMinutes int, at time.Time, bonusEnabled bool,
	entries []*models.LedgerEntry, checkins []*models.CheckIn) (CreditResult, error) {

	if rawMinutes <= 0 {
		return CreditResult{}, fmt.Errorf("duration must be positive, got %d", rawMinutes)
	}
	if !models.IsValidExerciseKey(exerciseKey) {
		return CreditResult{}, fmt.Errorf("unknown exercise: %s", exerciseKey)
	}
	if err := p.Validate(); err != nil {
		return CreditResult{}, err
	}

	multiplier := 1.0
	if bonusEnabled && !HasDebitOn(at, entries) {
		multiplier = MultiplierFor(Streak(at, entries, checkins))
	}

	earnedKcal := MinutesToKcal(rawMinutes, exerciseKey, p) * multiplier
	minutes := KcalToMinutes(earnedKcal, p.Reference(), p)

	entry := models.NewCreditEntry(exerciseKey, rawMinutes, minutes, earnedKcal, multiplier)
	entry.WithTimestamp(at)
	entry.BonusNote = BonusNoteFor(multiplier)

	before := Balance(entries)
	repaid := before < 0 && before+minutes >= 0

	return CreditResult{Entry: entry, DebtRepaid: repaid}, nil
}

// NewDebitFromStyle builds a drink entry from the style catalog: count
// servings of styleKey at sizeKey, with the user-confirmed ABV recorded as
// provenance.
func NewDebitFromStyle(p models.Profile, styleKey, sizeKey string, count, abv float64, at time.Time) (*models.LedgerEntry, error) {
	if !models.IsValidBeerStyle(styleKey) {
		return nil, fmt.Errorf("unknown beer style: %s", styleKey)
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %g", count)
	}
	if abv < 0 {
		return nil, fmt.Errorf("abv cannot be negative, got %g", abv)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	style := models.BeerStyles[styleKey]
	kcal := models.StyleKcal(styleKey, sizeKey, count)
	minutes := KcalToMinutes(kcal, p.Reference(), p)

	name := style.Label
	if count != 1 {
		name = fmt.Sprintf("%s x%g", style.Label, count)
	}

	entry := models.NewDebitEntry(name, kcal, minutes)
	entry.WithTimestamp(at)
	entry.Style = styleKey
	entry.Size = sizeKey
	entry.Count = count
	entry.ABV = abv
	return entry, nil
}

// NewDebitCustom builds a drink entry from raw volume and ABV for drinks
// outside the style catalog.
func NewDebitCustom(p models.Profile, ml, abv float64, dry bool, at time.Time) (*models.LedgerEntry, error) {
	if ml <= 0 {
		return nil, fmt.Errorf("volume must be positive, got %g", ml)
	}
	if abv < 0 {
		return nil, fmt.Errorf("abv cannot be negative, got %g", abv)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	kcal := models.AlcoholKcal(ml, abv, dry)
	minutes := KcalToMinutes(kcal, p.Reference(), p)

	icon := "🍺"
	if dry {
		icon = "🔥"
	}
	name := fmt.Sprintf("Custom %g%% %gml %s", abv, ml, icon)

	entry := models.NewDebitEntry(name, kcal, minutes)
	entry.WithTimestamp(at)
	entry.Style = "custom"
	entry.Size = fmt.Sprintf("%gml", ml)
	entry.Count = 1
	entry.ABV = abv
	return entry, nil
}
