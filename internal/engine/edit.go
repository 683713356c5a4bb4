// ABOUTME: In-place editing of ledger entries with full re-derivation.
// ABOUTME: Rebuilds edited entries through the pricing constructors, keeping identity.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

// EditRequest carries the fields an edit may change. Nil fields keep the
// entry's current value. Debit fields only apply to drinks, credit fields
// only to exercise; callers validate applicability before building one.
type EditRequest struct {
	// Debit fields.
	Style    *string
	Size     *string
	Count    *float64
	ABV      *float64
	VolumeML *float64
	Dry      *bool
	Brewery  *string
	Brand    *string
	Rating   *int

	// Credit fields.
	Minutes  *int
	Exercise *string
	Bonus    *bool

	// Shared fields.
	Timestamp *time.Time
	Notes     *string
}

// EditEntry rebuilds old with req applied, re-deriving kcal and minutes
// through the same constructors that priced the original. The entry keeps
// its ID and creation time, so prefixes shown in earlier listings stay
// valid. For credits the streak is evaluated with the old entry excluded,
// so its stale derived values cannot feed back into the re-derivation.
// The caller persists the result and reconciles the affected day(s).
func EditEntry(p models.Profile, old *models.LedgerEntry, req EditRequest,
	entries []*models.LedgerEntry, checkins []*models.CheckIn) (*models.LedgerEntry, error) {

	at := old.Timestamp
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	var rebuilt *models.LedgerEntry
	var err error
	if old.IsDebit() {
		rebuilt, err = rebuildDebit(p, old, req, at)
	} else {
		rebuilt, err = rebuildCredit(p, old, req, at, entries, checkins)
	}
	if err != nil {
		return nil, err
	}

	rebuilt.ID = old.ID
	rebuilt.CreatedAt = old.CreatedAt
	rebuilt.Notes = old.Notes
	if req.Notes != nil {
		if *req.Notes == "" {
			rebuilt.Notes = nil
		} else {
			rebuilt.WithNotes(*req.Notes)
		}
	}
	return rebuilt, nil
}

func rebuildDebit(p models.Profile, old *models.LedgerEntry, req EditRequest, at time.Time) (*models.LedgerEntry, error) {
	style := old.Style
	if req.Style != nil {
		style = *req.Style
	}

	var e *models.LedgerEntry
	var err error
	if style == "custom" {
		ml := customVolume(old)
		if req.VolumeML != nil {
			ml = *req.VolumeML
		}
		abv := old.ABV
		if req.ABV != nil {
			abv = *req.ABV
		}
		dry := customIsDry(old)
		if req.Dry != nil {
			dry = *req.Dry
		}
		e, err = NewDebitCustom(p, ml, abv, dry, at)
	} else {
		size := old.Size
		if req.Size != nil {
			size = *req.Size
		} else if old.Style == "custom" {
			// A custom drink's "500ml" size is not a serving key.
			size = models.DefaultServingKey
		}
		count := old.Count
		if count == 0 {
			count = 1
		}
		if req.Count != nil {
			count = *req.Count
		}
		abv := old.ABV
		if req.ABV != nil {
			abv = *req.ABV
		} else if style != old.Style && models.IsValidBeerStyle(style) {
			// Restyling without an explicit ABV takes the new style's typical ABV.
			abv = models.BeerStyles[style].DefaultABV
		}
		e, err = NewDebitFromStyle(p, style, size, count, abv, at)
	}
	if err != nil {
		return nil, err
	}

	e.Brewery = old.Brewery
	if req.Brewery != nil {
		e.Brewery = *req.Brewery
	}
	e.Brand = old.Brand
	if req.Brand != nil {
		e.Brand = *req.Brand
	}
	e.Rating = old.Rating
	if req.Rating != nil {
		e.Rating = *req.Rating
	}
	return e, nil
}

func rebuildCredit(p models.Profile, old *models.LedgerEntry, req EditRequest, at time.Time,
	entries []*models.LedgerEntry, checkins []*models.CheckIn) (*models.LedgerEntry, error) {

	raw := old.RawMinutes
	if raw == 0 {
		// Pre-bonus entries stored only derived minutes.
		raw = old.Minutes
	}
	if req.Minutes != nil {
		raw = *req.Minutes
	}
	key := old.ExerciseKey
	if req.Exercise != nil {
		key = *req.Exercise
	}
	bonus := true
	if req.Bonus != nil {
		bonus = *req.Bonus
	}

	result, err := NewCredit(p, key, raw, at, bonus, withoutEntry(entries, old.ID), checkins)
	if err != nil {
		return nil, err
	}
	return result.Entry, nil
}

// customVolume recovers the milliliters of a custom drink from its
// recorded serving size, e.g. "500ml".
func customVolume(e *models.LedgerEntry) float64 {
	var ml float64
	fmt.Sscanf(e.Size, "%gml", &ml)
	return ml
}

// customIsDry recovers the dry flag NewDebitCustom encodes in the icon.
func customIsDry(e *models.LedgerEntry) bool {
	return strings.Contains(e.Name, "🔥")
}

func withoutEntry(entries []*models.LedgerEntry, id uuid.UUID) []*models.LedgerEntry {
	out := make([]*models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
