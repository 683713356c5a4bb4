// ABOUTME: LedgerEntry model: dated debit (drink) and credit (exercise) events.
// ABOUTME: The balance unit is reference-exercise minutes, not raw kcal.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry is the append-only unit of the ledger. Negative Minutes/Kcal
// is a debit (drink), positive is a credit (exercise). Minutes is the
// reference-exercise equivalent shown to the user and summed into the
// running balance; Kcal is the underlying energy delta. The two always
// carry the same sign.
type LedgerEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Kcal      float64   `json:"kcal"`
	Minutes   int       `json:"minutes"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Credit-only fields. RawMinutes is the user-entered duration of the
	// actual activity; Multiplier is the streak bonus in effect when the
	// entry was created (1.0 if none). Reconciliation may rewrite Minutes,
	// Kcal, Multiplier and BonusNote, never RawMinutes or ExerciseKey.
	ExerciseKey string  `json:"exercise_key,omitempty"`
	RawMinutes  int     `json:"raw_minutes,omitempty"`
	Multiplier  float64 `json:"multiplier,omitempty"`
	BonusNote   string  `json:"bonus_note,omitempty"`

	// Debit-only provenance fields, opaque to the engine.
	Style   string  `json:"style,omitempty"`
	Size    string  `json:"size,omitempty"`
	Count   float64 `json:"count,omitempty"`
	ABV     float64 `json:"abv,omitempty"`
	Brewery string  `json:"brewery,omitempty"`
	Brand   string  `json:"brand,omitempty"`
	Rating  int     `json:"rating,omitempty"`
}

// IsDebit reports whether the entry is a drink (negative contribution).
func (e *LedgerEntry) IsDebit() bool { return e.Minutes < 0 }

// IsCredit reports whether the entry is an exercise (positive contribution).
func (e *LedgerEntry) IsCredit() bool { return e.Minutes > 0 }

// NewCreditEntry creates an exercise entry. Minutes and Kcal are the
// post-multiplier derived values; the caller computes them through the
// energy rate model.
func NewCreditEntry(exerciseKey string, rawMinutes, minutes int, kcal, multiplier float64) *LedgerEntry {
	a := ActivityFor(exerciseKey)
	now := time.Now()
	return &LedgerEntry{
		ID:          uuid.New(),
		Timestamp:   now,
		Name:        a.Icon + " " + a.Label,
		Kcal:        kcal,
		Minutes:     minutes,
		ExerciseKey: exerciseKey,
		RawMinutes:  rawMinutes,
		Multiplier:  multiplier,
		CreatedAt:   now,
	}
}

// NewDebitEntry creates a drink entry. kcal and minutes must be positive;
// they are stored negated. Minutes is floored at one so a drink too small
// to round to a whole minute still registers as a debit.
func NewDebitEntry(name string, kcal float64, minutes int) *LedgerEntry {
	if minutes < 1 {
		minutes = 1
	}
	now := time.Now()
	return &LedgerEntry{
		ID:        uuid.New(),
		Timestamp: now,
		Name:      name,
		Kcal:      -kcal,
		Minutes:   -minutes,
		CreatedAt: now,
	}
}

// WithTimestamp sets a custom event timestamp.
func (e *LedgerEntry) WithTimestamp(t time.Time) *LedgerEntry {
	e.Timestamp = t
	return e
}

// WithNotes sets notes on the entry.
func (e *LedgerEntry) WithNotes(notes string) *LedgerEntry {
	e.Notes = &notes
	return e
}
