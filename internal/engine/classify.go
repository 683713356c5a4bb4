// ABOUTME: Day classifier deriving a DayStatus from one day's entries and check-ins.
// ABOUTME: Never persisted; always recomputed from the ledger.
package engine

import (
	"time"

	"github.com/harperreed/payback/internal/models"
)

// DayStatus is the derived classification of a single calendar day.
type DayStatus int

const (
	// StatusNone: no entries and no rest-day check-in.
	StatusNone DayStatus = iota
	// StatusRest: rest-day check-in, no exercise.
	StatusRest
	// StatusRestWithExercise: rest-day check-in plus exercise.
	StatusRestWithExercise
	// StatusDrink: drank, no exercise, debt outstanding.
	StatusDrink
	// StatusDrinkWithExercise: drank and exercised, debt still outstanding.
	StatusDrinkWithExercise
	// StatusDrinkRepaid: drank but the day's balance is non-negative.
	StatusDrinkRepaid
	// StatusExerciseOnly: exercised without drinking or checking in.
	StatusExerciseOnly
)

// String returns the status name.
func (s DayStatus) String() string {
	switch s {
	case StatusRest:
		return "rest"
	case StatusRestWithExercise:
		return "rest_with_exercise"
	case StatusDrink:
		return "drink"
	case StatusDrinkWithExercise:
		return "drink_with_exercise"
	case StatusDrinkRepaid:
		return "drink_repaid"
	case StatusExerciseOnly:
		return "exercise_only"
	default:
		return "none"
	}
}

// IsSuccess reports whether the day counts toward streaks and grades.
func (s DayStatus) IsSuccess() bool {
	switch s {
	case StatusRest, StatusRestWithExercise, StatusDrinkRepaid:
		return true
	default:
		return false
	}
}

// repaymentToleranceKcal absorbs rounding when judging same-day repayment.
const repaymentToleranceKcal = 1.0

// ClassifyDay classifies the calendar day containing day. A rest-day
// check-in always wins over a same-day drink entry: checking in as a rest
// day overrides an accidental or corrected drink record.
func ClassifyDay(day time.Time, entries []*models.LedgerEntry, checkins []*models.CheckIn) DayStatus {
	var balance float64
	var hasDebit, hasCredit bool
	for _, e := range entries {
		if !sameDay(e.Timestamp, day) {
			continue
		}
		balance += e.Kcal
		if e.IsDebit() {
			hasDebit = true
		}
		if e.IsCredit() {
			hasCredit = true
		}
	}

	isRepaid := hasDebit && balance >= -repaymentToleranceKcal

	var isRestDay bool
	for _, c := range checkins {
		if c.RestDay && sameDay(c.Timestamp, day) {
			isRestDay = true
			break
		}
	}

	switch {
	case isRestDay && hasCredit:
		return StatusRestWithExercise
	case isRestDay:
		return StatusRest
	case isRepaid:
		return StatusDrinkRepaid
	case hasDebit && hasCredit:
		return StatusDrinkWithExercise
	case hasDebit:
		return StatusDrink
	case hasCredit:
		return StatusExerciseOnly
	default:
		return StatusNone
	}
}

// HasDebitOn reports whether any drink entry falls on day's calendar day.
func HasDebitOn(day time.Time, entries []*models.LedgerEntry) bool {
	for _, e := range entries {
		if e.IsDebit() && sameDay(e.Timestamp, day) {
			return true
		}
	}
	return false
}

// Balance sums the displayed minutes of all entries: the running
// debt (negative) or surplus (positive) in reference-exercise minutes.
func Balance(entries []*models.LedgerEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes
	}
	return total
}
