// ABOUTME: Calendar-day helpers shared by the classifier, streak and grade code.
// ABOUTME: Days are local calendar dates, not UTC or 24h buckets.
package engine

import "time"

// sameDay reports whether two instants fall on the same local calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay returns midnight at the start of t's local calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// endOfDay returns the last nanosecond of t's local calendar day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// dayKey formats t's local calendar date as YYYY-MM-DD for set membership.
func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
