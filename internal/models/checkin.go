// ABOUTME: CheckIn model for daily wellness check-ins.
// ABOUTME: Carries the rest-day flag plus named wellness booleans and optional weight.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn records a daily wellness check-in. RestDay marks a deliberate
// no-drinking day; the wellness flags are self-reported observations.
// At most one per calendar day is meaningful; duplicate-day handling is the
// caller's concern.
type CheckIn struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	RestDay       bool      `json:"rest_day"`
	WaistEase     bool      `json:"waist_ease"`
	FootLightness bool      `json:"foot_lightness"`
	WaterOK       bool      `json:"water_ok"`
	FiberOK       bool      `json:"fiber_ok"`
	WeightKg      *float64  `json:"weight_kg,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCheckIn creates a check-in for now.
func NewCheckIn(restDay bool) *CheckIn {
	now := time.Now()
	return &CheckIn{
		ID:        uuid.New(),
		Timestamp: now,
		RestDay:   restDay,
		CreatedAt: now,
	}
}

// WithTimestamp sets a custom check-in timestamp.
func (c *CheckIn) WithTimestamp(t time.Time) *CheckIn {
	c.Timestamp = t
	return c
}

// WithWeight records the day's weight.
func (c *CheckIn) WithWeight(kg float64) *CheckIn {
	c.WeightKg = &kg
	return c
}
