// ABOUTME: Tests for the energy rate model.
// ABOUTME: Covers sex-specific BMR, net burn rate, and degenerate conversions.
package engine

import (
	"testing"

	"github.com/harperreed/payback/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() models.Profile {
	return models.Profile{
		WeightKg:          60,
		HeightCm:          160,
		AgeYears:          30,
		Sex:               models.SexFemale,
		ReferenceExercise: "stepper",
	}
}

func TestBMR(t *testing.T) {
	p := testProfile()

	female := BMR(p)
	assert.InDelta(t, 1253.0, female, 1.0, "female BMR for the default profile")

	p.Sex = models.SexMale
	male := BMR(p)
	assert.Greater(t, male, female, "male constant term yields a higher BMR")
}

func TestBurnRateNetOfResting(t *testing.T) {
	p := testProfile()

	assert.Zero(t, BurnRate(1.0, p), "MET 1.0 is resting, burns nothing extra")
	assert.Zero(t, BurnRate(0.5, p), "sub-resting MET clamps to zero")
	assert.Greater(t, BurnRate(6.0, p), BurnRate(3.0, p))
}

func TestKcalMinutesRoundTrip(t *testing.T) {
	p := testProfile()

	kcal := MinutesToKcal(30, "running", p)
	require.Greater(t, kcal, 0.0)

	minutes := KcalToMinutes(kcal, "running", p)
	assert.Equal(t, 30, minutes)
}

func TestUnknownExerciseFallsBack(t *testing.T) {
	p := testProfile()

	// Unknown keys convert through the default activity instead of failing.
	assert.Equal(t, KcalToMinutes(100, "stepper", p), KcalToMinutes(100, "zumba", p))
	assert.Equal(t, MinutesToKcal(30, "stepper", p), MinutesToKcal(30, "zumba", p))
}

func TestDegenerateRateShortCircuits(t *testing.T) {
	// A profile whose formula output goes non-positive must yield zero
	// minutes, not a division by zero.
	p := models.Profile{WeightKg: 1, HeightCm: 1, AgeYears: 120, Sex: models.SexFemale, ReferenceExercise: "stepper"}
	require.LessOrEqual(t, BurnRate(6.0, p), 0.0)

	assert.Zero(t, KcalToMinutes(500, "stepper", p))
	assert.Zero(t, MinutesToKcal(30, "stepper", p))
}
