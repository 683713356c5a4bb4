// ABOUTME: Energy rate model: basal rate, net burn rate, kcal/minute conversions.
// ABOUTME: Degenerate rates short-circuit to zero so downstream arithmetic stays total.
package engine

import (
	"math"

	"github.com/harperreed/payback/internal/models"
)

// kjToKcal converts the Ganpule formula's MJ/day output scale to kcal/day.
const kjToKcal = 1000.0 / 4.186

// BMR returns the basal metabolic rate in kcal/day using the Ganpule
// equation, with a sex-specific constant term.
func BMR(p models.Profile) float64 {
	base := 0.0481*p.WeightKg + 0.0234*p.HeightCm - 0.0138*float64(p.AgeYears)
	if p.Sex == models.SexMale {
		return (base - 0.4235) * kjToKcal
	}
	return (base - 0.9708) * kjToKcal
}

// BurnRate returns kcal burned per minute at the given MET intensity, net
// of resting metabolism (MET 1.0 burns nothing extra).
func BurnRate(met float64, p models.Profile) float64 {
	netMET := math.Max(0, met-1)
	return BMR(p) / 24 * netMET / 60
}

// KcalToMinutes converts an energy amount into minutes of the given
// exercise. A zero or negative burn rate means no conversion is possible
// and yields zero.
func KcalToMinutes(kcal float64, exerciseKey string, p models.Profile) int {
	rate := BurnRate(models.ActivityFor(exerciseKey).MET, p)
	if rate <= 0 {
		return 0
	}
	return int(math.Round(kcal / rate))
}

// MinutesToKcal converts minutes of the given exercise into kcal burned.
func MinutesToKcal(minutes int, exerciseKey string, p models.Profile) float64 {
	rate := BurnRate(models.ActivityFor(exerciseKey).MET, p)
	if rate <= 0 {
		return 0
	}
	return rate * float64(minutes)
}
