// ABOUTME: Profile model holding the physiological parameters for energy math.
// ABOUTME: Immutable within a session; changed only by an explicit settings update.
package models

import "fmt"

// Sex is the biological sex used by the basal-rate formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Profile holds the per-user parameters the energy rate model depends on.
type Profile struct {
	WeightKg          float64 `json:"weight_kg"`
	HeightCm          float64 `json:"height_cm"`
	AgeYears          int     `json:"age_years"`
	Sex               Sex     `json:"sex"`
	ReferenceExercise string  `json:"reference_exercise"`
	DefaultExercise   string  `json:"default_exercise,omitempty"`
}

// DefaultProfile returns the profile used before the user has configured one.
func DefaultProfile() Profile {
	return Profile{
		WeightKg:          60,
		HeightCm:          160,
		AgeYears:          30,
		Sex:               SexFemale,
		ReferenceExercise: DefaultExerciseKey,
		DefaultExercise:   DefaultExerciseKey,
	}
}

// Validate checks that every field is usable by the rate model.
func (p Profile) Validate() error {
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be positive, got %.1f", p.WeightKg)
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be positive, got %.1f", p.HeightCm)
	}
	if p.AgeYears <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.AgeYears)
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("sex must be male or female, got %q", p.Sex)
	}
	return nil
}

// Reference returns the reference exercise key, falling back to the default.
func (p Profile) Reference() string {
	if p.ReferenceExercise == "" {
		return DefaultExerciseKey
	}
	return p.ReferenceExercise
}
