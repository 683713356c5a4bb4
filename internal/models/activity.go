// ABOUTME: Static activity catalog mapping exercise keys to MET intensities.
// ABOUTME: MET values are domain constants, not user data.
package models

import "sort"

// Activity describes one entry in the exercise catalog.
type Activity struct {
	Label string
	MET   float64
	Icon  string
}

// DefaultExerciseKey is the fallback activity for unknown keys and the
// default balance reference.
const DefaultExerciseKey = "stepper"

// Activities is the static exercise catalog.
var Activities = map[string]Activity{
	"stepper":       {Label: "Stepper", MET: 6.0, Icon: "🏃‍♀️"},
	"walking":       {Label: "Walking (commute etc.)", MET: 3.5, Icon: "🚶"},
	"brisk_walking": {Label: "Brisk walking", MET: 4.5, Icon: "👟"},
	"cycling":       {Label: "Cycling (easy)", MET: 4.0, Icon: "🚲"},
	"strength":      {Label: "Strength training", MET: 5.0, Icon: "🏋️"},
	"running":       {Label: "Running", MET: 7.0, Icon: "💨"},
	"hiit":          {Label: "HIIT (high intensity)", MET: 8.0, Icon: "🔥"},
	"yoga":          {Label: "Yoga / stretching", MET: 2.5, Icon: "🧘"},
	"cleaning":      {Label: "House cleaning", MET: 3.0, Icon: "🧹"},
}

// IsValidExerciseKey reports whether the key exists in the catalog.
func IsValidExerciseKey(key string) bool {
	_, ok := Activities[key]
	return ok
}

// ActivityFor returns the catalog entry for key, falling back to the
// default activity for unknown keys so conversions stay total.
func ActivityFor(key string) Activity {
	if a, ok := Activities[key]; ok {
		return a
	}
	return Activities[DefaultExerciseKey]
}

// ExerciseKeys returns all catalog keys in sorted order.
func ExerciseKeys() []string {
	keys := make([]string, 0, len(Activities))
	for k := range Activities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
