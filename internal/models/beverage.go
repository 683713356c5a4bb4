// ABOUTME: Static beverage catalog: style calories, serving sizes, default ABVs.
// ABOUTME: Also implements the kcal formula for custom drinks from ml and ABV.
package models

import "sort"

// BeerStyle describes one style in the beverage catalog. KcalPerServing is
// for the base 350ml serving; DefaultABV seeds the input form; Dry styles
// carry less residual sugar and get a smaller carb adjustment.
type BeerStyle struct {
	Label          string
	KcalPerServing float64
	DefaultABV     float64
	Dry            bool
}

// BeerStyles is the static style catalog.
var BeerStyles = map[string]BeerStyle{
	"barleywine":     {Label: "Barleywine", KcalPerServing: 320, DefaultABV: 10.0},
	"double_ipa":     {Label: "Double IPA (DIPA)", KcalPerServing: 270, DefaultABV: 8.5},
	"belgian_tripel": {Label: "Belgian Tripel", KcalPerServing: 250, DefaultABV: 9.0},
	"hazy_ipa":       {Label: "Hazy IPA", KcalPerServing: 220, DefaultABV: 7.0},
	"stout":          {Label: "Stout", KcalPerServing: 200, DefaultABV: 5.0},
	"west_coast_ipa": {Label: "IPA (West Coast)", KcalPerServing: 190, DefaultABV: 6.5},
	"weizen":         {Label: "Weizen", KcalPerServing: 180, DefaultABV: 5.0},
	"amber_ale":      {Label: "Amber Ale", KcalPerServing: 175, DefaultABV: 5.5},
	"porter":         {Label: "Porter", KcalPerServing: 170, DefaultABV: 5.5},
	"hazy_pale_ale":  {Label: "Hazy Pale Ale", KcalPerServing: 170, DefaultABV: 6.0},
	"saison":         {Label: "Saison", KcalPerServing: 165, DefaultABV: 6.0},
	"belgian_white":  {Label: "Belgian White", KcalPerServing: 160, DefaultABV: 5.0},
	"pale_ale":       {Label: "Pale Ale", KcalPerServing: 160, DefaultABV: 5.5},
	"japanese_ale":   {Label: "Japanese Ale", KcalPerServing: 160, DefaultABV: 5.5},
	"fruit_beer":     {Label: "Fruit Beer", KcalPerServing: 160, DefaultABV: 4.5},
	"schwarz":        {Label: "Schwarz", KcalPerServing: 155, DefaultABV: 5.0},
	"macro_lager":    {Label: "Macro Lager", KcalPerServing: 145, DefaultABV: 5.0},
	"dortmunder":     {Label: "Dortmunder", KcalPerServing: 145, DefaultABV: 5.5},
	"pilsner":        {Label: "Pilsner", KcalPerServing: 140, DefaultABV: 5.0},
	"sour_ale":       {Label: "Sour Ale", KcalPerServing: 140, DefaultABV: 4.5},
	"session_ipa":    {Label: "Session IPA", KcalPerServing: 130, DefaultABV: 4.5},
	"low_carb":       {Label: "Low-carb / Happoshu", KcalPerServing: 110, DefaultABV: 4.0, Dry: true},
}

// ServingSize maps a serving to its volume ratio relative to 350ml.
type ServingSize struct {
	Label string
	Ratio float64
}

// DefaultServingKey is the base serving the style table is priced for.
const DefaultServingKey = "350"

// ServingSizes is keyed by milliliters as a string, matching user input.
var ServingSizes = map[string]ServingSize{
	"350":  {Label: "350ml (can)", Ratio: 1.0},
	"500":  {Label: "500ml (tall can)", Ratio: 1.43},
	"473":  {Label: "473ml (US pint)", Ratio: 1.35},
	"568":  {Label: "568ml (UK pint)", Ratio: 1.62},
	"250":  {Label: "250ml (small glass)", Ratio: 0.71},
	"1000": {Label: "1L (mass)", Ratio: 2.86},
}

// IsValidBeerStyle reports whether the key exists in the style catalog.
func IsValidBeerStyle(key string) bool {
	_, ok := BeerStyles[key]
	return ok
}

// BeerStyleKeys returns all style keys sorted by calories descending, then name.
func BeerStyleKeys() []string {
	keys := make([]string, 0, len(BeerStyles))
	for k := range BeerStyles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := BeerStyles[keys[i]], BeerStyles[keys[j]]
		if a.KcalPerServing != b.KcalPerServing {
			return a.KcalPerServing > b.KcalPerServing
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Ethanol energy constants for the custom-drink formula.
const (
	ethanolKcalPerGram = 7.1
	ethanolGramsPerMl  = 0.789
	sweetCarbsPer100ml = 3.5 // residual sugar, typical ales/lagers
	dryCarbsPer100ml   = 0.5 // low-carb styles
	carbsKcalPerGram   = 4.0
)

// AlcoholKcal computes the energy of a drink from its volume and ABV.
// Dry drinks get a smaller residual-carbohydrate adjustment.
func AlcoholKcal(ml, abv float64, dry bool) float64 {
	if ml <= 0 || abv < 0 {
		return 0
	}
	alcohol := ml * abv / 100 * ethanolGramsPerMl * ethanolKcalPerGram
	carbs := sweetCarbsPer100ml
	if dry {
		carbs = dryCarbsPer100ml
	}
	return alcohol + ml/100*carbs*carbsKcalPerGram
}

// StyleKcal computes the energy of count servings of a style at the given
// serving size, scaling the per-350ml table value by the size ratio.
func StyleKcal(styleKey, sizeKey string, count float64) float64 {
	style, ok := BeerStyles[styleKey]
	if !ok || count <= 0 {
		return 0
	}
	ratio := 1.0
	if size, ok := ServingSizes[sizeKey]; ok {
		ratio = size.Ratio
	}
	return style.KcalPerServing * ratio * count
}
