package usecase

import (
	"math"

	"github.com/nutrilog/backend/internal/domain"
)

// Gram-equivalent conversion constants. Milliliters are treated as grams
// (density 1), matching how the catalog's liquid entries are defined.
const (
	gramsPerCup        = 240.0
	gramsPerTablespoon = 15.0
	gramsPerTeaspoon   = 5.0
	gramsPerMilliliter = 1.0
)

// ComputeNutrition converts each matched food's quantity to grams, scales
// the catalog's per-100g figures linearly and sums the meal totals. Item
// figures and totals are rounded half-up: calories to whole numbers, macro
// grams to one decimal. Totals are summed from the unrounded item values.
// Pure; malformed catalog entries are a precondition violation of the
// caller, not a runtime error here.
func ComputeNutrition(matched []domain.MatchedFood) domain.MealNutrition {
	var nutrition domain.MealNutrition
	var totals domain.NutritionTotals

	for _, m := range matched {
		grams := toGrams(m.Mention.Quantity, m.Mention.Unit, m.Food.ServingSize)
		factor := grams / 100.0

		calories := m.Food.Calories * factor
		protein := m.Food.Protein * factor
		carbs := m.Food.Carbs * factor
		fat := m.Food.Fat * factor
		fiber := m.Food.Fiber * factor

		totals.Calories += calories
		totals.Protein += protein
		totals.Carbs += carbs
		totals.Fat += fat
		totals.Fiber += fiber

		nutrition.Items = append(nutrition.Items, domain.ResolvedItem{
			FoodID:   m.Food.ID,
			Grams:    grams,
			Calories: roundWhole(calories),
			Protein:  roundTenth(protein),
			Carbs:    roundTenth(carbs),
			Fat:      roundTenth(fat),
		})
	}

	nutrition.Totals = domain.NutritionTotals{
		Calories: roundWhole(totals.Calories),
		Protein:  roundTenth(totals.Protein),
		Carbs:    roundTenth(totals.Carbs),
		Fat:      roundTenth(totals.Fat),
		Fiber:    roundTenth(totals.Fiber),
	}
	return nutrition
}

// toGrams converts a quantity in the given unit to grams. Piece quantities
// multiply by the catalog entry's reference serving size.
func toGrams(quantity float64, unit domain.Unit, servingSize float64) float64 {
	switch unit {
	case domain.UnitPiece:
		return quantity * servingSize
	case domain.UnitCup:
		return quantity * gramsPerCup
	case domain.UnitTablespoon:
		return quantity * gramsPerTablespoon
	case domain.UnitTeaspoon:
		return quantity * gramsPerTeaspoon
	case domain.UnitMilliliter:
		return quantity * gramsPerMilliliter
	default:
		return quantity
	}
}

// roundWhole rounds half-up to an integer value.
func roundWhole(v float64) float64 {
	return math.Floor(v + 0.5)
}

// roundTenth rounds half-up to one decimal place.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
