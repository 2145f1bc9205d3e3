package usda

import (
	"fmt"

	"github.com/nutrilog/backend/internal/domain"
)

// USDA Nutrient IDs for key macronutrients
const (
	NutrientIDEnergy       = 1008 // Calories (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrates (g)
	NutrientIDTotalFat     = 1004 // Total Fat (g)
	NutrientIDFiber        = 1079 // Dietary Fiber (g)
)

// MapToFood converts a USDA food record to a catalog entry. USDA figures
// are already per 100 grams, which is the catalog's reference basis.
// servingSize is the gram weight of one "unit" of this food (an egg, a
// slice), used when users log counts instead of weights.
func (f *Food) MapToFood(nameHe, nameEn string, servingSize float64, servingUnit domain.Unit) *domain.Food {
	return &domain.Food{
		NameHe:      nameHe,
		NameEn:      nameEn,
		Brand:       f.BrandOwner,
		Calories:    FindNutrientValue(f.Nutrients, NutrientIDEnergy),
		Protein:     FindNutrientValue(f.Nutrients, NutrientIDProtein),
		Carbs:       FindNutrientValue(f.Nutrients, NutrientIDCarbohydrate),
		Fat:         FindNutrientValue(f.Nutrients, NutrientIDTotalFat),
		Fiber:       FindNutrientValue(f.Nutrients, NutrientIDFiber),
		ServingSize: servingSize,
		ServingUnit: servingUnit,
		Source:      "usda",
		Verified:    true,
		UsdaID:      fmt.Sprintf("%d", f.FdcID),
	}
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []Nutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value
		}
	}
	return 0.0
}
