package usecase

import (
	"testing"

	"github.com/nutrilog/backend/internal/domain"
)

func TestComputeNutrition(t *testing.T) {
	egg := &domain.Food{
		ID:          "f1",
		NameEn:      "egg",
		Calories:    155,
		Protein:     13,
		Carbs:       1.1,
		Fat:         11,
		Fiber:       0,
		ServingSize: 60,
		ServingUnit: domain.UnitPiece,
	}
	rice := &domain.Food{
		ID:          "f3",
		NameEn:      "white rice",
		Calories:    130,
		Protein:     2.7,
		Carbs:       28,
		Fat:         0.3,
		Fiber:       0.4,
		ServingSize: 100,
		ServingUnit: domain.UnitGram,
	}

	t.Run("100 grams reproduces catalog figures exactly", func(t *testing.T) {
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 100, Unit: domain.UnitGram}, Food: rice},
		})

		item := nutrition.Items[0]
		if item.Grams != 100 {
			t.Errorf("grams = %v, want 100", item.Grams)
		}
		if item.Calories != 130 || item.Protein != 2.7 || item.Carbs != 28 || item.Fat != 0.3 {
			t.Errorf("item = %+v, want the per-100g figures unchanged", item)
		}
	})

	t.Run("piece quantity scales by serving size", func(t *testing.T) {
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 2, Unit: domain.UnitPiece}, Food: egg},
		})

		item := nutrition.Items[0]
		if item.Grams != 120 {
			t.Errorf("grams = %v, want 2 x 60", item.Grams)
		}
		// 155 * 1.2 = 186
		if item.Calories != 186 {
			t.Errorf("calories = %v, want 186", item.Calories)
		}
		if item.Protein != 15.6 {
			t.Errorf("protein = %v, want 15.6", item.Protein)
		}
	})

	t.Run("cup converts to 240 grams", func(t *testing.T) {
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 1, Unit: domain.UnitCup}, Food: rice},
		})

		item := nutrition.Items[0]
		if item.Grams != 240 {
			t.Errorf("grams = %v, want 240", item.Grams)
		}
		if item.Calories != 312 {
			t.Errorf("calories = %v, want 312", item.Calories)
		}
	})

	t.Run("spoon and milliliter conversions", func(t *testing.T) {
		tests := []struct {
			unit      domain.Unit
			quantity  float64
			wantGrams float64
		}{
			{domain.UnitTablespoon, 2, 30},
			{domain.UnitTeaspoon, 3, 15},
			{domain.UnitMilliliter, 250, 250},
		}
		for _, tt := range tests {
			nutrition := ComputeNutrition([]domain.MatchedFood{
				{Mention: domain.FoodMention{Quantity: tt.quantity, Unit: tt.unit}, Food: rice},
			})
			if got := nutrition.Items[0].Grams; got != tt.wantGrams {
				t.Errorf("%v x %s = %v grams, want %v", tt.quantity, tt.unit, got, tt.wantGrams)
			}
		}
	})

	t.Run("calories round half-up to whole numbers", func(t *testing.T) {
		food := &domain.Food{Calories: 101, ServingSize: 100}
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 50.5, Unit: domain.UnitGram}, Food: food},
		})

		// 101 * 0.505 = 51.005 -> 51
		if nutrition.Items[0].Calories != 51 {
			t.Errorf("calories = %v, want 51", nutrition.Items[0].Calories)
		}
	})

	t.Run("macros round half-up to one decimal", func(t *testing.T) {
		food := &domain.Food{Protein: 13, ServingSize: 100}
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 50, Unit: domain.UnitGram}, Food: food},
		})

		// 13 * 0.5 = 6.5, the half-up boundary at one decimal
		if nutrition.Items[0].Protein != 6.5 {
			t.Errorf("protein = %v, want 6.5", nutrition.Items[0].Protein)
		}
	})

	t.Run("totals summed from unrounded values", func(t *testing.T) {
		// Two items each contributing 0.26g protein: rounded items show 0.3
		// each, but the total must come from 0.52 -> 0.5, not 0.3+0.3.
		food := &domain.Food{Protein: 0.52, ServingSize: 100}
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 50, Unit: domain.UnitGram}, Food: food},
			{Mention: domain.FoodMention{Quantity: 50, Unit: domain.UnitGram}, Food: food},
		})

		if nutrition.Items[0].Protein != 0.3 {
			t.Errorf("item protein = %v, want 0.3", nutrition.Items[0].Protein)
		}
		if nutrition.Totals.Protein != 0.5 {
			t.Errorf("total protein = %v, want 0.5 from unrounded sum", nutrition.Totals.Protein)
		}
	})

	t.Run("multi-item totals", func(t *testing.T) {
		nutrition := ComputeNutrition([]domain.MatchedFood{
			{Mention: domain.FoodMention{Quantity: 2, Unit: domain.UnitPiece}, Food: egg},
			{Mention: domain.FoodMention{Quantity: 100, Unit: domain.UnitGram}, Food: rice},
		})

		if len(nutrition.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(nutrition.Items))
		}
		// 186 + 130
		if nutrition.Totals.Calories != 316 {
			t.Errorf("total calories = %v, want 316", nutrition.Totals.Calories)
		}
	})

	t.Run("empty input yields zero totals", func(t *testing.T) {
		nutrition := ComputeNutrition(nil)

		if len(nutrition.Items) != 0 {
			t.Errorf("got %d items, want 0", len(nutrition.Items))
		}
		if nutrition.Totals.Calories != 0 {
			t.Errorf("total calories = %v, want 0", nutrition.Totals.Calories)
		}
	})
}
