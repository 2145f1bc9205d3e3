package usda

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrilog/backend/internal/domain"
)

func TestMapToFood(t *testing.T) {
	t.Run("maps all macronutrients", func(t *testing.T) {
		usdaFood := &Food{
			FdcID:       123456,
			Description: "Egg, whole, raw",
			DataType:    "Foundation",
			Nutrients: []Nutrient{
				{NutrientID: NutrientIDEnergy, NutrientName: "Energy", Value: 143.0, UnitName: "kcal"},
				{NutrientID: NutrientIDProtein, NutrientName: "Protein", Value: 12.6, UnitName: "g"},
				{NutrientID: NutrientIDCarbohydrate, NutrientName: "Carbohydrate", Value: 0.7, UnitName: "g"},
				{NutrientID: NutrientIDTotalFat, NutrientName: "Total Fat", Value: 9.5, UnitName: "g"},
				{NutrientID: NutrientIDFiber, NutrientName: "Fiber", Value: 0.0, UnitName: "g"},
			},
		}

		food := usdaFood.MapToFood("ביצה", "egg", 60, domain.UnitPiece)

		assert.Equal(t, "ביצה", food.NameHe)
		assert.Equal(t, "egg", food.NameEn)
		assert.Equal(t, 143.0, food.Calories)
		assert.Equal(t, 12.6, food.Protein)
		assert.Equal(t, 0.7, food.Carbs)
		assert.Equal(t, 9.5, food.Fat)
		assert.Equal(t, 0.0, food.Fiber)
		assert.Equal(t, 60.0, food.ServingSize)
		assert.Equal(t, domain.UnitPiece, food.ServingUnit)
		assert.Equal(t, "usda", food.Source)
		assert.True(t, food.Verified)
		assert.Equal(t, "123456", food.UsdaID)
	})

	t.Run("missing nutrients default to zero", func(t *testing.T) {
		usdaFood := &Food{
			FdcID:       789,
			Description: "Apple, raw",
			Nutrients: []Nutrient{
				{NutrientID: NutrientIDEnergy, Value: 52.0},
				{NutrientID: NutrientIDCarbohydrate, Value: 14.0},
			},
		}

		food := usdaFood.MapToFood("תפוח", "apple", 180, domain.UnitPiece)

		assert.Equal(t, 52.0, food.Calories)
		assert.Equal(t, 14.0, food.Carbs)
		assert.Equal(t, 0.0, food.Protein)
		assert.Equal(t, 0.0, food.Fat)
	})

	t.Run("brand owner carried over", func(t *testing.T) {
		usdaFood := &Food{
			FdcID:       42,
			Description: "Greek Yogurt",
			BrandOwner:  "Acme Dairy",
		}

		food := usdaFood.MapToFood("יוגורט יווני", "greek yogurt", 150, domain.UnitPiece)
		assert.Equal(t, "Acme Dairy", food.Brand)
	})
}

func TestFindNutrientValue(t *testing.T) {
	nutrients := []Nutrient{
		{NutrientID: NutrientIDEnergy, Value: 100.0},
		{NutrientID: NutrientIDProtein, Value: 5.0},
		{NutrientID: NutrientIDCarbohydrate, Value: 20.0},
	}

	tests := []struct {
		name       string
		nutrientID int
		want       float64
	}{
		{"finds energy", NutrientIDEnergy, 100.0},
		{"finds protein", NutrientIDProtein, 5.0},
		{"finds carbohydrate", NutrientIDCarbohydrate, 20.0},
		{"missing nutrient returns zero", NutrientIDTotalFat, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindNutrientValue(nutrients, tt.nutrientID)
			assert.Equal(t, tt.want, got)
		})
	}
}
