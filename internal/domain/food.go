package domain

// Unit is the closed set of measurement units a food quantity can carry.
// Free-text unit words from user input are normalized to one of these
// before they leave the parsing layer.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "unit"
	UnitCup        Unit = "cup"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

// Valid reports whether u is one of the known unit codes.
func (u Unit) Valid() bool {
	switch u {
	case UnitGram, UnitMilliliter, UnitPiece, UnitCup, UnitTablespoon, UnitTeaspoon:
		return true
	}
	return false
}

// MealType classifies a logged meal.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Food is a catalog entry. Nutrition figures are per 100 grams.
// Foods carry a Hebrew name and usually an English alternate; lookups
// consider both.
type Food struct {
	ID     string `json:"id"`
	NameHe string `json:"nameHe"`
	NameEn string `json:"nameEn,omitempty"`
	Brand  string `json:"brand,omitempty"`

	// Per 100g
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`

	// Reference serving, used to convert "unit" quantities to grams
	ServingSize float64 `json:"servingSize"`
	ServingUnit Unit    `json:"servingUnit"`

	Source   string `json:"source"` // "usda", "user" or "verified"
	Verified bool   `json:"verified"`
	UsdaID   string `json:"usdaId,omitempty"`
}
