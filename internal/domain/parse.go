package domain

// FoodMention is one recognized (food name, quantity, unit) candidate
// extracted from free text, before it has been resolved against the catalog.
// Confidence is a fixed, pattern-specific score in [0,1]; it is only
// meaningful for mentions produced by the deterministic parser.
type FoodMention struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       Unit    `json:"unit"`
	Confidence float64 `json:"confidence"`
}

// ParseResult is the output of the deterministic (pattern-based) parser.
// Succeeded is true iff at least one clause produced a mention.
type ParseResult struct {
	Succeeded bool          `json:"succeeded"`
	Mentions  []FoodMention `json:"mentions"`
	RawInput  string        `json:"rawInput"`
}

// ParsedMeal is the output of either parsing tier: the extracted mentions
// plus an optional meal-type classification (generative path only).
type ParsedMeal struct {
	Foods    []FoodMention `json:"foods"`
	MealType MealType      `json:"mealType,omitempty"`
}

// MatchedFood pairs a mention with the catalog entry it resolved to.
type MatchedFood struct {
	Mention FoodMention `json:"mention"`
	Food    *Food       `json:"food"`
}

// ResolvedItem is one food of a parsed meal with its quantity converted to
// grams and its nutrition computed. Created once per parse call and handed
// off to the meal store, never mutated afterward.
type ResolvedItem struct {
	FoodID   string  `json:"foodId"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionTotals are summed macro/calorie figures for a meal or a day.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// MealNutrition is the aggregator output: per-item figures plus totals.
type MealNutrition struct {
	Items  []ResolvedItem  `json:"items"`
	Totals NutritionTotals `json:"totals"`
}

// MealParseResult is what a complete parse call returns to the caller:
// the original text, the extracted mentions, the resolved nutrition and an
// optional meal type. Which parsing tier produced it is deliberately not
// exposed.
type MealParseResult struct {
	RawText   string        `json:"rawText"`
	MealType  MealType      `json:"mealType,omitempty"`
	Mentions  []FoodMention `json:"mentions"`
	Nutrition MealNutrition `json:"nutrition"`
}
