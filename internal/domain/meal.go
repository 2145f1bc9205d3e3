package domain

import "time"

// MealItem is one food line of a persisted meal, with its computed nutrition
// denormalized for display.
type MealItem struct {
	ID       string  `json:"id"`
	MealID   string  `json:"mealId"`
	FoodID   string  `json:"foodId"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meal is a logged meal with denormalized totals.
type Meal struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Name       string          `json:"name,omitempty"`
	MealType   MealType        `json:"mealType,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	ParsedText string          `json:"parsedText,omitempty"`
	Totals     NutritionTotals `json:"totals"`
	Items      []MealItem      `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NutritionGoals are daily targets used for progress reporting.
type NutritionGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// DefaultGoals are used when no per-user goals are available. Per-user goals
// live with the account service, which is outside this backend.
var DefaultGoals = NutritionGoals{
	Calories: 2000,
	Protein:  150,
	Carbs:    200,
	Fat:      70,
	Fiber:    30,
}

// GoalProgress is percent-of-goal per macro, capped at 100.
type GoalProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

// DailyStats summarizes one day of logged meals against the goals.
type DailyStats struct {
	Date      string          `json:"date"`
	MealCount int             `json:"mealCount"`
	Totals    NutritionTotals `json:"totals"`
	Goals     NutritionGoals  `json:"goals"`
	Progress  GoalProgress    `json:"progress"`
}
