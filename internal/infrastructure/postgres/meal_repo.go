package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/domain"
)

// MealRepo implements domain.MealRepository on PostgreSQL.
type MealRepo struct {
	db *DB
}

// NewMealRepo creates a meal repository over the given pool.
func NewMealRepo(db *DB) *MealRepo {
	return &MealRepo{db: db}
}

// Save persists a meal and its items in one transaction, assigning ids
// where missing.
func (r *MealRepo) Save(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.Timestamp.IsZero() {
		meal.Timestamp = time.Now().UTC()
	}
	meal.CreatedAt = time.Now().UTC()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO meals (id, user_id, name, meal_type, parsed_text,
			calories, protein, carbs, fat, fiber, eaten_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		meal.ID, meal.UserID, meal.Name, string(meal.MealType), meal.ParsedText,
		meal.Totals.Calories, meal.Totals.Protein, meal.Totals.Carbs,
		meal.Totals.Fat, meal.Totals.Fiber, meal.Timestamp, meal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}

	for i := range meal.Items {
		item := &meal.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.MealID = meal.ID

		_, err = tx.Exec(ctx, `
			INSERT INTO meal_items (id, meal_id, food_id, quantity, unit, calories, protein, carbs, fat)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.MealID, item.FoodID, item.Quantity, string(item.Unit),
			item.Calories, item.Protein, item.Carbs, item.Fat,
		)
		if err != nil {
			return fmt.Errorf("insert meal item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListByUserAndDay returns the user's meals whose eaten-at timestamp falls
// on the given calendar day (UTC), newest first, items included.
func (r *MealRepo) ListByUserAndDay(ctx context.Context, userID string, day time.Time) ([]domain.Meal, error) {
	start, end := dayBounds(day)

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, name, meal_type, parsed_text,
			calories, protein, carbs, fat, fiber, eaten_at, created_at
		FROM meals
		WHERE user_id = $1 AND eaten_at >= $2 AND eaten_at < $3
		ORDER BY eaten_at DESC`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		var meal domain.Meal
		var mealType string
		err := rows.Scan(
			&meal.ID, &meal.UserID, &meal.Name, &mealType, &meal.ParsedText,
			&meal.Totals.Calories, &meal.Totals.Protein, &meal.Totals.Carbs,
			&meal.Totals.Fat, &meal.Totals.Fiber, &meal.Timestamp, &meal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meal.MealType = domain.MealType(mealType)
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range meals {
		items, err := r.listItems(ctx, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Items = items
	}
	return meals, nil
}

// DailyTotals sums the nutrition of the user's meals on the given day and
// returns the meal count.
func (r *MealRepo) DailyTotals(ctx context.Context, userID string, day time.Time) (domain.NutritionTotals, int, error) {
	start, end := dayBounds(day)

	var totals domain.NutritionTotals
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0),
			COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0),
			COALESCE(SUM(fiber), 0), COUNT(*)
		FROM meals
		WHERE user_id = $1 AND eaten_at >= $2 AND eaten_at < $3`,
		userID, start, end,
	).Scan(&totals.Calories, &totals.Protein, &totals.Carbs, &totals.Fat, &totals.Fiber, &count)
	if err != nil {
		return domain.NutritionTotals{}, 0, fmt.Errorf("query daily totals: %w", err)
	}
	return totals, count, nil
}

func (r *MealRepo) listItems(ctx context.Context, mealID string) ([]domain.MealItem, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, meal_id, food_id, quantity, unit, calories, protein, carbs, fat
		FROM meal_items WHERE meal_id = $1`,
		mealID,
	)
	if err != nil {
		return nil, fmt.Errorf("query meal items: %w", err)
	}
	defer rows.Close()

	var items []domain.MealItem
	for rows.Next() {
		var item domain.MealItem
		var unit string
		err := rows.Scan(
			&item.ID, &item.MealID, &item.FoodID, &item.Quantity, &unit,
			&item.Calories, &item.Protein, &item.Carbs, &item.Fat,
		)
		if err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		item.Unit = domain.Unit(unit)
		items = append(items, item)
	}
	return items, rows.Err()
}

// dayBounds returns the UTC [start, end) interval of the calendar day
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
