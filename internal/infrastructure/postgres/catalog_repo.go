package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nutrilog/backend/internal/domain"
)

const foodColumns = `id, name_he, name_en, brand, calories, protein, carbs, fat, fiber,
	serving_size, serving_unit, source, verified, usda_id`

// CatalogRepo implements domain.CatalogRepository on PostgreSQL.
type CatalogRepo struct {
	db *DB
}

// NewCatalogRepo creates a catalog repository over the given pool.
func NewCatalogRepo(db *DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// FindByNameExact matches name case-insensitively against the Hebrew or
// English name.
func (r *CatalogRepo) FindByNameExact(ctx context.Context, name string) (*domain.Food, error) {
	query := fmt.Sprintf(`SELECT %s FROM foods
		WHERE LOWER(name_he) = LOWER($1) OR LOWER(name_en) = LOWER($1)
		ORDER BY verified DESC LIMIT 1`, foodColumns)

	return r.queryOne(ctx, query, name)
}

// FindByNameLike matches name as a case-insensitive substring of either
// name, preferring verified and shorter-named entries.
func (r *CatalogRepo) FindByNameLike(ctx context.Context, name string) (*domain.Food, error) {
	query := fmt.Sprintf(`SELECT %s FROM foods
		WHERE name_he ILIKE $1 OR name_en ILIKE $1
		ORDER BY verified DESC, LENGTH(name_he) ASC LIMIT 1`, foodColumns)

	return r.queryOne(ctx, query, "%"+name+"%")
}

// SearchByKeywords returns foods whose Hebrew or English name contains any
// keyword, up to limit.
func (r *CatalogRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Food, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var conditions []string
	var args []interface{}
	for i, keyword := range keywords {
		conditions = append(conditions, fmt.Sprintf("name_he ILIKE $%d OR name_en ILIKE $%d", i+1, i+1))
		args = append(args, "%"+keyword+"%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM foods WHERE %s
		ORDER BY verified DESC, LENGTH(name_he) ASC LIMIT $%d`,
		foodColumns, strings.Join(conditions, " OR "), len(args))

	return r.queryMany(ctx, query, args...)
}

// ListVerified returns up to limit verified foods.
func (r *CatalogRepo) ListVerified(ctx context.Context, limit int) ([]domain.Food, error) {
	query := fmt.Sprintf(`SELECT %s FROM foods WHERE verified = TRUE
		ORDER BY name_he ASC LIMIT $1`, foodColumns)

	return r.queryMany(ctx, query, limit)
}

// GetByID returns the food with the given id.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*domain.Food, error) {
	query := fmt.Sprintf(`SELECT %s FROM foods WHERE id = $1`, foodColumns)
	return r.queryOne(ctx, query, id)
}

// Save inserts a food, assigning an id when missing. Existing ids are
// updated in place.
func (r *CatalogRepo) Save(ctx context.Context, food *domain.Food) error {
	if food.ID == "" {
		food.ID = uuid.NewString()
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO foods (id, name_he, name_en, brand, calories, protein, carbs, fat, fiber,
			serving_size, serving_unit, source, verified, usda_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name_he = EXCLUDED.name_he,
			name_en = EXCLUDED.name_en,
			brand = EXCLUDED.brand,
			calories = EXCLUDED.calories,
			protein = EXCLUDED.protein,
			carbs = EXCLUDED.carbs,
			fat = EXCLUDED.fat,
			fiber = EXCLUDED.fiber,
			serving_size = EXCLUDED.serving_size,
			serving_unit = EXCLUDED.serving_unit,
			source = EXCLUDED.source,
			verified = EXCLUDED.verified,
			usda_id = EXCLUDED.usda_id`,
		food.ID, food.NameHe, food.NameEn, food.Brand,
		food.Calories, food.Protein, food.Carbs, food.Fat, food.Fiber,
		food.ServingSize, string(food.ServingUnit), food.Source, food.Verified, food.UsdaID,
	)
	if err != nil {
		return fmt.Errorf("save food: %w", err)
	}
	return nil
}

func (r *CatalogRepo) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Food, error) {
	row := r.db.Pool.QueryRow(ctx, query, args...)

	food, err := scanFood(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query food: %w", err)
	}
	return food, nil
}

func (r *CatalogRepo) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Food, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func scanFood(row pgx.Row) (*domain.Food, error) {
	var food domain.Food
	var servingUnit string
	err := row.Scan(
		&food.ID, &food.NameHe, &food.NameEn, &food.Brand,
		&food.Calories, &food.Protein, &food.Carbs, &food.Fat, &food.Fiber,
		&food.ServingSize, &servingUnit, &food.Source, &food.Verified, &food.UsdaID,
	)
	if err != nil {
		return nil, err
	}
	food.ServingUnit = domain.Unit(servingUnit)
	return &food, nil
}
