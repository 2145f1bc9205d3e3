package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the read/write interface to the food catalog.
// The parse path only reads; concurrent readers must be safe.
type CatalogRepository interface {
	// FindByNameExact matches name case-insensitively against the Hebrew or
	// English name. Returns ErrFoodNotFound on no match.
	FindByNameExact(ctx context.Context, name string) (*Food, error)

	// FindByNameLike matches name as a case-insensitive substring of either
	// name. Returns ErrFoodNotFound on no match.
	FindByNameLike(ctx context.Context, name string) (*Food, error)

	// SearchByKeywords returns foods whose Hebrew or English name contains
	// any of the keywords as a case-insensitive substring, up to limit.
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]Food, error)

	// ListVerified returns up to limit verified foods.
	ListVerified(ctx context.Context, limit int) ([]Food, error)

	GetByID(ctx context.Context, id string) (*Food, error)
	Save(ctx context.Context, food *Food) error
}

// MealRepository defines the interface for meal persistence.
type MealRepository interface {
	Save(ctx context.Context, meal *Meal) error
	ListByUserAndDay(ctx context.Context, userID string, day time.Time) ([]Meal, error)
	DailyTotals(ctx context.Context, userID string, day time.Time) (NutritionTotals, int, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// GenerateOptions tune a single text-generation call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// TextGenerator is the prompt-in/text-out capability of an external
// large-language-model provider. Implementations make exactly one outbound
// call per invocation and do not retry.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
