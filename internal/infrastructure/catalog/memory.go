package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/domain"
	"github.com/nutrilog/backend/internal/usecase"
)

// MemoryCatalog is an in-memory CatalogRepository. It backs tests and local
// development without a database; the Postgres repository is the production
// implementation.
type MemoryCatalog struct {
	mutex sync.RWMutex
	foods []domain.Food
}

// NewMemoryCatalog creates a catalog pre-loaded with the given foods.
func NewMemoryCatalog(foods []domain.Food) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.foods = append(c.foods, foods...)
	return c
}

// FindByNameExact matches name case-insensitively against either name,
// preferring verified entries.
func (c *MemoryCatalog) FindByNameExact(ctx context.Context, name string) (*domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	lower := strings.ToLower(name)
	var found *domain.Food
	for i := range c.foods {
		food := &c.foods[i]
		if strings.ToLower(food.NameHe) != lower && strings.ToLower(food.NameEn) != lower {
			continue
		}
		if found == nil || (food.Verified && !found.Verified) {
			found = food
		}
	}
	if found == nil {
		return nil, domain.ErrFoodNotFound
	}
	clone := *found
	return &clone, nil
}

// FindByNameLike matches name as a case-insensitive substring of either
// name, preferring verified and shorter-named entries.
func (c *MemoryCatalog) FindByNameLike(ctx context.Context, name string) (*domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	lower := strings.ToLower(name)
	var found *domain.Food
	for i := range c.foods {
		food := &c.foods[i]
		if !strings.Contains(strings.ToLower(food.NameHe), lower) &&
			!strings.Contains(strings.ToLower(food.NameEn), lower) {
			continue
		}
		if found == nil || betterLikeMatch(food, found) {
			found = food
		}
	}
	if found == nil {
		return nil, domain.ErrFoodNotFound
	}
	clone := *found
	return &clone, nil
}

// SearchByKeywords returns foods whose Hebrew or English name contains any
// keyword, up to limit.
func (c *MemoryCatalog) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return usecase.FilterCatalog(keywords, c.foods, limit), nil
}

// ListVerified returns up to limit verified foods.
func (c *MemoryCatalog) ListVerified(ctx context.Context, limit int) ([]domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var verified []domain.Food
	for _, food := range c.foods {
		if len(verified) >= limit {
			break
		}
		if food.Verified {
			verified = append(verified, food)
		}
	}
	return verified, nil
}

// GetByID returns the food with the given id.
func (c *MemoryCatalog) GetByID(ctx context.Context, id string) (*domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for i := range c.foods {
		if c.foods[i].ID == id {
			clone := c.foods[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrFoodNotFound
}

// Save inserts or replaces a food, assigning an id when missing.
func (c *MemoryCatalog) Save(ctx context.Context, food *domain.Food) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if food.ID == "" {
		food.ID = uuid.NewString()
	}
	for i := range c.foods {
		if c.foods[i].ID == food.ID {
			c.foods[i] = *food
			return nil
		}
	}
	c.foods = append(c.foods, *food)
	return nil
}

// betterLikeMatch prefers verified entries, then shorter Hebrew names, so
// "rice" resolves to plain rice over fried-rice variants.
func betterLikeMatch(candidate, current *domain.Food) bool {
	if candidate.Verified != current.Verified {
		return candidate.Verified
	}
	return len(candidate.NameHe) < len(current.NameHe)
}
