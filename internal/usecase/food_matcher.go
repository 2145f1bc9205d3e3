package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nutrilog/backend/internal/domain"
)

// FoodMatcher resolves parsed food mentions to concrete catalog entries.
type FoodMatcher struct {
	catalog            domain.CatalogRepository
	enableDebugLogging bool
}

// NewFoodMatcher creates a matcher over the given catalog.
func NewFoodMatcher(catalog domain.CatalogRepository, enableDebugLogging bool) *FoodMatcher {
	return &FoodMatcher{
		catalog:            catalog,
		enableDebugLogging: enableDebugLogging,
	}
}

// MatchToCatalog resolves each mention by exact name match first, then by
// substring. Mentions that resolve to nothing are dropped with a log line: a
// meal built from a subset of its mentions beats failing the whole request.
// Only zero resolutions fail, with ErrNoCatalogMatch.
func (m *FoodMatcher) MatchToCatalog(ctx context.Context, mentions []domain.FoodMention) ([]domain.MatchedFood, error) {
	var matched []domain.MatchedFood

	for _, mention := range mentions {
		food, err := m.resolve(ctx, mention.Name)
		if err != nil {
			if errors.Is(err, domain.ErrFoodNotFound) {
				log.Printf("[MATCH] no catalog entry for %q, dropping mention", mention.Name)
				continue
			}
			return nil, fmt.Errorf("catalog lookup for %q: %w", mention.Name, err)
		}

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q -> %s (%s)", mention.Name, food.NameHe, food.ID)
		}
		matched = append(matched, domain.MatchedFood{Mention: mention, Food: food})
	}

	if len(matched) == 0 {
		return nil, domain.ErrNoCatalogMatch
	}
	return matched, nil
}

func (m *FoodMatcher) resolve(ctx context.Context, name string) (*domain.Food, error) {
	food, err := m.catalog.FindByNameExact(ctx, name)
	if err == nil {
		return food, nil
	}
	if !errors.Is(err, domain.ErrFoodNotFound) {
		return nil, err
	}
	return m.catalog.FindByNameLike(ctx, name)
}
