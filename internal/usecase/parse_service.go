package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/nutrilog/backend/internal/domain"
)

// Package-level compiled regex patterns for cache-key normalization.
var (
	nonWordRegex        = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// ParseServiceConfig holds configuration for the parse service. The
// confidence threshold is deliberately absent: it is a fixed design
// constant (AcceptConfidenceThreshold), not runtime state.
type ParseServiceConfig struct {
	CatalogLimit       int
	GenerativeTimeout  time.Duration
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ParseService runs the two-tier parse: deterministic patterns first, a
// catalog-grounded generative call only when the patterns lack confidence.
// The escalation is internal and invisible to callers.
type ParseService struct {
	catalog            domain.CatalogRepository
	cache              domain.CacheRepository
	patterns           *PatternMatcher
	matcher            *FoodMatcher
	genParser          *GenerativeParser
	catalogLimit       int
	generativeTimeout  time.Duration
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewParseService wires the parsing pipeline. generator may be nil for
// deterministic-only environments; escalation then fails with
// ErrProviderUnavailable. cache may be nil to disable caching of generative
// results.
func NewParseService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	generator domain.TextGenerator,
	config ParseServiceConfig,
) *ParseService {
	catalogLimit := config.CatalogLimit
	if catalogLimit <= 0 {
		catalogLimit = DefaultCatalogLimit
	}

	generativeTimeout := config.GenerativeTimeout
	if generativeTimeout <= 0 {
		generativeTimeout = 30 * time.Second
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	s := &ParseService{
		catalog:            catalog,
		cache:              cache,
		patterns:           NewPatternMatcher(config.EnableDebugLogging),
		matcher:            NewFoodMatcher(catalog, config.EnableDebugLogging),
		catalogLimit:       catalogLimit,
		generativeTimeout:  generativeTimeout,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
	if generator != nil {
		s.genParser = NewGenerativeParser(generator, config.EnableDebugLogging)
	}
	return s
}

// ParseMeal converts a free-text meal description into resolved catalog
// items with computed nutrition.
// Flow: patterns -> confidence gate -> (accept | keywords -> catalog slice
// -> generative) -> catalog match -> aggregate.
func (s *ParseService) ParseMeal(ctx context.Context, text string) (*domain.MealParseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidRequest)
	}

	var mentions []domain.FoodMention
	var mealType domain.MealType

	deterministic := s.patterns.ParseDeterministic(text)
	if ShouldAcceptDeterministic(deterministic) {
		if s.enableDebugLogging {
			log.Printf("[PARSE] accepted deterministic parse (%d mentions, mean confidence %.2f)",
				len(deterministic.Mentions), MeanConfidence(deterministic))
		}
		mentions = deterministic.Mentions
	} else {
		if s.enableDebugLogging {
			log.Printf("[PARSE] escalating to generative parser (succeeded=%v, mean confidence %.2f)",
				deterministic.Succeeded, MeanConfidence(deterministic))
		}
		parsed, err := s.parseGenerative(ctx, text)
		if err != nil {
			return nil, err
		}
		mentions = parsed.Foods
		mealType = parsed.MealType
	}

	matched, err := s.matcher.MatchToCatalog(ctx, mentions)
	if err != nil {
		return nil, err
	}

	return &domain.MealParseResult{
		RawText:   text,
		MealType:  mealType,
		Mentions:  mentions,
		Nutrition: ComputeNutrition(matched),
	}, nil
}

// parseGenerative runs the fallback tier: narrow the catalog with keywords
// from the input, ground the model on that slice, validate its output.
// Successful results are cached by normalized input text; the deterministic
// path never touches the cache or the network.
func (s *ParseService) parseGenerative(ctx context.Context, text string) (*domain.ParsedMeal, error) {
	if s.genParser == nil {
		return nil, fmt.Errorf("%w: no provider configured", domain.ErrProviderUnavailable)
	}

	cacheKey := generativeCacheKey(text)
	if cached := s.getCachedParse(ctx, cacheKey); cached != nil {
		if s.enableDebugLogging {
			log.Printf("[PARSE] cache hit for %q", text)
		}
		return cached, nil
	}

	foods, err := s.relevantCatalogSlice(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("catalog slice: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generativeTimeout)
	defer cancel()

	parsed, err := s.genParser.Parse(genCtx, text, foods)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: generation timed out after %s", domain.ErrProviderUnavailable, s.generativeTimeout)
		}
		return nil, err
	}

	s.setCachedParse(ctx, cacheKey, parsed)
	return parsed, nil
}

// relevantCatalogSlice narrows the catalog for the grounding prompt. With no
// usable keywords it falls back to a bounded slice of verified foods rather
// than the full catalog.
func (s *ParseService) relevantCatalogSlice(ctx context.Context, text string) ([]domain.Food, error) {
	keywords := ExtractKeywords(text)
	if len(keywords) == 0 {
		return s.catalog.ListVerified(ctx, s.catalogLimit)
	}
	return s.catalog.SearchByKeywords(ctx, keywords, s.catalogLimit)
}

// getCachedParse returns a previously cached generative result, or nil.
// Values are stored as JSON strings so they survive any cache backend.
func (s *ParseService) getCachedParse(ctx context.Context, key string) *domain.ParsedMeal {
	if s.cache == nil {
		return nil
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	encoded, ok := value.(string)
	if !ok {
		return nil
	}

	var parsed domain.ParsedMeal
	if err := json.Unmarshal([]byte(encoded), &parsed); err != nil {
		return nil
	}
	return &parsed
}

func (s *ParseService) setCachedParse(ctx context.Context, key string, parsed *domain.ParsedMeal) {
	if s.cache == nil {
		return
	}

	encoded, err := json.Marshal(parsed)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
		log.Printf("[PARSE] failed to cache generative result: %v", err)
	}
}

// generativeCacheKey normalizes input text into a cache key: lowercase,
// punctuation stripped, whitespace collapsed.
// Format: "parse:{normalized_text}"
func generativeCacheKey(text string) string {
	normalized := strings.ToLower(text)
	normalized = nonWordRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "parse:" + strings.TrimSpace(normalized)
}
