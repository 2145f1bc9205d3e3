package domain

import "errors"

var (
	// ErrNoCatalogMatch is returned when none of the extracted food mentions
	// could be resolved against the catalog
	ErrNoCatalogMatch = errors.New("no matching foods found in database")

	// ErrGenerationSchema is returned when the text-generation service's
	// output could not be parsed or failed schema validation
	ErrGenerationSchema = errors.New("could not understand input")

	// ErrProviderUnavailable is returned when the text-generation service is
	// not configured, unreachable, or timed out
	ErrProviderUnavailable = errors.New("text generation provider unavailable")

	// ErrFoodNotFound is returned when a catalog lookup finds no entry
	ErrFoodNotFound = errors.New("food not found in catalog")

	// ErrMealNotFound is returned when a meal lookup finds no entry
	ErrMealNotFound = errors.New("meal not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUSDAAPIFailure is returned when the USDA FoodData Central API fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")
)
