package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nutrilog/backend/internal/domain"
)

// Generation parameters for the parsing prompt. Low temperature because we
// want consistent extraction, not creativity; the output ceiling fits the
// largest plausible meal with room to spare.
const (
	generationTemperature = 0.2
	generationMaxTokens   = 500
)

// GenerativeParser is the second-tier parser: it grounds a language model on
// a filtered slice of the food catalog and asks it to extract structured
// food mentions from the user's text.
type GenerativeParser struct {
	generator          domain.TextGenerator
	enableDebugLogging bool
}

// NewGenerativeParser creates a generative parser backed by the given
// text-generation provider.
func NewGenerativeParser(generator domain.TextGenerator, enableDebugLogging bool) *GenerativeParser {
	return &GenerativeParser{
		generator:          generator,
		enableDebugLogging: enableDebugLogging,
	}
}

// parsedMealWire is the schema the model is instructed to emit. Pointer
// fields distinguish "absent" from zero values during validation: a food
// object missing its quantity must be rejected, not silently coerced.
type parsedMealWire struct {
	Foods []struct {
		Name     *string  `json:"name"`
		Quantity *float64 `json:"quantity"`
		Unit     *string  `json:"unit"`
	} `json:"foods"`
	MealType string `json:"mealType"`
}

// Parse makes exactly one generation call and validates its output. Schema
// violations return ErrGenerationSchema; the raw response is logged for
// diagnosis but never surfaced to the user. No retries: this sits on an
// interactive path where a second LLM round-trip costs more than a
// "please rephrase".
func (p *GenerativeParser) Parse(ctx context.Context, input string, catalog []domain.Food) (*domain.ParsedMeal, error) {
	prompt := buildParsePrompt(input, serializeCatalog(catalog))

	if p.enableDebugLogging {
		log.Printf("[GENPARSE] prompting with %d catalog entries, input %q", len(catalog), input)
	}

	response, err := p.generator.Generate(ctx, prompt, domain.GenerateOptions{
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	object, err := extractJSONObject(response)
	if err != nil {
		log.Printf("[GENPARSE] no JSON object in response: %s", response)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationSchema, err)
	}

	var wire parsedMealWire
	if err := json.Unmarshal([]byte(object), &wire); err != nil {
		log.Printf("[GENPARSE] malformed JSON in response: %s", response)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationSchema, err)
	}

	parsed, err := validateParsedMeal(&wire)
	if err != nil {
		log.Printf("[GENPARSE] schema violation (%v) in response: %s", err, response)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationSchema, err)
	}

	return parsed, nil
}

// serializeCatalog renders catalog entries in a compact line format to keep
// prompt tokens down. Nutrition figures are deliberately omitted; the model
// only needs names to anchor its output vocabulary.
func serializeCatalog(foods []domain.Food) string {
	var b strings.Builder
	b.WriteString("id|name_he|name_en|serving_unit\n")
	for _, food := range foods {
		fmt.Fprintf(&b, "%s|%s|%s|%s\n", food.ID, food.NameHe, food.NameEn, food.ServingUnit)
	}
	return b.String()
}

// buildParsePrompt embeds the serialized catalog, the raw input, the output
// schema and a few worked examples into a fixed template.
func buildParsePrompt(input, catalog string) string {
	return fmt.Sprintf(`You are a nutrition assistant that parses natural-language meal descriptions (Hebrew or English) into structured foods.

Known foods (one per line):
%s
User input: %q

Identify:
1. Every food the user ate
2. The quantity of each food (a number)
3. The measurement unit (one of: unit, g, ml, cup, tbsp, tsp)
4. The meal type if it can be inferred (breakfast, lunch, dinner, snack)

Respond with JSON only, no commentary:
{
  "foods": [
    { "name": "food name as it appears in the known foods list", "quantity": number, "unit": "unit code" }
  ],
  "mealType": "breakfast"
}
The mealType field is optional.

Examples:
- "2 eggs" -> {"foods":[{"name":"egg","quantity":2,"unit":"unit"}]}
- "כוס אורז" -> {"foods":[{"name":"אורז","quantity":1,"unit":"cup"}]}
- "ארוחת בוקר: טוסט עם גבינה" -> {"foods":[{"name":"טוסט","quantity":1,"unit":"unit"},{"name":"גבינה","quantity":1,"unit":"unit"}],"mealType":"breakfast"}

Important: if a food is not in the known foods list, use its most generic name.`, catalog, input)
}

// extractJSONObject returns the first balanced top-level {...} object found
// anywhere in text. Models sometimes prepend commentary or wrap the object
// in markdown fences; a brace scan that honors string literals and escapes
// is safer than a greedy regex when the payload contains nested braces.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unbalanced JSON object in response")
}

// validateParsedMeal checks the wire object against the expected schema and
// converts it to the domain shape, normalizing unit spellings on the way.
func validateParsedMeal(wire *parsedMealWire) (*domain.ParsedMeal, error) {
	if len(wire.Foods) == 0 {
		return nil, fmt.Errorf("foods array is missing or empty")
	}

	parsed := &domain.ParsedMeal{}
	for i, food := range wire.Foods {
		if food.Name == nil || strings.TrimSpace(*food.Name) == "" {
			return nil, fmt.Errorf("foods[%d]: name is missing", i)
		}
		if food.Quantity == nil {
			return nil, fmt.Errorf("foods[%d]: quantity is missing", i)
		}
		if *food.Quantity <= 0 {
			return nil, fmt.Errorf("foods[%d]: quantity must be positive", i)
		}
		if food.Unit == nil {
			return nil, fmt.Errorf("foods[%d]: unit is missing", i)
		}

		_, unit := NormalizeQuantityUnit("1", *food.Unit)
		parsed.Foods = append(parsed.Foods, domain.FoodMention{
			Name:     strings.TrimSpace(*food.Name),
			Quantity: *food.Quantity,
			Unit:     unit,
		})
	}

	if wire.MealType != "" {
		mealType := domain.MealType(strings.ToLower(wire.MealType))
		if !mealType.Valid() {
			return nil, fmt.Errorf("invalid mealType %q", wire.MealType)
		}
		parsed.MealType = mealType
	}

	return parsed, nil
}
