package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/nutrilog/backend/internal/domain"
)

// fractionWords maps quantity words to their numeric value. The app is
// Hebrew-first with English fallbacks, so both spellings are carried.
var fractionWords = map[string]float64{
	"חצי":            0.5,
	"רבע":            0.25,
	"שליש":           0.33,
	"שני שלישים":     0.66,
	"שלושה רבעים":    0.75,
	"half":           0.5,
	"quarter":        0.25,
	"third":          0.33,
	"two-thirds":     0.66,
	"three-quarters": 0.75,
}

// unitSynonyms maps unit words (Hebrew and English spellings) to unit codes.
var unitSynonyms = map[string]domain.Unit{
	// grams
	"גרם":   domain.UnitGram,
	"גרמים": domain.UnitGram,
	"גר":    domain.UnitGram,
	"ג":     domain.UnitGram,
	"g":     domain.UnitGram,
	"gr":    domain.UnitGram,
	"gram":  domain.UnitGram,
	"grams": domain.UnitGram,
	// milliliters
	"מל":          domain.UnitMilliliter,
	"מיליליטר":    domain.UnitMilliliter,
	"ml":          domain.UnitMilliliter,
	"milliliter":  domain.UnitMilliliter,
	"milliliters": domain.UnitMilliliter,
	// cups
	"כוס":   domain.UnitCup,
	"כוסות": domain.UnitCup,
	"cup":   domain.UnitCup,
	"cups":  domain.UnitCup,
	// tablespoons
	"כף":          domain.UnitTablespoon,
	"כפות":        domain.UnitTablespoon,
	"tbsp":        domain.UnitTablespoon,
	"tablespoon":  domain.UnitTablespoon,
	"tablespoons": domain.UnitTablespoon,
	// teaspoons
	"כפית":      domain.UnitTeaspoon,
	"כפיות":     domain.UnitTeaspoon,
	"tsp":       domain.UnitTeaspoon,
	"teaspoon":  domain.UnitTeaspoon,
	"teaspoons": domain.UnitTeaspoon,
	// discrete units
	"יחידה":  domain.UnitPiece,
	"יחידות": domain.UnitPiece,
	"unit":   domain.UnitPiece,
	"units":  domain.UnitPiece,
	"piece":  domain.UnitPiece,
	"pieces": domain.UnitPiece,
}

// NormalizeQuantityUnit maps a free-text quantity token (digit literal or
// fraction word) and a free-text unit token to a (quantity, unit code) pair.
// Unrecognized quantity words yield NaN so the caller can decide on a
// default; unmapped unit tokens default to grams. Pure function.
func NormalizeQuantityUnit(quantityToken, unitToken string) (float64, domain.Unit) {
	return normalizeQuantity(quantityToken), normalizeUnit(unitToken)
}

func normalizeQuantity(token string) float64 {
	token = strings.ToLower(strings.TrimSpace(token))

	if q, err := strconv.ParseFloat(token, 64); err == nil {
		return q
	}
	if q, ok := fractionWords[token]; ok {
		return q
	}
	return math.NaN()
}

func normalizeUnit(token string) domain.Unit {
	token = strings.ToLower(strings.TrimSpace(token))
	// Strip the quote forms of Hebrew abbreviations (מ"ל, ג')
	token = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '״', '׳':
			return -1
		}
		return r
	}, token)

	if unit, ok := unitSynonyms[token]; ok {
		return unit
	}
	return domain.UnitGram
}
