package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nutrilog/backend/internal/domain"
)

// DefaultCatalogLimit caps how many catalog entries a keyword search may
// return. It bounds the size of the grounding prompt sent to the generative
// service, both for cost and to keep the model's candidate space relevant.
const DefaultCatalogLimit = 50

// keywordSplitRegex splits input on whitespace and comma variants.
var keywordSplitRegex = regexp.MustCompile(`[\s,،]+`)

// keywordStopWords are tokens that never help find a food: pronouns,
// prepositions and the "I ate / I drank" verbs that meal descriptions
// usually open with, in both input languages.
var keywordStopWords = map[string]bool{
	// Hebrew
	"אכלתי": true,
	"שתיתי": true,
	"ארוחת": true,
	"עם":    true,
	"של":    true,
	"את":    true,
	// English
	"the":   true,
	"with":  true,
	"and":   true,
	"or":    true,
	"ate":   true,
	"drank": true,
	"had":   true,
	"some":  true,
	"for":   true,
}

// ExtractKeywords pulls food-search keywords out of free text: lowercased,
// short tokens and stop words dropped, duplicates removed preserving order.
func ExtractKeywords(text string) []string {
	words := keywordSplitRegex.Split(strings.ToLower(text), -1)

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range words {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if keywordStopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

// FilterCatalog narrows foods to those whose Hebrew or English name contains
// any keyword as a case-insensitive substring, bounded to limit. A limit of
// zero or less falls back to DefaultCatalogLimit.
func FilterCatalog(keywords []string, foods []domain.Food, limit int) []domain.Food {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}

	var filtered []domain.Food
	for _, food := range foods {
		if len(filtered) >= limit {
			break
		}
		if foodNameContainsAny(food, keywords) {
			filtered = append(filtered, food)
		}
	}
	return filtered
}

func foodNameContainsAny(food domain.Food, keywords []string) bool {
	nameHe := strings.ToLower(food.NameHe)
	nameEn := strings.ToLower(food.NameEn)

	for _, keyword := range keywords {
		if strings.Contains(nameHe, keyword) || (nameEn != "" && strings.Contains(nameEn, keyword)) {
			return true
		}
	}
	return false
}
