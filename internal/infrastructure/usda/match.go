package usda

import (
	"regexp"
	"strings"

	"github.com/nutrilog/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Data type bonuses favor USDA records that describe plain foods over
// branded products: the seeder wants the generic entry.
const (
	dataTypeSurveyBonus     = 10.0
	dataTypeFoundationBonus = 8.0
	dataTypeBrandedBonus    = 2.0
	substringMatchBonus     = 10.0
)

// stopWords are tokens that carry no signal when matching a seed query
// against USDA descriptions.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "to": true, "with": true,
	"raw": true, "nfs": true,
}

// BestMatch picks the USDA food whose description best matches the query,
// returning it with a 0-100 score. The score combines query-token coverage
// (most important), description coverage, and Jaccard similarity, plus
// bonuses for generic data types and substring matches. Returns
// ErrFoodNotFound when the candidate list is empty.
func BestMatch(query string, foods []Food) (*Food, float64, error) {
	if len(foods) == 0 {
		return nil, 0, domain.ErrFoodNotFound
	}

	var best *Food
	highestScore := -1.0

	for i := range foods {
		score := matchScore(query, &foods[i])
		if score > highestScore {
			highestScore = score
			best = &foods[i]
		}
	}

	return best, highestScore, nil
}

// matchScore computes similarity between the seed query and a USDA
// description, 0-100 before bonuses.
func matchScore(query string, food *Food) float64 {
	queryTokens := tokenize(query)
	descTokens := tokenize(food.Description)
	if len(queryTokens) == 0 || len(descTokens) == 0 {
		return 0
	}

	queryMatched := countIntersection(queryTokens, descTokens)
	queryCoverage := float64(queryMatched) / float64(len(queryTokens))

	descMatched := countIntersection(descTokens, queryTokens)
	descCoverage := float64(descMatched) / float64(len(descTokens))

	jaccard := float64(queryMatched) / float64(countUnion(queryTokens, descTokens))

	score := (queryCoverage*0.60 + descCoverage*0.20 + jaccard*0.20) * 100

	switch food.DataType {
	case "Survey (FNDDS)":
		score += dataTypeSurveyBonus
	case "Foundation":
		score += dataTypeFoundationBonus
	case "Branded":
		score += dataTypeBrandedBonus
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	descLower := strings.ToLower(food.Description)
	if len(queryLower) > 3 && strings.Contains(descLower, queryLower) {
		score += substringMatchBonus
	}

	if score > 100 {
		score = 100
	}
	return score
}

// tokenize splits a string into normalized lowercase tokens, dropping
// punctuation, stop words, single characters and pure numbers.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// countIntersection returns how many distinct tokens of tokens1 appear in
// tokens2, allowing a one-edit fuzzy match for longer tokens.
func countIntersection(tokens1, tokens2 []string) int {
	count := 0
	seen := make(map[string]bool)
	for _, t1 := range tokens1 {
		if seen[t1] {
			continue
		}
		for _, t2 := range tokens2 {
			if t1 == t2 || fuzzyTokenMatch(t1, t2, 1) {
				seen[t1] = true
				count++
				break
			}
		}
	}
	return count
}

// countUnion returns the count of unique tokens across both sets
func countUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance
// threshold. Only tokens of 4+ characters are fuzzed, to avoid false
// positives on short words.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
