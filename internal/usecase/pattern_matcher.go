package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nutrilog/backend/internal/domain"
)

// Fixed, pattern-specific confidence scores. These indicate how literally a
// pattern match implies a correct parse; they are design constants, not
// learned values.
const (
	confidenceCountable = 0.95
	confidenceWeight    = 0.90
	confidenceVolume    = 0.85
	confidenceFraction  = 0.85
	confidenceBareName  = 0.70
)

// AcceptConfidenceThreshold is the mean-confidence level at or above which a
// deterministic parse is accepted without escalating to the generative
// parser. The comparison is inclusive.
const AcceptConfidenceThreshold = 0.75

// Package-level compiled regex patterns for performance.
//
// Word boundaries (\b) are useless with Hebrew letters (they are not \w in
// Go's regexp), so alternations list longer forms first instead.
var (
	quoteCharsRegex  = regexp.MustCompile(`[״"׳']`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	clauseSplitRegex = regexp.MustCompile(`[,،\n]`)

	// "2 ביצים" / "2 eggs"
	countableRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ביצים|ביצה|eggs|egg)`)

	// "100 גרם חזה עוף" / "150 grams chicken breast"
	weightRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(גרמים|גרם|גר|ג|grams|gram|gr|g)\s+([a-zA-Zא-ת][a-zA-Zא-ת\s]*)`)

	// "כוס אורז" / "cup of rice"
	volumeRegex = regexp.MustCompile(`(?i)(כוסות|כוס|כפיות|כפית|כפות|כף|cups|cup|tablespoons|tablespoon|tbsp|teaspoons|teaspoon|tsp)\s+(?:of\s+)?([a-zA-Zא-ת][a-zA-Zא-ת\s]*)`)

	// "חצי אבוקדו" / "half an avocado"
	fractionRegex = regexp.MustCompile(`(?i)(שני שלישים|שלושה רבעים|חצי|רבע|שליש|two-thirds|three-quarters|half|quarter|third)\s+(?:an\s+|a\s+|of\s+)?([a-zA-Zא-ת][a-zA-Zא-ת\s]*)`)

	// bare food name, e.g. "טוסט" or "toast"
	bareNameRegex = regexp.MustCompile(`^[a-zA-Zא-ת\s]+$`)
)

// countableNouns maps every matched countable-noun form to the canonical
// catalog name it should resolve under.
var countableNouns = map[string]string{
	"ביצה":  "ביצה",
	"ביצים": "ביצה",
	"egg":   "egg",
	"eggs":  "egg",
}

// PatternMatcher is the deterministic first-tier parser. It applies an
// ordered list of text patterns to each clause of the input; the first
// pattern to match a clause wins.
type PatternMatcher struct {
	enableDebugLogging bool
}

// NewPatternMatcher creates a new deterministic parser.
func NewPatternMatcher(enableDebugLogging bool) *PatternMatcher {
	return &PatternMatcher{enableDebugLogging: enableDebugLogging}
}

// ParseDeterministic parses free-text meal input with regex patterns only.
// Clauses that match no pattern contribute nothing; partial recognition is
// expected and acceptable. Succeeded is true iff at least one clause
// produced a mention.
func (m *PatternMatcher) ParseDeterministic(input string) domain.ParseResult {
	normalized := normalizeInput(input)
	var mentions []domain.FoodMention

	for _, clause := range clauseSplitRegex.Split(normalized, -1) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		mention, ok := m.matchClause(clause)
		if !ok {
			if m.enableDebugLogging {
				log.Printf("[PATTERN] no match for clause %q", clause)
			}
			continue
		}
		if m.enableDebugLogging {
			log.Printf("[PATTERN] clause %q -> %q qty=%.2f unit=%s conf=%.2f",
				clause, mention.Name, mention.Quantity, mention.Unit, mention.Confidence)
		}
		mentions = append(mentions, mention)
	}

	return domain.ParseResult{
		Succeeded: len(mentions) > 0,
		Mentions:  mentions,
		RawInput:  input,
	}
}

// matchClause tries the recognizers in priority order; first match wins.
// The ordering is part of the contract: the confidence constants were tuned
// against it.
func (m *PatternMatcher) matchClause(clause string) (domain.FoodMention, bool) {
	if match := countableRegex.FindStringSubmatch(clause); match != nil {
		quantity, _ := strconv.ParseFloat(match[1], 64)
		return domain.FoodMention{
			Name:       countableNouns[strings.ToLower(match[2])],
			Quantity:   quantity,
			Unit:       domain.UnitPiece,
			Confidence: confidenceCountable,
		}, true
	}

	if match := weightRegex.FindStringSubmatch(clause); match != nil {
		quantity, _ := strconv.ParseFloat(match[1], 64)
		return domain.FoodMention{
			Name:       strings.TrimSpace(match[3]),
			Quantity:   quantity,
			Unit:       domain.UnitGram,
			Confidence: confidenceWeight,
		}, true
	}

	if match := volumeRegex.FindStringSubmatch(clause); match != nil {
		quantity, unit := NormalizeQuantityUnit("1", match[1])
		return domain.FoodMention{
			Name:       strings.TrimSpace(match[2]),
			Quantity:   quantity,
			Unit:       unit,
			Confidence: confidenceVolume,
		}, true
	}

	if match := fractionRegex.FindStringSubmatch(clause); match != nil {
		quantity, _ := NormalizeQuantityUnit(match[1], "unit")
		return domain.FoodMention{
			Name:       strings.TrimSpace(match[2]),
			Quantity:   quantity,
			Unit:       domain.UnitPiece,
			Confidence: confidenceFraction,
		}, true
	}

	if bareNameRegex.MatchString(clause) && utf8.RuneCountInString(clause) > 2 {
		return domain.FoodMention{
			Name:       clause,
			Quantity:   1,
			Unit:       domain.UnitPiece,
			Confidence: confidenceBareName,
		}, true
	}

	return domain.FoodMention{}, false
}

// normalizeInput strips quote characters (including Hebrew gershayim) and
// collapses whitespace.
func normalizeInput(input string) string {
	normalized := quoteCharsRegex.ReplaceAllString(input, "")
	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// MeanConfidence is the arithmetic mean of all mention confidences; an empty
// mention list yields 0.
func MeanConfidence(result domain.ParseResult) float64 {
	if len(result.Mentions) == 0 {
		return 0
	}

	sum := 0.0
	for _, mention := range result.Mentions {
		sum += mention.Confidence
	}
	return sum / float64(len(result.Mentions))
}

// ShouldAcceptDeterministic decides whether the deterministic result is good
// enough to skip the generative fallback. The deterministic path is
// preferred whenever pattern coverage is plausible: it costs nothing and has
// no latency variance.
func ShouldAcceptDeterministic(result domain.ParseResult) bool {
	return result.Succeeded && MeanConfidence(result) >= AcceptConfidenceThreshold
}
