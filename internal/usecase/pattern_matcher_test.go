package usecase

import (
	"testing"

	"github.com/nutrilog/backend/internal/domain"
)

func TestParseDeterministic(t *testing.T) {
	matcher := NewPatternMatcher(false)

	t.Run("countable noun with digit quantity", func(t *testing.T) {
		result := matcher.ParseDeterministic("2 ביצים")

		if !result.Succeeded {
			t.Fatal("expected parse to succeed")
		}
		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		mention := result.Mentions[0]
		if mention.Name != "ביצה" {
			t.Errorf("name = %q, want canonical singular", mention.Name)
		}
		if mention.Quantity != 2 {
			t.Errorf("quantity = %v, want 2", mention.Quantity)
		}
		if mention.Unit != domain.UnitPiece {
			t.Errorf("unit = %v, want unit", mention.Unit)
		}
		if mention.Confidence != 0.95 {
			t.Errorf("confidence = %v, want 0.95", mention.Confidence)
		}
	})

	t.Run("english countable noun", func(t *testing.T) {
		result := matcher.ParseDeterministic("3 eggs")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Name != "egg" {
			t.Errorf("name = %q, want egg", result.Mentions[0].Name)
		}
		if result.Mentions[0].Quantity != 3 {
			t.Errorf("quantity = %v, want 3", result.Mentions[0].Quantity)
		}
	})

	t.Run("weight pattern yields grams", func(t *testing.T) {
		result := matcher.ParseDeterministic("150 גרם חזה עוף")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		mention := result.Mentions[0]
		if mention.Name != "חזה עוף" {
			t.Errorf("name = %q, want food name after unit word", mention.Name)
		}
		if mention.Quantity != 150 {
			t.Errorf("quantity = %v, want 150", mention.Quantity)
		}
		if mention.Unit != domain.UnitGram {
			t.Errorf("unit = %v, want g", mention.Unit)
		}
		if mention.Confidence != 0.90 {
			t.Errorf("confidence = %v, want 0.90", mention.Confidence)
		}
	})

	t.Run("english weight pattern", func(t *testing.T) {
		result := matcher.ParseDeterministic("100 grams chicken breast")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Name != "chicken breast" {
			t.Errorf("name = %q, want chicken breast", result.Mentions[0].Name)
		}
		if result.Mentions[0].Unit != domain.UnitGram {
			t.Errorf("unit = %v, want g", result.Mentions[0].Unit)
		}
	})

	t.Run("volume pattern with implicit quantity one", func(t *testing.T) {
		result := matcher.ParseDeterministic("כוס אורז")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		mention := result.Mentions[0]
		if mention.Name != "אורז" {
			t.Errorf("name = %q, want אורז", mention.Name)
		}
		if mention.Quantity != 1 {
			t.Errorf("quantity = %v, want implicit 1", mention.Quantity)
		}
		if mention.Unit != domain.UnitCup {
			t.Errorf("unit = %v, want cup", mention.Unit)
		}
		if mention.Confidence != 0.85 {
			t.Errorf("confidence = %v, want 0.85", mention.Confidence)
		}
	})

	t.Run("volume pattern skips of connector", func(t *testing.T) {
		result := matcher.ParseDeterministic("cup of rice")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Name != "rice" {
			t.Errorf("name = %q, want rice", result.Mentions[0].Name)
		}
		if result.Mentions[0].Unit != domain.UnitCup {
			t.Errorf("unit = %v, want cup", result.Mentions[0].Unit)
		}
	})

	t.Run("fraction pattern", func(t *testing.T) {
		result := matcher.ParseDeterministic("חצי אבוקדו")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		mention := result.Mentions[0]
		if mention.Name != "אבוקדו" {
			t.Errorf("name = %q, want אבוקדו", mention.Name)
		}
		if mention.Quantity != 0.5 {
			t.Errorf("quantity = %v, want 0.5", mention.Quantity)
		}
		if mention.Unit != domain.UnitPiece {
			t.Errorf("unit = %v, want unit", mention.Unit)
		}
		if mention.Confidence != 0.85 {
			t.Errorf("confidence = %v, want 0.85", mention.Confidence)
		}
	})

	t.Run("english fraction with article", func(t *testing.T) {
		result := matcher.ParseDeterministic("half an avocado")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Name != "avocado" {
			t.Errorf("name = %q, want avocado", result.Mentions[0].Name)
		}
		if result.Mentions[0].Quantity != 0.5 {
			t.Errorf("quantity = %v, want 0.5", result.Mentions[0].Quantity)
		}
	})

	t.Run("bare name fallback", func(t *testing.T) {
		result := matcher.ParseDeterministic("טוסט")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		mention := result.Mentions[0]
		if mention.Name != "טוסט" {
			t.Errorf("name = %q, want טוסט", mention.Name)
		}
		if mention.Quantity != 1 {
			t.Errorf("quantity = %v, want 1", mention.Quantity)
		}
		if mention.Confidence != 0.70 {
			t.Errorf("confidence = %v, want 0.70", mention.Confidence)
		}
	})

	t.Run("two-rune clause is not a bare name", func(t *testing.T) {
		result := matcher.ParseDeterministic("אב")

		if result.Succeeded {
			t.Error("expected parse to fail for a two-letter clause")
		}
	})

	t.Run("comma separated clauses parsed independently", func(t *testing.T) {
		result := matcher.ParseDeterministic("2 ביצים, 100 גרם גבינה, כוס אורז")

		if len(result.Mentions) != 3 {
			t.Fatalf("expected 3 mentions, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Unit != domain.UnitPiece {
			t.Errorf("first mention unit = %v, want unit", result.Mentions[0].Unit)
		}
		if result.Mentions[1].Unit != domain.UnitGram {
			t.Errorf("second mention unit = %v, want g", result.Mentions[1].Unit)
		}
		if result.Mentions[2].Unit != domain.UnitCup {
			t.Errorf("third mention unit = %v, want cup", result.Mentions[2].Unit)
		}
	})

	t.Run("unmatched clause drops silently", func(t *testing.T) {
		result := matcher.ParseDeterministic("2 ביצים, 12345")

		if !result.Succeeded {
			t.Fatal("expected parse to succeed on the matched clause")
		}
		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
	})

	t.Run("first matching pattern wins", func(t *testing.T) {
		// A clause matching both the countable and weight recognizers must
		// resolve through the countable one.
		result := matcher.ParseDeterministic("2 eggs 100 grams bread")

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Name != "egg" {
			t.Errorf("name = %q, want egg from the countable recognizer", result.Mentions[0].Name)
		}
		if result.Mentions[0].Unit != domain.UnitPiece {
			t.Errorf("unit = %v, want unit", result.Mentions[0].Unit)
		}
	})

	t.Run("quote characters are stripped before matching", func(t *testing.T) {
		result := matcher.ParseDeterministic(`150 ג׳ עוף`)

		if len(result.Mentions) != 1 {
			t.Fatalf("expected 1 mention, got %d", len(result.Mentions))
		}
		if result.Mentions[0].Unit != domain.UnitGram {
			t.Errorf("unit = %v, want g", result.Mentions[0].Unit)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		result := matcher.ParseDeterministic("   ")

		if result.Succeeded {
			t.Error("expected parse of blank input to fail")
		}
		if len(result.Mentions) != 0 {
			t.Errorf("expected no mentions, got %d", len(result.Mentions))
		}
	})

	t.Run("raw input preserved on result", func(t *testing.T) {
		result := matcher.ParseDeterministic("  2 eggs  ")

		if result.RawInput != "  2 eggs  " {
			t.Errorf("raw input = %q, want original text", result.RawInput)
		}
	})
}

func TestMeanConfidence(t *testing.T) {
	t.Run("empty result yields zero", func(t *testing.T) {
		if got := MeanConfidence(domain.ParseResult{}); got != 0 {
			t.Errorf("mean = %v, want 0", got)
		}
	})

	t.Run("arithmetic mean of mention confidences", func(t *testing.T) {
		result := domain.ParseResult{
			Succeeded: true,
			Mentions: []domain.FoodMention{
				{Confidence: 0.95},
				{Confidence: 0.70},
			},
		}
		want := (0.95 + 0.70) / 2
		if got := MeanConfidence(result); got != want {
			t.Errorf("mean = %v, want %v", got, want)
		}
	})
}

func TestShouldAcceptDeterministic(t *testing.T) {
	t.Run("accepts exactly at threshold", func(t *testing.T) {
		result := domain.ParseResult{
			Succeeded: true,
			Mentions:  []domain.FoodMention{{Confidence: 0.75}},
		}
		if !ShouldAcceptDeterministic(result) {
			t.Error("expected mean of exactly 0.75 to be accepted")
		}
	})

	t.Run("rejects just below threshold", func(t *testing.T) {
		result := domain.ParseResult{
			Succeeded: true,
			Mentions:  []domain.FoodMention{{Confidence: 0.7499}},
		}
		if ShouldAcceptDeterministic(result) {
			t.Error("expected mean below 0.75 to be rejected")
		}
	})

	t.Run("rejects failed parse regardless of confidence", func(t *testing.T) {
		result := domain.ParseResult{Succeeded: false}
		if ShouldAcceptDeterministic(result) {
			t.Error("expected failed parse to be rejected")
		}
	})

	t.Run("mixed confidences above threshold accepted", func(t *testing.T) {
		// weight (0.90) + bare name (0.70) averages 0.80
		result := domain.ParseResult{
			Succeeded: true,
			Mentions: []domain.FoodMention{
				{Confidence: 0.90},
				{Confidence: 0.70},
			},
		}
		if !ShouldAcceptDeterministic(result) {
			t.Error("expected mean 0.80 to be accepted")
		}
	})
}
