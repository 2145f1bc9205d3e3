package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nutrilog/backend/internal/domain"
)

// stubGenerator is a hand-written TextGenerator test double. It records every
// prompt it is asked to complete and replays canned responses.
type stubGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
	opts     []domain.GenerateOptions
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

var testCatalog = []domain.Food{
	{ID: "f1", NameHe: "ביצה", NameEn: "egg", ServingUnit: domain.UnitPiece},
	{ID: "f2", NameHe: "אורז לבן", NameEn: "white rice", ServingUnit: domain.UnitCup},
}

func TestGenerativeParser_Parse(t *testing.T) {
	t.Run("valid response parsed into domain mentions", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":2,"unit":"unit"},{"name":"white rice","quantity":1,"unit":"cup"}],"mealType":"breakfast"}`,
		}
		parser := NewGenerativeParser(gen, false)

		parsed, err := parser.Parse(context.Background(), "2 eggs and a cup of rice", testCatalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(parsed.Foods) != 2 {
			t.Fatalf("got %d foods, want 2", len(parsed.Foods))
		}
		if parsed.Foods[0].Name != "egg" || parsed.Foods[0].Quantity != 2 || parsed.Foods[0].Unit != domain.UnitPiece {
			t.Errorf("first food = %+v", parsed.Foods[0])
		}
		if parsed.Foods[1].Unit != domain.UnitCup {
			t.Errorf("second food unit = %v, want cup", parsed.Foods[1].Unit)
		}
		if parsed.MealType != domain.MealTypeBreakfast {
			t.Errorf("mealType = %v, want breakfast", parsed.MealType)
		}
	})

	t.Run("makes exactly one generation call", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":1,"unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		if _, err := parser.Parse(context.Background(), "an egg", testCatalog); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gen.calls != 1 {
			t.Errorf("generator called %d times, want exactly 1", gen.calls)
		}
	})

	t.Run("no retry on schema failure", func(t *testing.T) {
		gen := &stubGenerator{response: "I could not find any foods."}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "gibberish", testCatalog)
		if !errors.Is(err, domain.ErrGenerationSchema) {
			t.Fatalf("error = %v, want ErrGenerationSchema", err)
		}
		if gen.calls != 1 {
			t.Errorf("generator called %d times, want exactly 1", gen.calls)
		}
	})

	t.Run("uses fixed generation parameters", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":1,"unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		if _, err := parser.Parse(context.Background(), "an egg", testCatalog); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gen.opts[0].Temperature != 0.2 {
			t.Errorf("temperature = %v, want 0.2", gen.opts[0].Temperature)
		}
		if gen.opts[0].MaxTokens != 500 {
			t.Errorf("maxTokens = %v, want 500", gen.opts[0].MaxTokens)
		}
	})

	t.Run("prompt carries catalog names and raw input", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":1,"unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		if _, err := parser.Parse(context.Background(), "2 ביצים", testCatalog); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		prompt := gen.prompts[0]
		if !strings.Contains(prompt, "ביצה") || !strings.Contains(prompt, "white rice") {
			t.Error("prompt does not include catalog entries")
		}
		if !strings.Contains(prompt, "2 ביצים") {
			t.Error("prompt does not include the user input")
		}
	})

	t.Run("json inside markdown fences is extracted", func(t *testing.T) {
		gen := &stubGenerator{
			response: "```json\n{\"foods\":[{\"name\":\"egg\",\"quantity\":1,\"unit\":\"unit\"}]}\n```",
		}
		parser := NewGenerativeParser(gen, false)

		parsed, err := parser.Parse(context.Background(), "egg", testCatalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(parsed.Foods) != 1 {
			t.Errorf("got %d foods, want 1", len(parsed.Foods))
		}
	})

	t.Run("commentary before the object is tolerated", func(t *testing.T) {
		gen := &stubGenerator{
			response: `Sure, here is the parse: {"foods":[{"name":"egg","quantity":1,"unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		if _, err := parser.Parse(context.Background(), "egg", testCatalog); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing quantity is a schema violation", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "egg", testCatalog)
		if !errors.Is(err, domain.ErrGenerationSchema) {
			t.Errorf("error = %v, want ErrGenerationSchema", err)
		}
	})

	t.Run("zero quantity is a schema violation", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":0,"unit":"unit"}]}`,
		}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "egg", testCatalog)
		if !errors.Is(err, domain.ErrGenerationSchema) {
			t.Errorf("error = %v, want ErrGenerationSchema", err)
		}
	})

	t.Run("empty foods array is a schema violation", func(t *testing.T) {
		gen := &stubGenerator{response: `{"foods":[]}`}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "egg", testCatalog)
		if !errors.Is(err, domain.ErrGenerationSchema) {
			t.Errorf("error = %v, want ErrGenerationSchema", err)
		}
	})

	t.Run("unknown meal type is a schema violation", func(t *testing.T) {
		gen := &stubGenerator{
			response: `{"foods":[{"name":"egg","quantity":1,"unit":"unit"}],"mealType":"brunch"}`,
		}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "egg", testCatalog)
		if !errors.Is(err, domain.ErrGenerationSchema) {
			t.Errorf("error = %v, want ErrGenerationSchema", err)
		}
	})

	t.Run("provider error passes through unwrapped", func(t *testing.T) {
		gen := &stubGenerator{err: domain.ErrProviderUnavailable}
		parser := NewGenerativeParser(gen, false)

		_, err := parser.Parse(context.Background(), "egg", testCatalog)
		if !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Errorf("error = %v, want ErrProviderUnavailable", err)
		}
	})
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("nested braces inside strings", func(t *testing.T) {
		text := `prefix {"a":"{not a brace}","b":{"c":1}} suffix`
		got, err := extractJSONObject(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `{"a":"{not a brace}","b":{"c":1}}` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("escaped quote inside string", func(t *testing.T) {
		text := `{"a":"say \"hi\"}"}`
		got, err := extractJSONObject(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != text {
			t.Errorf("got %q, want the whole object", got)
		}
	})

	t.Run("no object present", func(t *testing.T) {
		if _, err := extractJSONObject("nothing here"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("unbalanced object", func(t *testing.T) {
		if _, err := extractJSONObject(`{"a":1`); err == nil {
			t.Error("expected an error")
		}
	})
}
