package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/domain"
	"github.com/nutrilog/backend/internal/infrastructure/postgres"
	"github.com/nutrilog/backend/internal/infrastructure/usda"
)

// seedFood names one catalog entry to build from USDA FoodData Central.
// Query is the English search phrase; the Hebrew name is curated here since
// USDA has no Hebrew descriptions.
type seedFood struct {
	NameHe      string
	NameEn      string
	Query       string
	ServingSize float64
	ServingUnit domain.Unit
}

// Common Israeli staples. Serving sizes are typical household portions.
var seedList = []seedFood{
	{NameHe: "ביצה", NameEn: "egg", Query: "egg whole raw", ServingSize: 60, ServingUnit: domain.UnitGram},
	{NameHe: "חזה עוף", NameEn: "chicken breast", Query: "chicken breast raw", ServingSize: 150, ServingUnit: domain.UnitGram},
	{NameHe: "אורז לבן", NameEn: "white rice", Query: "rice white cooked", ServingSize: 160, ServingUnit: domain.UnitGram},
	{NameHe: "לחם מלא", NameEn: "whole wheat bread", Query: "bread whole wheat", ServingSize: 30, ServingUnit: domain.UnitGram},
	{NameHe: "אבוקדו", NameEn: "avocado", Query: "avocado raw", ServingSize: 150, ServingUnit: domain.UnitGram},
	{NameHe: "טונה בשימורים", NameEn: "canned tuna", Query: "tuna canned in water", ServingSize: 120, ServingUnit: domain.UnitGram},
	{NameHe: "קוטג'", NameEn: "cottage cheese", Query: "cottage cheese", ServingSize: 250, ServingUnit: domain.UnitGram},
	{NameHe: "יוגורט", NameEn: "yogurt", Query: "yogurt plain whole milk", ServingSize: 150, ServingUnit: domain.UnitGram},
	{NameHe: "בננה", NameEn: "banana", Query: "banana raw", ServingSize: 120, ServingUnit: domain.UnitGram},
	{NameHe: "תפוח", NameEn: "apple", Query: "apple raw with skin", ServingSize: 180, ServingUnit: domain.UnitGram},
	{NameHe: "עגבנייה", NameEn: "tomato", Query: "tomato red raw", ServingSize: 120, ServingUnit: domain.UnitGram},
	{NameHe: "מלפפון", NameEn: "cucumber", Query: "cucumber with peel raw", ServingSize: 100, ServingUnit: domain.UnitGram},
	{NameHe: "חומוס", NameEn: "hummus", Query: "hummus commercial", ServingSize: 30, ServingUnit: domain.UnitGram},
	{NameHe: "טחינה", NameEn: "tahini", Query: "tahini sesame butter", ServingSize: 15, ServingUnit: domain.UnitTablespoon},
	{NameHe: "שמן זית", NameEn: "olive oil", Query: "olive oil", ServingSize: 15, ServingUnit: domain.UnitTablespoon},
	{NameHe: "שיבולת שועל", NameEn: "oats", Query: "oats rolled dry", ServingSize: 40, ServingUnit: domain.UnitGram},
	{NameHe: "עדשים", NameEn: "lentils", Query: "lentils cooked", ServingSize: 180, ServingUnit: domain.UnitGram},
	{NameHe: "סלמון", NameEn: "salmon", Query: "salmon atlantic raw", ServingSize: 150, ServingUnit: domain.UnitGram},
	{NameHe: "בטטה", NameEn: "sweet potato", Query: "sweet potato raw", ServingSize: 130, ServingUnit: domain.UnitGram},
	{NameHe: "שקדים", NameEn: "almonds", Query: "almonds raw", ServingSize: 30, ServingUnit: domain.UnitGram},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "resolve foods against USDA without writing to the database")
	limit := flag.Int("limit", 0, "seed at most this many foods (0 = all)")
	only := flag.String("only", "", "seed only foods whose English name contains this substring")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.USDA.APIKey == "" {
		log.Fatalf("NUTRILOG_USDA_API_KEY is required for seeding")
	}

	var repo *postgres.CatalogRepo
	if !*dryRun {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo = postgres.NewCatalogRepo(db)
	}

	client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)

	ctx := context.Background()
	seeded, skipped, failed := 0, 0, 0

	for _, seed := range seedList {
		if *only != "" && !strings.Contains(seed.NameEn, *only) {
			continue
		}
		if *limit > 0 && seeded >= *limit {
			break
		}

		if repo != nil {
			if _, err := repo.FindByNameExact(ctx, seed.NameHe); err == nil {
				log.Printf("skip %s: already in catalog", seed.NameEn)
				skipped++
				continue
			} else if !errors.Is(err, domain.ErrFoodNotFound) {
				log.Fatalf("catalog lookup for %s failed: %v", seed.NameEn, err)
			}
		}

		food, err := resolveSeed(ctx, client, seed)
		if err != nil {
			log.Printf("FAILED %s: %v", seed.NameEn, err)
			failed++
			continue
		}

		if *dryRun {
			log.Printf("would seed %s (%s): %.0f kcal, %.1fg protein per 100g [fdc %s]",
				food.NameEn, food.NameHe, food.Calories, food.Protein, food.UsdaID)
			seeded++
			continue
		}

		if err := repo.Save(ctx, food); err != nil {
			log.Printf("FAILED %s: save: %v", seed.NameEn, err)
			failed++
			continue
		}
		log.Printf("seeded %s (%s): %.0f kcal per 100g [fdc %s]",
			food.NameEn, food.NameHe, food.Calories, food.UsdaID)
		seeded++

		// Stay well inside the USDA rate limit.
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("done: %d seeded, %d skipped, %d failed", seeded, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// resolveSeed searches USDA for the seed's query and maps the best match to
// a catalog entry.
func resolveSeed(ctx context.Context, client *usda.Client, seed seedFood) (*domain.Food, error) {
	resp, err := client.SearchFoods(ctx, seed.Query)
	if err != nil {
		return nil, err
	}

	match, score, err := usda.BestMatch(seed.Query, resp.Foods)
	if err != nil {
		return nil, err
	}
	log.Printf("matched %q to %q (fdc %d, score %.0f)", seed.Query, match.Description, match.FdcID, score)

	return match.MapToFood(seed.NameHe, seed.NameEn, seed.ServingSize, seed.ServingUnit), nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
