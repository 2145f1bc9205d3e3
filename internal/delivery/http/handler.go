package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/domain"
	"github.com/nutrilog/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	parser  *usecase.ParseService
	catalog domain.CatalogRepository
	meals   domain.MealRepository
}

// NewHandler creates a new HTTP handler. meals may be nil when meal
// persistence is not configured; the meal endpoints then return 503.
func NewHandler(parser *usecase.ParseService, catalog domain.CatalogRepository, meals domain.MealRepository) *Handler {
	return &Handler{
		parser:  parser,
		catalog: catalog,
		meals:   meals,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrilog-backend",
		"version": "1.0.0",
	})
}

// parseMealRequest is the body of POST /api/v1/meals/parse.
type parseMealRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseMeal converts free-text meal input into resolved catalog items with
// computed nutrition. Nothing is persisted; the client reviews the result
// and follows up with CreateMeal.
func (h *Handler) ParseMeal(c *gin.Context) {
	var req parseMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.parser.ParseMeal(c.Request.Context(), req.Text)
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeParseError maps parse-pipeline errors to HTTP statuses without
// leaking provider internals.
func (h *Handler) writeParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
	case errors.Is(err, domain.ErrNoCatalogMatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no foods recognized, please rephrase"})
	case errors.Is(err, domain.ErrGenerationSchema):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not understand the meal description, please rephrase"})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again shortly"})
	case errors.Is(err, domain.ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meal parsing is temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// createMealItem is one food line of a meal-creation request. Nutrition is
// not accepted from the client; it is recomputed from the catalog.
type createMealItem struct {
	FoodID   string  `json:"foodId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit" binding:"required"`
}

type createMealRequest struct {
	UserID     string           `json:"userId" binding:"required"`
	Name       string           `json:"name"`
	MealType   string           `json:"mealType"`
	ParsedText string           `json:"parsedText"`
	Timestamp  time.Time        `json:"timestamp"`
	Items      []createMealItem `json:"items" binding:"required,min=1"`
}

// CreateMeal persists a meal. Item nutrition and meal totals are recomputed
// server-side from the catalog so clients cannot log arbitrary figures.
func (h *Handler) CreateMeal(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meal logging is not configured"})
		return
	}

	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and at least one item are required"})
		return
	}

	mealType := domain.MealType(req.MealType)
	if req.MealType != "" && !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mealType"})
		return
	}

	var matched []domain.MatchedFood
	for _, item := range req.Items {
		unit := domain.Unit(item.Unit)
		if !unit.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit: " + item.Unit})
			return
		}
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}

		food, err := h.catalog.GetByID(c.Request.Context(), item.FoodID)
		if err != nil {
			if errors.Is(err, domain.ErrFoodNotFound) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown food: " + item.FoodID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		matched = append(matched, domain.MatchedFood{
			Mention: domain.FoodMention{Name: food.NameHe, Quantity: item.Quantity, Unit: unit},
			Food:    food,
		})
	}

	nutrition := usecase.ComputeNutrition(matched)

	meal := &domain.Meal{
		UserID:     req.UserID,
		Name:       req.Name,
		MealType:   mealType,
		ParsedText: req.ParsedText,
		Timestamp:  req.Timestamp,
		Totals:     nutrition.Totals,
	}
	for i, item := range nutrition.Items {
		meal.Items = append(meal.Items, domain.MealItem{
			FoodID:   item.FoodID,
			Quantity: req.Items[i].Quantity,
			Unit:     domain.Unit(req.Items[i].Unit),
			Calories: item.Calories,
			Protein:  item.Protein,
			Carbs:    item.Carbs,
			Fat:      item.Fat,
		})
	}

	if err := h.meals.Save(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// ListMeals returns the user's meals for one calendar day.
// Query params: userId (required), date (YYYY-MM-DD, defaults to today).
func (h *Handler) ListMeals(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meal logging is not configured"})
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	day, ok := parseDateParam(c)
	if !ok {
		return
	}

	meals, err := h.meals.ListByUserAndDay(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	if meals == nil {
		meals = []domain.Meal{}
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// SearchFoods searches the catalog by keywords extracted from the query.
// Query params: q (required), limit (optional).
func (h *Handler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := usecase.DefaultCatalogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	keywords := usecase.ExtractKeywords(query)
	if len(keywords) == 0 {
		c.JSON(http.StatusOK, gin.H{"foods": []domain.Food{}})
		return
	}

	foods, err := h.catalog.SearchByKeywords(c.Request.Context(), keywords, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search foods"})
		return
	}
	if foods == nil {
		foods = []domain.Food{}
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// DailyStats returns one day's totals and goal progress for a user.
// Query params: userId (required), date (YYYY-MM-DD, defaults to today).
func (h *Handler) DailyStats(c *gin.Context) {
	if h.meals == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meal logging is not configured"})
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	day, ok := parseDateParam(c)
	if !ok {
		return
	}

	totals, count, err := h.meals.DailyTotals(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	goals := domain.DefaultGoals
	stats := domain.DailyStats{
		Date:      day.UTC().Format("2006-01-02"),
		MealCount: count,
		Totals:    totals,
		Goals:     goals,
		Progress: domain.GoalProgress{
			Calories: progressPercent(totals.Calories, goals.Calories),
			Protein:  progressPercent(totals.Protein, goals.Protein),
			Carbs:    progressPercent(totals.Carbs, goals.Carbs),
			Fat:      progressPercent(totals.Fat, goals.Fat),
			Fiber:    progressPercent(totals.Fiber, goals.Fiber),
		},
	}

	c.JSON(http.StatusOK, stats)
}

// progressPercent is percent-of-goal, capped at 100.
func progressPercent(value, goal float64) int {
	if goal <= 0 {
		return 0
	}
	percent := int(value / goal * 100)
	if percent > 100 {
		percent = 100
	}
	return percent
}

// parseDateParam reads the optional date query param (YYYY-MM-DD).
// Writes a 400 response and returns false on a malformed value.
func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
