package usda

// SearchResponse is the USDA FoodData Central search payload.
type SearchResponse struct {
	TotalHits int    `json:"totalHits"`
	Foods     []Food `json:"foods"`
}

// Food is one USDA food record. Nutrient values are per 100 grams.
type Food struct {
	FdcID       int        `json:"fdcId"`
	Description string     `json:"description"`
	DataType    string     `json:"dataType"`
	BrandOwner  string     `json:"brandOwner,omitempty"`
	Nutrients   []Nutrient `json:"foodNutrients"`
}

// Nutrient is one nutrient entry of a USDA food record.
type Nutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
	UnitName     string  `json:"unitName"`
}
