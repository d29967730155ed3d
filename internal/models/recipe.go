package models

// Recipe is the caller-supplied input to the engine. Nothing here is mutated
// or persisted by the engine; analysis is computed per request and discarded.
type Recipe struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Portions    int              `json:"portions"`
	Price       *float64         `json:"price,omitempty"` // existing menu price, if any
	Ingredients []IngredientLine `json:"ingredientLines"`

	// Prep metadata travels with the recipe for the host UI but is not used
	// by any engine computation.
	PrepMinutes *int    `json:"prepMinutes,omitempty"`
	PrepNotes   *string `json:"prepNotes,omitempty"`
}

// Ingredient is one catalog entry: name, category and reference price per
// canonical unit. Owned by the external catalog; read-only here.
type Ingredient struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"` // canonical unit: kg, L, piece, ...
	PricePerUnit float64 `json:"pricePerUnit"`
}

// Catalog resolves ingredient IDs to catalog entries. Implemented by the
// pricebook for the static table and by the persistence layer for live data.
type Catalog interface {
	Ingredient(id int64) (Ingredient, bool)
}

// Settings holds the restaurant's cost and pricing parameters.
type Settings struct {
	LaborCostPercentage float64 `json:"laborCostPercentage"` // 0-100
	VATRate             float64 `json:"vatRate"`             // 0-100
	TargetMargin        float64 `json:"targetMargin"`        // 0-<100
	OverheadCosts       float64 `json:"overheadCosts"`       // per period, >= 0
}

// RestaurantProfile locates a restaurant in the benchmark reference space.
type RestaurantProfile struct {
	Zone        string  `json:"zone"`
	CuisineType string  `json:"cuisineType"`
	PriceRange  string  `json:"priceRange"`
	ServiceType *string `json:"serviceType,omitempty"`
}
