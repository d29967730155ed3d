package models

import "time"

// CostBreakdown is the output of recipe costing. Complete is false whenever
// at least one ingredient line could not be resolved; totals are then valid
// but possibly understated, and callers must check the flag before treating
// them as authoritative.
type CostBreakdown struct {
	IngredientCost        float64          `json:"ingredientCost"`
	LaborCost             float64          `json:"laborCost"`
	OverheadCost          float64          `json:"overheadCost"`
	CostPerPortion        float64          `json:"costPerPortion"`
	TotalCostWithOverhead float64          `json:"totalCostWithOverhead"`
	Complete              bool             `json:"complete"`
	Unresolved            []UnresolvedLine `json:"unresolved,omitempty"`
}

// UnresolvedLine is a structured diagnostic for a line that was skipped or
// priced by fallback. Returned to the caller instead of printed.
type UnresolvedLine struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// PricingResult is the output of the cost-plus calculator.
type PricingResult struct {
	PriceHT  float64 `json:"priceHT"`
	PriceTTC float64 `json:"priceTTC"`
	Margin   float64 `json:"margin"` // percent
	Profit   float64 `json:"profit"`
}

// Classification is the four-way profitability label. Derived, never stored.
type Classification string

const (
	ClassRemove   Classification = "remove"
	ClassOptimize Classification = "optimize"
	ClassGood     Classification = "good"
	ClassStar     Classification = "star"
)

// BenchmarkReference is one market reference record, keyed by
// (zone, cuisine type, price range). Owned by the reference-data collaborator.
type BenchmarkReference struct {
	Zone        string  `json:"zone" yaml:"zone"`
	CuisineType string  `json:"cuisineType" yaml:"cuisineType"`
	PriceRange  string  `json:"priceRange" yaml:"priceRange"`
	AvgPrice    float64 `json:"avgPrice" yaml:"avgPrice"`
	AvgMargin   float64 `json:"avgMargin" yaml:"avgMargin"`
	SampleSize  int     `json:"sampleSize" yaml:"sampleSize"`
}

// BenchmarkResult carries the relative deltas against a found reference plus
// the first matching recommendation rule.
type BenchmarkResult struct {
	Reference           BenchmarkReference `json:"reference"`
	PriceComparisonPct  float64            `json:"priceComparisonPct"`
	MarginComparisonPts float64            `json:"marginComparisonPts"`
	Recommendation      BenchmarkAdvice    `json:"recommendation"`
}

// BenchmarkAdvice is the human-readable outcome of the benchmark rules.
// Type is one of: price-increase, price-decrease, margin-improve, optimal.
type BenchmarkAdvice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Priority levels shared by recommendations and alerts.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one restaurant-level advisory, aggregated over recipes.
type Recommendation struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
	Priority string   `json:"priority"`
	Recipes  []string `json:"recipes,omitempty"`
}

// Alert is a time-sensitive advisory. Dismissal state belongs to the caller;
// regenerating alerts from the same inputs reproduces the same set.
type Alert struct {
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Action   string   `json:"action,omitempty"`
	Recipes  []string `json:"recipes,omitempty"`
}

// RecipeResult is the per-recipe summary consumed by the advisor.
type RecipeResult struct {
	Name           string         `json:"name"`
	CostPerPortion float64        `json:"costPerPortion"`
	Margin         float64        `json:"margin"`
	Popularity     float64        `json:"popularity"`
	Classification Classification `json:"classification"`
}

// RecipeReport is the full per-recipe analysis produced by the pipeline.
type RecipeReport struct {
	ReportID       string         `json:"reportId"`
	RecipeID       int64          `json:"recipeId"`
	Name           string         `json:"name"`
	Cost           CostBreakdown  `json:"cost"`
	Pricing        *PricingResult `json:"pricing,omitempty"`
	Margin         float64        `json:"margin"`
	Popularity     float64        `json:"popularity"`
	Classification Classification `json:"classification"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// MenuReport aggregates per-recipe reports with restaurant-level advisories.
type MenuReport struct {
	ReportID        string           `json:"reportId"`
	Reports         []RecipeReport   `json:"reports"`
	Recommendations []Recommendation `json:"recommendations"`
	Alerts          []Alert          `json:"alerts"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}
