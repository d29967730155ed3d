// Package advisor aggregates per-recipe analysis into restaurant-level
// recommendations and time-sensitive alerts. Pure output: re-running the
// generator over the same inputs reproduces the same ordered set, and
// dismissal state stays with the caller.
package advisor

import (
	"fmt"
	"strings"
	"time"

	"menu-profit-engine/internal/constants"
	"menu-profit-engine/internal/models"
)

// group is one advisory bucket: a membership predicate plus the template
// that turns its members into a recommendation. Buckets are evaluated in
// declaration order so output ordering is stable.
type group struct {
	name   string
	member func(models.RecipeResult) bool
	build  func(members []models.RecipeResult, names []string) models.Recommendation
}

var groups = []group{
	{
		name:   "low-margin",
		member: func(r models.RecipeResult) bool { return r.Margin < constants.AdvisorLowMarginPct },
		build: func(members []models.RecipeResult, names []string) models.Recommendation {
			gap := 0.0
			for _, m := range members {
				gap += constants.AdvisorLowMarginPct - m.Margin
			}
			return models.Recommendation{
				Type:     "low-margin",
				Title:    "Margins below target",
				Message:  fmt.Sprintf("%d dish(es) earn less than %.0f%% margin: %s", len(members), constants.AdvisorLowMarginPct, strings.Join(names, ", ")),
				Action:   "Reprice or re-cost these dishes",
				Impact:   fmt.Sprintf("Closing the gap recovers %.1f margin points across the menu", gap),
				Priority: models.PriorityHigh,
				Recipes:  names,
			}
		},
	},
	{
		name:   "high-cost",
		member: func(r models.RecipeResult) bool { return r.CostPerPortion > constants.AdvisorHighCostPerUnit },
		build: func(members []models.RecipeResult, names []string) models.Recommendation {
			excess := 0.0
			for _, m := range members {
				excess += m.CostPerPortion - constants.AdvisorHighCostPerUnit
			}
			return models.Recommendation{
				Type:     "high-cost",
				Title:    "Expensive plates",
				Message:  fmt.Sprintf("%d dish(es) cost more than %.2f per portion: %s", len(members), constants.AdvisorHighCostPerUnit, strings.Join(names, ", ")),
				Action:   "Negotiate supplier prices or adjust portions",
				Impact:   fmt.Sprintf("%.2f per service recoverable at the %.2f cost ceiling", excess, constants.AdvisorHighCostPerUnit),
				Priority: models.PriorityMedium,
				Recipes:  names,
			}
		},
	},
	{
		name:   "unpopular",
		member: func(r models.RecipeResult) bool { return r.Popularity < constants.AdvisorUnpopularPct },
		build: func(members []models.RecipeResult, names []string) models.Recommendation {
			return models.Recommendation{
				Type:     "unpopular",
				Title:    "Low-demand dishes",
				Message:  fmt.Sprintf("%d dish(es) score under %.0f%% popularity: %s", len(members), constants.AdvisorUnpopularPct, strings.Join(names, ", ")),
				Action:   "Promote, rework or rotate these dishes off the menu",
				Priority: models.PriorityMedium,
				Impact:   fmt.Sprintf("%d menu slot(s) freed for better performers", len(members)),
				Recipes:  names,
			}
		},
	},
	{
		name:   "star",
		member: func(r models.RecipeResult) bool { return r.Classification == models.ClassStar },
		build: func(members []models.RecipeResult, names []string) models.Recommendation {
			return models.Recommendation{
				Type:     "star",
				Title:    "Star dishes",
				Message:  fmt.Sprintf("%d dish(es) combine high margin and high demand: %s", len(members), strings.Join(names, ", ")),
				Action:   "Feature these dishes prominently and protect their costing",
				Impact:   "Visibility on proven performers lifts average ticket",
				Priority: models.PriorityLow,
				Recipes:  names,
			}
		},
	},
}

// Recommendations partitions results into advisory groups and emits one
// recommendation per non-empty group, in fixed group order.
func Recommendations(results []models.RecipeResult) []models.Recommendation {
	var out []models.Recommendation
	for _, g := range groups {
		var members []models.RecipeResult
		var names []string
		for _, r := range results {
			if g.member(r) {
				members = append(members, r)
				names = append(names, r.Name)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, g.build(members, names))
	}
	return out
}

// seasonal maps each month to produce worth featuring. Static by design;
// the suggestion only depends on the month passed in.
var seasonal = map[time.Month][]string{
	time.January:   {"endives", "poireaux", "agrumes"},
	time.February:  {"choux", "céleri", "topinambours"},
	time.March:     {"épinards", "radis", "asperges"},
	time.April:     {"asperges", "artichauts", "fraises"},
	time.May:       {"petits pois", "fraises", "rhubarbe"},
	time.June:      {"cerises", "courgettes", "tomates"},
	time.July:      {"tomates", "abricots", "aubergines"},
	time.August:    {"tomates", "melons", "poivrons"},
	time.September: {"figues", "raisins", "champignons"},
	time.October:   {"courges", "champignons", "poires"},
	time.November:  {"courges", "choux", "marrons"},
	time.December:  {"marrons", "coquillages", "agrumes"},
}

// Alerts derives time-sensitive advisories: the recipe groups re-expressed
// as alerts, a seasonal-ingredient suggestion for the given month, and a
// competitive-pricing alert when a restaurant profile is known. The month is
// an explicit parameter so the output stays deterministic under test.
func Alerts(results []models.RecipeResult, profile *models.RestaurantProfile, month time.Month) []models.Alert {
	var out []models.Alert

	for _, rec := range Recommendations(results) {
		out = append(out, models.Alert{
			Category: rec.Type,
			Severity: rec.Priority,
			Title:    rec.Title,
			Message:  rec.Message,
			Action:   rec.Action,
			Recipes:  rec.Recipes,
		})
	}

	if produce, ok := seasonal[month]; ok {
		out = append(out, models.Alert{
			Category: "seasonal",
			Severity: models.PriorityLow,
			Title:    fmt.Sprintf("Seasonal produce for %s", month),
			Message:  fmt.Sprintf("In season now: %s", strings.Join(produce, ", ")),
			Action:   "Build specials around in-season ingredients for better margins",
		})
	}

	if profile != nil && profile.Zone != "" && profile.CuisineType != "" {
		out = append(out, models.Alert{
			Category: "competitive-pricing",
			Severity: models.PriorityMedium,
			Title:    "Market check available",
			Message:  fmt.Sprintf("Benchmark data can position your menu against %s restaurants in %s", profile.CuisineType, profile.Zone),
			Action:   "Run a benchmark comparison on your top sellers",
		})
	}

	return out
}
