// Package classify maps (margin, popularity) to one of four profitability
// labels through a fixed, ordered rule table. The order is load-bearing: a
// dish below the removal margin is "remove" no matter how popular it is.
package classify

import (
	"menu-profit-engine/internal/constants"
	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/rules"
)

// Input is one classification request. Both values are percentages; inputs
// outside 0-100 are classified like any other number, no clamping.
type Input struct {
	Margin     float64
	Popularity float64
}

var table = rules.NewTable("good", models.ClassGood,
	rules.Rule[Input, models.Classification]{
		Name: "low-margin",
		When: func(in Input) bool { return in.Margin < constants.ClassifyRemoveMargin },
		Then: models.ClassRemove,
	},
	rules.Rule[Input, models.Classification]{
		Name: "weak-margin-or-unpopular",
		When: func(in Input) bool {
			return in.Margin < constants.ClassifyOptimizeMargin || in.Popularity < constants.ClassifyOptimizePopular
		},
		Then: models.ClassOptimize,
	},
	rules.Rule[Input, models.Classification]{
		Name: "high-margin-and-popular",
		When: func(in Input) bool {
			return in.Margin > constants.ClassifyStarMargin && in.Popularity > constants.ClassifyStarPopular
		},
		Then: models.ClassStar,
	},
)

// Classify returns the profitability label for a margin/popularity pair.
// Total single-valued function; first matching rule wins.
func Classify(margin, popularity float64) models.Classification {
	c, _ := table.Evaluate(Input{Margin: margin, Popularity: popularity})
	return c
}

// ClassifyTraced additionally names the rule that fired, for audit surfaces.
func ClassifyTraced(margin, popularity float64) (models.Classification, string) {
	return table.Evaluate(Input{Margin: margin, Popularity: popularity})
}

// RuleOrder exposes the evaluation order for inspection.
func RuleOrder() []string { return table.Names() }
