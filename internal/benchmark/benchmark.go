// Package benchmark compares a dish's price and margin against market
// reference data keyed by (zone, cuisine type, price range). Lookup either
// finds a reference or fails with the engine's single business error; there
// is no third state and no retry, absence is deterministic.
package benchmark

import (
	"fmt"

	"menu-profit-engine/internal/constants"
	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/rules"
	apperrors "menu-profit-engine/pkg/errors"
)

// Store is the reference-data collaborator. Find returns false on a miss;
// it must never invent records.
type Store interface {
	Find(zone, cuisineType, priceRange string) (models.BenchmarkReference, bool)
}

// Comparator evaluates prices against a Store. Stateless, safe for
// concurrent use.
type Comparator struct {
	store Store
}

func NewComparator(store Store) *Comparator { return &Comparator{store: store} }

// deltas feeds the advice rule table.
type deltas struct {
	pricePct  float64
	marginPts float64
	ref       models.BenchmarkReference
	price     float64
}

var adviceTable = rules.NewTable("optimal", buildOptimal,
	rules.Rule[deltas, func(deltas) models.BenchmarkAdvice]{
		Name: "price-increase",
		When: func(d deltas) bool { return d.pricePct < constants.BenchmarkUnderpricedPct },
		Then: buildPriceIncrease,
	},
	rules.Rule[deltas, func(deltas) models.BenchmarkAdvice]{
		Name: "price-decrease",
		When: func(d deltas) bool { return d.pricePct > constants.BenchmarkOverpricedPct },
		Then: buildPriceDecrease,
	},
	rules.Rule[deltas, func(deltas) models.BenchmarkAdvice]{
		Name: "margin-improve",
		When: func(d deltas) bool { return d.marginPts < constants.BenchmarkMarginGapPts },
		Then: buildMarginImprove,
	},
)

// Compare looks up the reference for the exact triple and computes relative
// deltas plus the first matching recommendation. Identical inputs always
// yield identical output.
func (c *Comparator) Compare(price, margin float64, zone, cuisineType, priceRange string) (*models.BenchmarkResult, error) {
	ref, ok := c.store.Find(zone, cuisineType, priceRange)
	if !ok {
		return nil, apperrors.BenchmarkUnavailable("benchmark.Compare", zone, cuisineType, priceRange)
	}

	d := deltas{
		pricePct:  (price - ref.AvgPrice) / ref.AvgPrice * 100,
		marginPts: margin - ref.AvgMargin,
		ref:       ref,
		price:     price,
	}
	build, _ := adviceTable.Evaluate(d)

	return &models.BenchmarkResult{
		Reference:           ref,
		PriceComparisonPct:  d.pricePct,
		MarginComparisonPts: d.marginPts,
		Recommendation:      build(d),
	}, nil
}

func buildPriceIncrease(d deltas) models.BenchmarkAdvice {
	headroom := d.ref.AvgPrice - d.price
	return models.BenchmarkAdvice{
		Type:    "price-increase",
		Message: fmt.Sprintf("Price is %.1f%% below the market average of %.2f", -d.pricePct, d.ref.AvgPrice),
		Action:  "Raise the price toward the market average",
		Impact:  fmt.Sprintf("Up to +%.2f per sale without leaving the market range", headroom),
	}
}

func buildPriceDecrease(d deltas) models.BenchmarkAdvice {
	return models.BenchmarkAdvice{
		Type:    "price-decrease",
		Message: fmt.Sprintf("Price is %.1f%% above the market average of %.2f", d.pricePct, d.ref.AvgPrice),
		Action:  "Consider lowering the price or justifying the premium",
		Impact:  fmt.Sprintf("A price near %.2f would match %d sampled competitors", d.ref.AvgPrice, d.ref.SampleSize),
	}
}

func buildMarginImprove(d deltas) models.BenchmarkAdvice {
	return models.BenchmarkAdvice{
		Type:    "margin-improve",
		Message: fmt.Sprintf("Margin is %.1f points below the market average of %.1f%%", -d.marginPts, d.ref.AvgMargin),
		Action:  "Cut ingredient or labor cost to close the margin gap",
		Impact:  fmt.Sprintf("Closing the gap recovers %.1f margin points", -d.marginPts),
	}
}

func buildOptimal(d deltas) models.BenchmarkAdvice {
	return models.BenchmarkAdvice{
		Type:    "optimal",
		Message: fmt.Sprintf("Price and margin are aligned with the market (%+.1f%% price, %+.1f pts margin)", d.pricePct, d.marginPts),
		Action:  "No change needed",
		Impact:  "Position maintained",
	}
}
