// Package costing turns a recipe's polymorphic ingredient lines into a cost
// breakdown: per-portion ingredient cost plus labor and overhead allocation.
// Partial data never aborts a computation; lines that cannot be resolved are
// skipped and reported as structured diagnostics on the breakdown.
package costing

import (
	"fmt"

	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/pricebook"
	"menu-profit-engine/internal/units"
	apperrors "menu-profit-engine/pkg/errors"
)

// Overrides is the live inventory cost lookup: ingredient ID to current unit
// cost. Takes precedence over the static reference table. Owned by the
// inventory collaborator and passed in fresh per call.
type Overrides map[int64]float64

// Aggregator prices recipes against a reference book and an ingredient
// catalog. Stateless after construction, safe for concurrent use.
type Aggregator struct {
	book    *pricebook.Book
	catalog models.Catalog
}

// New builds an aggregator. A nil catalog falls back to the book's own
// static catalog.
func New(book *pricebook.Book, catalog models.Catalog) *Aggregator {
	if catalog == nil {
		catalog = book
	}
	return &Aggregator{book: book, catalog: catalog}
}

// Cost computes the full cost breakdown for one recipe.
//
// The only hard error is invalid portions; every other data problem degrades
// the Complete flag. Labor is a percentage of the per-portion ingredient
// cost, overhead is the per-period overhead divided across portions.
func (a *Aggregator) Cost(recipe models.Recipe, settings models.Settings, overrides Overrides) (models.CostBreakdown, error) {
	if recipe.Portions < 1 {
		return models.CostBreakdown{}, apperrors.InvalidPortions("costing.Cost", recipe.Portions)
	}

	bd := models.CostBreakdown{Complete: true}

	for i, raw := range recipe.Ingredients {
		line, ok := raw.Normalize()
		if !ok {
			bd.Complete = false
			bd.Unresolved = append(bd.Unresolved, models.UnresolvedLine{
				Index:  i,
				Name:   raw.Name,
				Reason: fmt.Sprintf("unrecognized line shape (%s)", raw.Shape()),
			})
			continue
		}

		price, diag := a.resolvePrice(line, overrides)
		if diag != nil {
			diag.Index = i
			bd.Unresolved = append(bd.Unresolved, *diag)
			if price < 0 {
				// Not even a fallback price was possible; skip the line.
				bd.Complete = false
				continue
			}
			bd.Complete = false
		}

		qty, _ := units.Normalize(line.Quantity, a.lineUnit(line))
		bd.IngredientCost += qty * price
	}

	portions := float64(recipe.Portions)
	bd.CostPerPortion = bd.IngredientCost / portions
	bd.LaborCost = bd.CostPerPortion * settings.LaborCostPercentage / 100
	bd.OverheadCost = settings.OverheadCosts / portions
	bd.TotalCostWithOverhead = bd.CostPerPortion + bd.LaborCost + bd.OverheadCost
	return bd, nil
}

// resolvePrice applies the precedence order: live override by ID, then
// reference table by name, then the table's default price. A negative return
// price means the line is unpriceable (no ID match, no name to match on).
func (a *Aggregator) resolvePrice(line models.NormalizedLine, overrides Overrides) (float64, *models.UnresolvedLine) {
	if line.IngredientID != nil {
		if p, ok := overrides[*line.IngredientID]; ok && p > 0 {
			return p, nil
		}
	}

	name := line.Name
	if name == "" && line.IngredientID != nil {
		ing, ok := a.catalog.Ingredient(*line.IngredientID)
		if !ok {
			return -1, &models.UnresolvedLine{
				Reason: fmt.Sprintf("unknown ingredient id %d", *line.IngredientID),
			}
		}
		name = ing.Name
	}
	if name == "" {
		return -1, &models.UnresolvedLine{Reason: "no ingredient name"}
	}

	if e, ok := a.book.Resolve(name); ok {
		return e.Price, nil
	}
	return a.book.DefaultPrice(), &models.UnresolvedLine{
		Name:   name,
		Reason: "no price match, default unit price applied",
	}
}

// lineUnit prefers the line's own unit, falling back to the catalog's
// canonical unit for catalog-referenced lines.
func (a *Aggregator) lineUnit(line models.NormalizedLine) string {
	if line.Unit != "" {
		return line.Unit
	}
	if line.IngredientID != nil {
		if ing, ok := a.catalog.Ingredient(*line.IngredientID); ok {
			return ing.Unit
		}
	}
	return ""
}
