package costing

import (
	"errors"
	"math"
	"testing"

	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/pricebook"
	apperrors "menu-profit-engine/pkg/errors"
)

func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	book, err := pricebook.Load()
	if err != nil {
		t.Fatalf("loading pricebook: %v", err)
	}
	return New(book, nil)
}

func f(v float64) *float64 { return &v }
func id(v int64) *int64    { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCost_InvalidPortions(t *testing.T) {
	a := newAggregator(t)
	_, err := a.Cost(models.Recipe{Portions: 0}, models.Settings{}, nil)
	if !errors.Is(err, apperrors.ErrInvalidPortions) {
		t.Fatalf("expected ErrInvalidPortions, got %v", err)
	}
}

func TestCost_AllThreeLineShapes(t *testing.T) {
	a := newAggregator(t)
	recipe := models.Recipe{
		Portions: 1,
		Ingredients: []models.IngredientLine{
			{IngredientID: id(16), Quantity: f(500), Unit: "g"}, // Poulet 0.5kg * 8.90
			{IngredientRef: &models.IngredientRef{ID: 24, Name: "Beurre", Unit: "g"}, RelationQuantity: f(250)}, // 0.25kg * 8.20
			{Name: "Lait", Quantity: f(500), Unit: "mL"}, // 0.5L * 1.10
		},
	}
	bd, err := a.Cost(recipe, models.Settings{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bd.Complete {
		t.Fatalf("expected complete breakdown, diagnostics: %+v", bd.Unresolved)
	}
	want := 0.5*8.90 + 0.25*8.20 + 0.5*1.10
	if !approx(bd.IngredientCost, want) {
		t.Fatalf("expected ingredient cost %v, got %v", want, bd.IngredientCost)
	}
}

func TestCost_UnknownShapeDegrades(t *testing.T) {
	a := newAggregator(t)
	recipe := models.Recipe{
		Portions: 1,
		Ingredients: []models.IngredientLine{
			{Name: "Riz", Quantity: f(1), Unit: "kg"},
			{IngredientID: id(16)}, // id without quantity: no shape
		},
	}
	bd, err := a.Cost(recipe, models.Settings{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.Complete {
		t.Fatal("expected Complete=false for unresolvable line")
	}
	if len(bd.Unresolved) != 1 || bd.Unresolved[0].Index != 1 {
		t.Fatalf("expected one diagnostic for line 1, got %+v", bd.Unresolved)
	}
	if !approx(bd.IngredientCost, 2.30) {
		t.Fatalf("resolved lines must still be costed, got %v", bd.IngredientCost)
	}
}

func TestCost_UnmatchedNameFallsBackToDefault(t *testing.T) {
	a := newAggregator(t)
	recipe := models.Recipe{
		Portions: 1,
		Ingredients: []models.IngredientLine{
			{Name: "fleur de sureau sauvage", Quantity: f(1), Unit: "kg"},
		},
	}
	bd, err := a.Cost(recipe, models.Settings{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.Complete {
		t.Fatal("default-priced line must degrade Complete")
	}
	if bd.IngredientCost <= 0 {
		t.Fatalf("fallback pricing must still produce a positive cost, got %v", bd.IngredientCost)
	}
}

func TestCost_OverridesBeatReferenceTable(t *testing.T) {
	a := newAggregator(t)
	recipe := models.Recipe{
		Portions: 1,
		Ingredients: []models.IngredientLine{
			{IngredientID: id(16), Quantity: f(1), Unit: "kg"},
		},
	}
	bd, err := a.Cost(recipe, models.Settings{}, Overrides{16: 12.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(bd.IngredientCost, 12.00) {
		t.Fatalf("expected override price 12.00, got %v", bd.IngredientCost)
	}
	if !bd.Complete {
		t.Fatal("override-priced line is fully resolved")
	}
}

func TestCost_LaborAndOverheadAllocation(t *testing.T) {
	a := newAggregator(t)
	recipe := models.Recipe{
		Portions: 2,
		Ingredients: []models.IngredientLine{
			{IngredientID: id(16), Quantity: f(500), Unit: "g"},  // 4.45
			{IngredientID: id(24), Quantity: f(250), Unit: "g"},  // 2.05
		},
	}
	settings := models.Settings{LaborCostPercentage: 30, OverheadCosts: 1.0}
	bd, err := a.Cost(recipe, settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(bd.CostPerPortion, 3.25) {
		t.Fatalf("expected cost/portion 3.25, got %v", bd.CostPerPortion)
	}
	if !approx(bd.LaborCost, 0.975) {
		t.Fatalf("expected labor 0.975, got %v", bd.LaborCost)
	}
	if !approx(bd.OverheadCost, 0.5) {
		t.Fatalf("expected overhead 0.5, got %v", bd.OverheadCost)
	}
	if !approx(bd.TotalCostWithOverhead, 4.725) {
		t.Fatalf("expected total 4.725, got %v", bd.TotalCostWithOverhead)
	}
}

func TestCost_MonotonicInQuantity(t *testing.T) {
	a := newAggregator(t)
	base := func(q float64) float64 {
		recipe := models.Recipe{
			Portions: 1,
			Ingredients: []models.IngredientLine{
				{Name: "Saumon", Quantity: f(q), Unit: "g"},
				{Name: "Riz", Quantity: f(200), Unit: "g"},
			},
		}
		bd, err := a.Cost(recipe, models.Settings{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return bd.TotalCostWithOverhead
	}
	prev := base(0)
	for _, q := range []float64{50, 100, 400, 1000} {
		cur := base(q)
		if cur < prev {
			t.Fatalf("cost decreased when quantity grew: %v -> %v at q=%v", prev, cur, q)
		}
		prev = cur
	}
}
