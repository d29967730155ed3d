package benchmark

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

func testComparator(t *testing.T) *Comparator {
	t.Helper()
	store := NewStaticStore([]models.BenchmarkReference{
		{Zone: "paris", CuisineType: "french", PriceRange: "mid", AvgPrice: 20.00, AvgMargin: 60.0, SampleSize: 100},
	})
	return NewComparator(store)
}

func TestCompare_PriceIncreaseAdvice(t *testing.T) {
	c := testComparator(t)
	// 16.00 against avg 20.00 => -20% price comparison.
	res, err := c.Compare(16.00, 62, "paris", "french", "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.PriceComparisonPct-(-20)) > 1e-9 {
		t.Fatalf("expected -20%%, got %v", res.PriceComparisonPct)
	}
	if res.Recommendation.Type != "price-increase" {
		t.Fatalf("expected price-increase, got %s", res.Recommendation.Type)
	}
}

func TestCompare_PriceDecreaseAdvice(t *testing.T) {
	c := testComparator(t)
	res, err := c.Compare(25.00, 62, "paris", "french", "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recommendation.Type != "price-decrease" {
		t.Fatalf("expected price-decrease, got %s", res.Recommendation.Type)
	}
}

func TestCompare_MarginImproveAdvice(t *testing.T) {
	c := testComparator(t)
	// Price within band, margin 45 vs avg 60 => -15 points.
	res, err := c.Compare(20.00, 45, "paris", "french", "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.MarginComparisonPts-(-15)) > 1e-9 {
		t.Fatalf("expected -15 points, got %v", res.MarginComparisonPts)
	}
	if res.Recommendation.Type != "margin-improve" {
		t.Fatalf("expected margin-improve, got %s", res.Recommendation.Type)
	}
}

func TestCompare_Optimal(t *testing.T) {
	c := testComparator(t)
	res, err := c.Compare(20.00, 61, "paris", "french", "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recommendation.Type != "optimal" {
		t.Fatalf("expected optimal, got %s", res.Recommendation.Type)
	}
}

func TestCompare_UnknownSegmentUnavailable(t *testing.T) {
	c := testComparator(t)
	_, err := c.Compare(20.00, 60, "tokyo", "french", "mid")
	if !errors.Is(err, apperrors.ErrBenchmarkUnavailable) {
		t.Fatalf("expected ErrBenchmarkUnavailable, got %v", err)
	}
}

func TestCompare_Deterministic(t *testing.T) {
	c := testComparator(t)
	first, err := c.Compare(17.30, 52.5, "paris", "french", "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Compare(17.30, 52.5, "paris", "french", "mid")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("non-deterministic result: %+v vs %+v", first, again)
		}
	}
}

func TestStaticStore_KeyFolding(t *testing.T) {
	store := NewStaticStore([]models.BenchmarkReference{
		{Zone: "Paris", CuisineType: "French", PriceRange: "Mid", AvgPrice: 20, AvgMargin: 60, SampleSize: 1},
	})
	if _, ok := store.Find(" paris ", "FRENCH", "mid"); !ok {
		t.Fatal("expected folded key to match")
	}
}

func TestLoadStaticStore_Embedded(t *testing.T) {
	store, err := LoadStaticStore()
	if err != nil {
		t.Fatalf("loading embedded references: %v", err)
	}
	if _, ok := store.Find("paris", "french", "mid"); !ok {
		t.Fatal("expected embedded paris/french/mid reference")
	}
}
