package pricing

import (
	"errors"
	"math"
	"testing"

	apperrors "menu-profit-engine/pkg/errors"
)

func TestSuggestPrice_CostPlus(t *testing.T) {
	// cost=4.00, margin=65, vat=20 => HT 11.43, TTC 13.71, profit 7.43
	res, err := SuggestPrice(4.00, 65, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.PriceHT-4.00/0.35) > 1e-9 {
		t.Fatalf("expected priceHT %.4f, got %.4f", 4.00/0.35, res.PriceHT)
	}
	if math.Abs(res.PriceTTC-res.PriceHT*1.20) > 1e-9 {
		t.Fatalf("expected priceTTC %.4f, got %.4f", res.PriceHT*1.20, res.PriceTTC)
	}
	if math.Abs(res.Profit-(res.PriceHT-4.00)) > 1e-9 {
		t.Fatalf("expected profit %.4f, got %.4f", res.PriceHT-4.00, res.Profit)
	}
	if math.Abs(res.PriceHT-11.43) > 0.01 || math.Abs(res.PriceTTC-13.71) > 0.01 || math.Abs(res.Profit-7.43) > 0.01 {
		t.Fatalf("rounded expectations off: %+v", res)
	}
}

func TestSuggestPrice_MarginAtHundredRejected(t *testing.T) {
	for _, m := range []float64{100, 120} {
		_, err := SuggestPrice(5, m, 20)
		if !errors.Is(err, apperrors.ErrInvalidMargin) {
			t.Fatalf("margin %v: expected ErrInvalidMargin, got %v", m, err)
		}
	}
}

func TestMarginFromPrice(t *testing.T) {
	if got := MarginFromPrice(10, 4); math.Abs(got-60) > 1e-9 {
		t.Fatalf("expected 60%%, got %v", got)
	}
	if got := MarginFromPrice(0, 4); got != 0 {
		t.Fatalf("expected 0 for non-positive price, got %v", got)
	}
}

func TestRoundTrip_CostPlusThenMarginFromPrice(t *testing.T) {
	for _, m := range []float64{0, 10, 42.5, 65, 99} {
		res, err := SuggestPrice(7.35, m, 10)
		if err != nil {
			t.Fatalf("margin %v: unexpected error: %v", m, err)
		}
		back := MarginFromPrice(res.PriceHT, 7.35)
		if math.Abs(back-m) > 1e-6 {
			t.Fatalf("round-trip drifted: in %v out %v", m, back)
		}
	}
}
