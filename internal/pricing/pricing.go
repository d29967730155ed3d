// Package pricing converts between cost and sell price: cost-plus suggestion
// from a target margin, and margin recovery from an existing price.
package pricing

import (
	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

// SuggestPrice derives a sell price from total cost (cost-plus mode).
//
//	priceHT  = cost / (1 - targetMargin/100)
//	priceTTC = priceHT * (1 + vatRate/100)
//	profit   = priceHT - cost
//
// targetMargin must be < 100; at or above it the division blows up or the
// price turns negative, so the request is rejected outright.
func SuggestPrice(totalCost, targetMargin, vatRate float64) (models.PricingResult, error) {
	if targetMargin >= 100 {
		return models.PricingResult{}, apperrors.InvalidMargin("pricing.SuggestPrice", targetMargin)
	}

	priceHT := totalCost / (1 - targetMargin/100)
	return models.PricingResult{
		PriceHT:  priceHT,
		PriceTTC: priceHT * (1 + vatRate/100),
		Margin:   targetMargin,
		Profit:   priceHT - totalCost,
	}, nil
}

// MarginFromPrice recovers the margin percentage of an existing sell price
// (margin-from-price mode). Total: a non-positive price yields 0 rather than
// a division error.
func MarginFromPrice(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price * 100
}
