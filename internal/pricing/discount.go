// Package pricing contains the pure checkout math: discount calculation,
// tax/service compounding and cash rounding. Nothing in this package touches
// persistence; invalid input degrades to a zero/identity result instead of
// returning an error, so the order service can layer the engines freely.
package pricing

import (
	"fmt"
	"math"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
)

// CartItem is one priced line of a cart, as seen by the engines.
// IDs are plain strings so previews can be computed before products are locked.
type CartItem struct {
	ProductID   string
	CategoryID  string
	ProductName string
	Quantity    int
	UnitPrice   int64
}

// DiscountCalculation is the result of applying one discount to a cart.
type DiscountCalculation struct {
	DiscountAmount int64                    `json:"discount_amount"`
	Details        model.DiscountDetailList `json:"discount_details"`
}

// CalculateDiscount computes the discount amount and itemized breakdown for
// the four supported kinds. Eligibility gating (active, validity window,
// usage limit, code-level minimum purchase) is the caller's job; this engine
// only does arithmetic. An unknown type yields zero discount and no details.
func CalculateDiscount(d *model.Discount, items []CartItem, subtotal int64) DiscountCalculation {
	var calc DiscountCalculation
	if d == nil || subtotal < 0 {
		return calc
	}

	switch d.Type {
	case model.DiscountPercentage:
		amount := percentOf(subtotal, float64(d.Value))
		amount = capAmount(amount, d.MaxDiscountAmount)
		calc.DiscountAmount = amount
		calc.Details = append(calc.Details, model.DiscountDetail{
			Type:        string(model.DiscountPercentage),
			Description: fmt.Sprintf("%s (%d%%)", d.Name, d.Value),
			Amount:      amount,
		})

	case model.DiscountFixedAmount:
		amount := d.Value
		if amount > subtotal {
			amount = subtotal
		}
		calc.DiscountAmount = amount
		calc.Details = append(calc.Details, model.DiscountDetail{
			Type:        string(model.DiscountFixedAmount),
			Description: d.Name,
			Amount:      amount,
		})

	case model.DiscountBuyXGetY:
		if d.BuyQuantity <= 0 || d.GetQuantity <= 0 {
			return calc
		}
		// Each line is computed independently; free units never pool
		// across different products.
		for _, item := range applicableItems(d, items) {
			sets := item.Quantity / d.BuyQuantity
			freeUnits := sets * d.GetQuantity
			if freeUnits == 0 {
				continue
			}
			freeAmount := int64(freeUnits) * item.UnitPrice
			calc.DiscountAmount += freeAmount
			calc.Details = append(calc.Details, model.DiscountDetail{
				Type:         string(model.DiscountBuyXGetY),
				Description:  fmt.Sprintf("%s - %s", d.Name, item.ProductName),
				Amount:       freeAmount,
				FreeQuantity: freeUnits,
			})
		}

	case model.DiscountMinimumPurchase:
		if subtotal < d.MinimumPurchase {
			return calc
		}
		amount := percentOf(subtotal, float64(d.Value))
		amount = capAmount(amount, d.MaxDiscountAmount)
		calc.DiscountAmount = amount
		calc.Details = append(calc.Details, model.DiscountDetail{
			Type:        string(model.DiscountMinimumPurchase),
			Description: fmt.Sprintf("%s (%d%%)", d.Name, d.Value),
			Amount:      amount,
		})
	}

	// Never discount past the subtotal, whatever the definition says.
	if calc.DiscountAmount > subtotal {
		calc.DiscountAmount = subtotal
	}
	return calc
}

func applicableItems(d *model.Discount, items []CartItem) []CartItem {
	if d.ApplicableTo == model.ApplicableAll || d.ApplicableTo == "" {
		return items
	}
	var matched []CartItem
	for _, item := range items {
		switch d.ApplicableTo {
		case model.ApplicableCategory:
			if d.ApplicableItems.Contains(item.CategoryID) {
				matched = append(matched, item)
			}
		case model.ApplicableProduct:
			if d.ApplicableItems.Contains(item.ProductID) {
				matched = append(matched, item)
			}
		}
	}
	return matched
}

func percentOf(amount int64, pct float64) int64 {
	return int64(math.Round(float64(amount) * pct / 100))
}

func capAmount(amount int64, max *int64) int64 {
	if max != nil && *max > 0 && amount > *max {
		return *max
	}
	return amount
}
