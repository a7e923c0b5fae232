package pricing

import (
	"testing"
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func baseDiscount(t model.DiscountType) *model.Discount {
	return &model.Discount{
		Code:      "TEST",
		Name:      "Test Discount",
		Type:      t,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 1),
		IsActive:  true,
	}
}

func TestCalculateDiscountPercentage(t *testing.T) {
	d := baseDiscount(model.DiscountPercentage)
	d.Value = 10
	d.MaxDiscountAmount = int64Ptr(25000)
	d.MinimumPurchase = 50000

	calc := CalculateDiscount(d, nil, 100000)
	if calc.DiscountAmount != 10000 {
		t.Fatalf("discount = %d, want 10000", calc.DiscountAmount)
	}
	if len(calc.Details) != 1 || calc.Details[0].Type != "percentage" {
		t.Fatalf("unexpected details: %+v", calc.Details)
	}
}

func TestCalculateDiscountPercentageCap(t *testing.T) {
	d := baseDiscount(model.DiscountPercentage)
	d.Value = 50
	d.MaxDiscountAmount = int64Ptr(25000)

	calc := CalculateDiscount(d, nil, 100000)
	if calc.DiscountAmount != 25000 {
		t.Fatalf("discount = %d, want capped 25000", calc.DiscountAmount)
	}
}

func TestCalculateDiscountFixedAmountNeverExceedsSubtotal(t *testing.T) {
	d := baseDiscount(model.DiscountFixedAmount)
	d.Value = 50000

	calc := CalculateDiscount(d, nil, 30000)
	if calc.DiscountAmount != 30000 {
		t.Fatalf("discount = %d, want clamped 30000", calc.DiscountAmount)
	}
}

func TestCalculateDiscountMinimumPurchase(t *testing.T) {
	d := baseDiscount(model.DiscountMinimumPurchase)
	d.Value = 10
	d.MinimumPurchase = 50000

	// Below the threshold: no discount at all.
	calc := CalculateDiscount(d, nil, 40000)
	if calc.DiscountAmount != 0 || len(calc.Details) != 0 {
		t.Fatalf("expected zero discount below threshold, got %+v", calc)
	}

	// At/above the threshold behaves like percentage.
	calc = CalculateDiscount(d, nil, 50000)
	if calc.DiscountAmount != 5000 {
		t.Fatalf("discount = %d, want 5000", calc.DiscountAmount)
	}
}

func TestCalculateDiscountBuyXGetY(t *testing.T) {
	d := baseDiscount(model.DiscountBuyXGetY)
	d.BuyQuantity = 2
	d.GetQuantity = 1
	d.ApplicableTo = model.ApplicableProduct
	d.ApplicableItems = model.StringList{"p1"}

	items := []CartItem{
		{ProductID: "p1", ProductName: "Pancong Original", Quantity: 5, UnitPrice: 10000},
		{ProductID: "p2", ProductName: "Kopi Susu", Quantity: 4, UnitPrice: 15000},
	}

	calc := CalculateDiscount(d, items, 110000)
	// floor(5/2)*1 = 2 free units of p1 only; p2 is not applicable.
	if calc.DiscountAmount != 20000 {
		t.Fatalf("discount = %d, want 20000", calc.DiscountAmount)
	}
	if len(calc.Details) != 1 || calc.Details[0].FreeQuantity != 2 {
		t.Fatalf("unexpected details: %+v", calc.Details)
	}
}

func TestCalculateDiscountBuyXGetYPerLineNoProration(t *testing.T) {
	d := baseDiscount(model.DiscountBuyXGetY)
	d.BuyQuantity = 3
	d.GetQuantity = 1

	// 2 + 2 across two lines would be one free set if pooled; per-line it is zero.
	items := []CartItem{
		{ProductID: "p1", ProductName: "A", Quantity: 2, UnitPrice: 5000},
		{ProductID: "p2", ProductName: "B", Quantity: 2, UnitPrice: 5000},
	}
	calc := CalculateDiscount(d, items, 20000)
	if calc.DiscountAmount != 0 {
		t.Fatalf("discount = %d, want 0 (no proration across lines)", calc.DiscountAmount)
	}
}

func TestCalculateDiscountUnknownTypeIsNoop(t *testing.T) {
	d := baseDiscount(model.DiscountType("loyalty_points"))
	d.Value = 10

	calc := CalculateDiscount(d, nil, 100000)
	if calc.DiscountAmount != 0 || len(calc.Details) != 0 {
		t.Fatalf("unknown type should be a silent no-op, got %+v", calc)
	}
}

func TestCalculateDiscountBounds(t *testing.T) {
	subtotals := []int64{0, 1, 999, 100000, 12345678}
	discounts := []*model.Discount{
		func() *model.Discount { d := baseDiscount(model.DiscountPercentage); d.Value = 100; return d }(),
		func() *model.Discount { d := baseDiscount(model.DiscountFixedAmount); d.Value = 1 << 40; return d }(),
		func() *model.Discount {
			d := baseDiscount(model.DiscountMinimumPurchase)
			d.Value = 100
			return d
		}(),
	}

	for _, sub := range subtotals {
		for _, d := range discounts {
			calc := CalculateDiscount(d, nil, sub)
			if calc.DiscountAmount < 0 || calc.DiscountAmount > sub {
				t.Fatalf("type %s subtotal %d: discount %d out of [0, subtotal]",
					d.Type, sub, calc.DiscountAmount)
			}
		}
	}
}
