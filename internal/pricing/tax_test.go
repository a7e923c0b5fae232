package pricing

import (
	"testing"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
)

func TestCalculateTaxAndServiceCompounding(t *testing.T) {
	settings := []model.TaxSetting{
		{SettingKey: "ppn", Percentage: 11, ApplyBeforeService: false, IsActive: true},
		{SettingKey: model.ServiceChargeKey, Percentage: 5, ApplyBeforeService: true, IsActive: true},
	}

	// 90.000 + 5% service = 94.500, then + 11% PPN on 94.500 = 104.895.
	result := CalculateTaxAndService(settings, 90000)
	if result.ServiceAmount != 4500 {
		t.Fatalf("service = %d, want 4500", result.ServiceAmount)
	}
	if result.TaxAmount != 10395 {
		t.Fatalf("tax = %d, want 10395", result.TaxAmount)
	}
	if result.FinalAmount != 104895 {
		t.Fatalf("final = %d, want 104895", result.FinalAmount)
	}
}

func TestCalculateTaxAndServiceSkipsInactive(t *testing.T) {
	settings := []model.TaxSetting{
		{SettingKey: "ppn", Percentage: 11, IsActive: false},
		{SettingKey: model.ServiceChargeKey, Percentage: 5, ApplyBeforeService: true, IsActive: true},
	}

	result := CalculateTaxAndService(settings, 100000)
	if result.TaxAmount != 0 {
		t.Fatalf("inactive tax applied: %d", result.TaxAmount)
	}
	if result.ServiceAmount != 5000 || result.FinalAmount != 105000 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCalculateTaxAndServiceEmpty(t *testing.T) {
	result := CalculateTaxAndService(nil, 75000)
	if result.FinalAmount != 75000 || result.TaxAmount != 0 || result.ServiceAmount != 0 {
		t.Fatalf("no settings should be identity, got %+v", result)
	}
}

func TestCalculateTaxAndServiceMonotonic(t *testing.T) {
	settings := []model.TaxSetting{
		{SettingKey: "ppn", Percentage: 11, IsActive: true},
		{SettingKey: "pb1", Percentage: 10, IsActive: true},
		{SettingKey: model.ServiceChargeKey, Percentage: 5, ApplyBeforeService: true, IsActive: true},
	}
	for _, amount := range []int64{0, 1, 999, 90000, 12345678} {
		result := CalculateTaxAndService(settings, amount)
		if result.FinalAmount < amount {
			t.Fatalf("final %d < discounted subtotal %d", result.FinalAmount, amount)
		}
		if result.FinalAmount != amount+result.TaxAmount+result.ServiceAmount {
			t.Fatalf("buckets do not reconcile: %+v (amount %d)", result, amount)
		}
	}
}
