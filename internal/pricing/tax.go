package pricing

import "github.com/dedesp/PancongKeceApp-sub000/internal/model"

// TaxServiceResult splits the compounded charges into the tax and service
// buckets; FinalAmount is the running total after every charge.
type TaxServiceResult struct {
	TaxAmount     int64 `json:"tax_amount"`
	ServiceAmount int64 `json:"service_amount"`
	FinalAmount   int64 `json:"final_amount"`
}

// CalculateTaxAndService applies every active charge to the discounted
// subtotal by sequential compounding: charges flagged apply_before_service
// run first (in the given relative order), then the rest, and each charge is
// computed on the amount already inflated by earlier charges. This is how the
// cafe has always billed; a flat sum of independent percentages produces
// different totals.
func CalculateTaxAndService(settings []model.TaxSetting, discountedSubtotal int64) TaxServiceResult {
	result := TaxServiceResult{FinalAmount: discountedSubtotal}

	apply := func(s model.TaxSetting) {
		delta := percentOf(result.FinalAmount, s.Percentage)
		if s.SettingKey == model.ServiceChargeKey {
			result.ServiceAmount += delta
		} else {
			result.TaxAmount += delta
		}
		result.FinalAmount += delta
	}

	for _, s := range settings {
		if s.IsActive && s.ApplyBeforeService {
			apply(s)
		}
	}
	for _, s := range settings {
		if s.IsActive && !s.ApplyBeforeService {
			apply(s)
		}
	}
	return result
}
