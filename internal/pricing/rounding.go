package pricing

import "github.com/dedesp/PancongKeceApp-sub000/internal/model"

// RoundingResult carries the rounded amount and the signed delta
// (RoundedAmount - original amount).
type RoundingResult struct {
	OriginalAmount int64 `json:"original_amount"`
	RoundedAmount  int64 `json:"rounded_amount"`
	RoundingAmount int64 `json:"rounding_amount"`
	Applied        bool  `json:"rounding_applied"`
}

// ApplyRounding rounds an amount per the cash rounding policy. A nil or
// inactive setting is the identity. Ties in "nearest" mode round up.
func ApplyRounding(amount int64, setting *model.RoundingSetting) RoundingResult {
	result := RoundingResult{OriginalAmount: amount, RoundedAmount: amount}
	if setting == nil || !setting.IsActive || setting.RoundingIncrement <= 0 {
		return result
	}

	increment := setting.RoundingIncrement
	remainder := amount % increment
	if remainder == 0 {
		result.Applied = true
		return result
	}

	switch setting.RoundingMethod {
	case model.RoundUp:
		result.RoundedAmount = amount + (increment - remainder)
	case model.RoundDown:
		result.RoundedAmount = amount - remainder
	default: // nearest
		if remainder*2 >= increment {
			result.RoundedAmount = amount + (increment - remainder)
		} else {
			result.RoundedAmount = amount - remainder
		}
	}

	result.RoundingAmount = result.RoundedAmount - amount
	result.Applied = true
	return result
}
