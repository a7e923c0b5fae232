package pricing

import (
	"testing"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
)

func activeRounding(method model.RoundingMethod, increment int64) *model.RoundingSetting {
	return &model.RoundingSetting{
		IsActive:          true,
		RoundingMethod:    method,
		RoundingIncrement: increment,
	}
}

func TestApplyRoundingNearest(t *testing.T) {
	tests := []struct {
		amount    int64
		increment int64
		want      int64
	}{
		{104895, 100, 104900}, // remainder 95 >= 50, rounds up
		{104845, 100, 104800}, // remainder 45 < 50, rounds down
		{104850, 100, 104900}, // tie rounds up
		{104900, 100, 104900}, // already on increment
		{12501, 500, 12500},
		{12750, 500, 13000},
	}
	for _, tt := range tests {
		got := ApplyRounding(tt.amount, activeRounding(model.RoundNearest, tt.increment))
		if got.RoundedAmount != tt.want {
			t.Errorf("nearest(%d, %d) = %d, want %d", tt.amount, tt.increment, got.RoundedAmount, tt.want)
		}
		if got.RoundingAmount != got.RoundedAmount-tt.amount {
			t.Errorf("delta mismatch for %d: %+v", tt.amount, got)
		}
	}
}

func TestApplyRoundingUpDown(t *testing.T) {
	up := ApplyRounding(104805, activeRounding(model.RoundUp, 100))
	if up.RoundedAmount != 104900 {
		t.Fatalf("up = %d, want 104900", up.RoundedAmount)
	}
	down := ApplyRounding(104895, activeRounding(model.RoundDown, 100))
	if down.RoundedAmount != 104800 {
		t.Fatalf("down = %d, want 104800", down.RoundedAmount)
	}
}

func TestApplyRoundingInactiveIsIdentity(t *testing.T) {
	for _, setting := range []*model.RoundingSetting{
		nil,
		{IsActive: false, RoundingMethod: model.RoundNearest, RoundingIncrement: 100},
	} {
		got := ApplyRounding(104895, setting)
		if got.RoundedAmount != 104895 || got.RoundingAmount != 0 || got.Applied {
			t.Fatalf("inactive setting must be identity, got %+v", got)
		}
	}
}

func TestApplyRoundingProperties(t *testing.T) {
	amounts := []int64{0, 1, 49, 50, 99, 100, 101, 12345, 104895, 999999}
	methods := []model.RoundingMethod{model.RoundUp, model.RoundDown, model.RoundNearest}

	for _, inc := range model.ValidRoundingIncrements {
		for _, m := range methods {
			setting := activeRounding(m, inc)
			for _, amount := range amounts {
				got := ApplyRounding(amount, setting)

				if got.RoundedAmount%inc != 0 {
					t.Fatalf("%s/%d: %d not on increment", m, inc, got.RoundedAmount)
				}
				if delta := got.RoundingAmount; delta >= inc || delta <= -inc {
					t.Fatalf("%s/%d: |delta| %d >= increment", m, inc, delta)
				}

				// Idempotence: rounding a rounded amount changes nothing.
				again := ApplyRounding(got.RoundedAmount, setting)
				if again.RoundedAmount != got.RoundedAmount {
					t.Fatalf("%s/%d: not idempotent (%d -> %d -> %d)",
						m, inc, amount, got.RoundedAmount, again.RoundedAmount)
				}
			}
		}
	}
}
