package model

// TaxSetting is one percentage-based charge applied at checkout.
// The well-known key "service_charge" accumulates into the service bucket,
// every other key accumulates into tax.
type TaxSetting struct {
	BaseModel
	SettingKey  string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"setting_key" validate:"required"`
	Name        string  `gorm:"type:varchar(100)" json:"name"`
	Percentage  float64 `gorm:"not null;default:0" json:"percentage" validate:"gte=0,lte=100"`
	Description string  `gorm:"type:text" json:"description"`

	// Charges flagged true compound before the after-service group.
	ApplyBeforeService bool `gorm:"default:false" json:"apply_before_service"`
	IsActive           bool `gorm:"default:true" json:"is_active"`
}

const ServiceChargeKey = "service_charge"

type RoundingMethod string

const (
	RoundUp      RoundingMethod = "up"
	RoundDown    RoundingMethod = "down"
	RoundNearest RoundingMethod = "nearest"
)

// ValidRoundingIncrements are the only accepted increments.
var ValidRoundingIncrements = []int64{1, 5, 10, 25, 50, 100, 500, 1000}

func IsValidRoundingIncrement(inc int64) bool {
	for _, v := range ValidRoundingIncrements {
		if v == inc {
			return true
		}
	}
	return false
}

// RoundingSetting is a singleton configuration row: the service keeps exactly
// one record and updates it in place.
type RoundingSetting struct {
	BaseModel
	IsActive          bool           `gorm:"default:false" json:"is_active"`
	RoundingMethod    RoundingMethod `gorm:"type:varchar(10);default:'nearest'" json:"rounding_method" validate:"omitempty,oneof=up down nearest"`
	RoundingIncrement int64          `gorm:"default:100" json:"rounding_increment"`
	ApplyTo           string         `gorm:"type:varchar(20);default:'final_total'" json:"apply_to"`
	Description       string         `gorm:"type:text" json:"description"`
}

// DefaultRoundingSetting is returned when no row exists yet.
func DefaultRoundingSetting() RoundingSetting {
	return RoundingSetting{
		IsActive:          false,
		RoundingMethod:    RoundNearest,
		RoundingIncrement: 100,
		ApplyTo:           "final_total",
	}
}
