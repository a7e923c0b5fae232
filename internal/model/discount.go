package model

import "time"

type DiscountType string

const (
	DiscountPercentage      DiscountType = "percentage"
	DiscountFixedAmount     DiscountType = "fixed_amount"
	DiscountBuyXGetY        DiscountType = "buy_x_get_y"
	DiscountMinimumPurchase DiscountType = "minimum_purchase"
)

type ApplicableTo string

const (
	ApplicableAll      ApplicableTo = "all"
	ApplicableCategory ApplicableTo = "category"
	ApplicableProduct  ApplicableTo = "product"
)

type Discount struct {
	BaseModel
	Code string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type DiscountType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=percentage fixed_amount buy_x_get_y minimum_purchase"`

	// percentage / minimum_purchase: percent value. fixed_amount: rupiah.
	Value             int64  `gorm:"not null;default:0" json:"value" validate:"gte=0"`
	MaxDiscountAmount *int64 `json:"max_discount_amount,omitempty"`
	MinimumPurchase   int64  `gorm:"not null;default:0" json:"minimum_purchase"`

	// buy_x_get_y
	BuyQuantity int `gorm:"default:0" json:"buy_quantity"`
	GetQuantity int `gorm:"default:0" json:"get_quantity"`

	ApplicableTo    ApplicableTo `gorm:"type:varchar(20);default:'all'" json:"applicable_to"`
	ApplicableItems StringList   `gorm:"type:text" json:"applicable_items"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date" validate:"required"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date" validate:"required"`

	UsageLimit *int `json:"usage_limit,omitempty"`
	UsageCount int  `gorm:"not null;default:0" json:"usage_count"`
	IsActive   bool `gorm:"default:true" json:"is_active"`
}

// IsWithinValidity reports whether the code is usable on the given date.
// Dates are inclusive on both ends, matching the SQL BETWEEN the old
// reporting queries used.
func (d *Discount) IsWithinValidity(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	return !day.Before(d.StartDate.Truncate(24*time.Hour)) &&
		!day.After(d.EndDate.Truncate(24*time.Hour))
}

// IsUsageExhausted reports whether the usage limit has been reached.
func (d *Discount) IsUsageExhausted() bool {
	return d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit
}
