package model

import "github.com/google/uuid"

// Category groups products for the POS menu and for category-scoped discounts
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

type Product struct {
	BaseModel
	SKU        string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Harga jual dalam rupiah (integer, no cents)
	Price    int64  `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Unit     string `gorm:"type:varchar(20)" json:"unit"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Products with an active recipe deduct raw materials on sale
	// instead of finished-goods stock.
	HasRecipe bool `gorm:"default:false" json:"has_recipe"`

	Inventory *Inventory `gorm:"foreignKey:ProductID" json:"inventory,omitempty"`
}
