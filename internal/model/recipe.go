package model

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RawMaterial is long-lived master data for recipe ingredients.
type RawMaterial struct {
	BaseModel
	Code         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string          `gorm:"type:varchar(100)" json:"category"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'pcs'" json:"unit"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"current_price"`
	Supplier     string          `gorm:"type:varchar(255)" json:"supplier"`
	Description  string          `gorm:"type:text" json:"description"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"minimum_stock"`

	StockLevel *StockLevel `gorm:"foreignKey:MaterialID" json:"stock_level,omitempty"`
}

// StockLevel is the current raw-material stock, one row per material.
type StockLevel struct {
	BaseModel
	MaterialID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"material_id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0" json:"quantity"`
	Unit       string          `gorm:"type:varchar(20);not null" json:"unit"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}

// StockMovement is the append-only audit trail of raw-material stock changes.
type StockMovement struct {
	BaseModel
	MaterialID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"material_id"`
	Material         *RawMaterial    `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Type             MovementType    `gorm:"type:varchar(12);not null" json:"type"`
	Quantity         decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	PreviousQuantity decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"previous_quantity"`
	NewQuantity      decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"new_quantity"`
	Unit             string          `gorm:"type:varchar(20);not null" json:"unit"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_cost"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_cost"`
	Notes            string          `gorm:"type:text" json:"notes"`

	ReferenceID   *uuid.UUID `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	ReferenceType string     `gorm:"type:varchar(20)" json:"reference_type"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// Recipe is one versioned bill of materials for a product.
type Recipe struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Version       string          `gorm:"type:varchar(10);default:'1.0'" json:"version"`
	YieldQuantity decimal.Decimal `gorm:"type:decimal(10,3);default:1" json:"yield_quantity"`
	Notes         string          `gorm:"type:text" json:"notes"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

var ErrIngredientReference = errors.New("recipe ingredient must reference exactly one of material or sub-recipe")

// RecipeIngredient references EITHER a raw material (leaf, cost snapshot
// columns) OR a nested sub-recipe. Exactly one of MaterialID/SubRecipeID is
// set; BeforeSave rejects the invalid states the old schema permitted.
type RecipeIngredient struct {
	BaseModel
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`

	MaterialID  *uuid.UUID   `gorm:"type:uuid;index" json:"material_id,omitempty"`
	Material    *RawMaterial `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	SubRecipeID *uuid.UUID   `gorm:"type:uuid;index" json:"sub_recipe_id,omitempty"`
	SubRecipe   *Recipe      `gorm:"foreignKey:SubRecipeID" json:"sub_recipe,omitempty"`

	Quantity decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	Unit     string          `gorm:"type:varchar(20);not null" json:"unit"`

	// Denormalized cost snapshot for leaf ingredients; costing reads these,
	// not the material's current price, so historical costs stay stable.
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_cost"`
	TotalCost decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_cost"`
	Notes     string          `gorm:"type:text" json:"notes"`
}

func (ri *RecipeIngredient) BeforeSave(tx *gorm.DB) error {
	hasMaterial := ri.MaterialID != nil && *ri.MaterialID != uuid.Nil
	hasSub := ri.SubRecipeID != nil && *ri.SubRecipeID != uuid.Nil
	if hasMaterial == hasSub {
		return ErrIngredientReference
	}
	return nil
}
