package model

import "github.com/google/uuid"

// Inventory is the finished-goods stock of one product.
// Mutated only through movement transactions, never set directly.
type Inventory struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	MinimumStock int       `gorm:"not null;default:0" json:"minimum_stock"`
}

func (Inventory) TableName() string {
	return "inventories"
}

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// InventoryLog is the append-only audit trail of finished-goods stock changes.
type InventoryLog struct {
	BaseModel
	ProductID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type             MovementType `gorm:"type:varchar(12);not null" json:"type"`
	Quantity         int          `gorm:"not null" json:"quantity"`
	PreviousQuantity int          `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int          `gorm:"not null" json:"new_quantity"`
	Notes            string       `gorm:"type:text" json:"notes"`

	// Causing document (order id for sales/refunds).
	ReferenceID   *uuid.UUID `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	ReferenceType string     `gorm:"type:varchar(20)" json:"reference_type"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}
