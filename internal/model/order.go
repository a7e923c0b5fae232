package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is a committed sale. Monetary fields are rupiah integers and satisfy
// FinalAmount = Subtotal - DiscountAmount + TaxAmount + ServiceAmount + RoundingAmount.
type Order struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	OrderDate   time.Time `gorm:"not null" json:"order_date"`

	CashierID       *uuid.UUID     `gorm:"type:uuid;index" json:"cashier_id"`
	Cashier         *User          `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`

	Subtotal        int64              `gorm:"not null" json:"subtotal"`
	DiscountAmount  int64              `gorm:"not null;default:0" json:"discount_amount"`
	DiscountCode    string             `gorm:"type:varchar(50)" json:"discount_code,omitempty"`
	DiscountDetails DiscountDetailList `gorm:"type:text" json:"discount_details"`
	TaxAmount       int64              `gorm:"not null;default:0" json:"tax_amount"`
	ServiceAmount   int64              `gorm:"not null;default:0" json:"service_amount"`
	RoundingAmount  int64              `gorm:"not null;default:0" json:"rounding_amount"`
	FinalAmount     int64              `gorm:"not null" json:"final_amount"`
	PaidAmount      int64              `gorm:"not null" json:"paid_amount"`
	ChangeAmount    int64              `gorm:"not null;default:0" json:"change_amount"`

	PaymentStatus  PaymentStatus `gorm:"type:varchar(10);not null;default:'paid'" json:"payment_status"`
	CustomerName   string        `gorm:"type:varchar(255)" json:"customer_name"`
	Notes          string        `gorm:"type:text" json:"notes"`
	ReceiptPrinted bool          `gorm:"default:false" json:"receipt_printed"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is created once with the order and never mutated; unit price and
// product name are snapshots taken at sale time.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int    `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"`
	Subtotal    int64  `gorm:"not null" json:"subtotal"`
	Discount    int64  `gorm:"not null;default:0" json:"discount"`
	Notes       string `gorm:"type:text" json:"notes"`

	// Per-line COGS resolved from the recipe at sale time (total for the line).
	CostOfGoods decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cost_of_goods"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
