package model

type PaymentMethod struct {
	BaseModel
	Code     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code" validate:"required"`
	Name     string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Cash is the only method that accepts overpayment and returns change.
const PaymentMethodCash = "CASH"

var DefaultPaymentMethods = []PaymentMethod{
	{Code: "CASH", Name: "Tunai"},
	{Code: "CARD", Name: "Kartu Debit/Kredit"},
	{Code: "QRIS", Name: "QRIS"},
	{Code: "TRANSFER", Name: "Transfer Bank"},
}
