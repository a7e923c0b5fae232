package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error definitions shared by the order pipeline. The boundary layer maps
// these to transport responses; services never wrap storage errors into
// business errors.
var (
	ErrEmptyCart             = errors.New("order must contain at least one item")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAlreadyCancelled = errors.New("order has already been cancelled")
	ErrProductNotFound       = errors.New("product not found")
	ErrCyclicRecipe          = errors.New("recipe contains a cyclic sub-recipe reference")

	ErrDiscountNotFound     = errors.New("discount code is not valid")
	ErrDiscountNotStarted   = errors.New("discount code is not yet valid")
	ErrDiscountExpired      = errors.New("discount code has expired")
	ErrDiscountExhausted    = errors.New("discount code has reached its usage limit")
	ErrRoundingIncrement    = errors.New("invalid rounding increment, choose one of: 1, 5, 10, 25, 50, 100, 500, 1000")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)

// InactiveProductError rejects sales of products taken off the menu.
type InactiveProductError struct {
	ProductName string
}

func (e *InactiveProductError) Error() string {
	return fmt.Sprintf("product %s is not active", e.ProductName)
}

// InsufficientStockError names the finished product that ran out.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// InsufficientMaterialError names the raw material that ran out during
// recipe-based deduction.
type InsufficientMaterialError struct {
	MaterialName string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientMaterialError) Error() string {
	return fmt.Sprintf("insufficient stock for material %s: required %s, available %s",
		e.MaterialName, e.Required, e.Available)
}

// InsufficientPaymentError carries the shortfall for cash payments.
type InsufficientPaymentError struct {
	PaidAmount  int64
	FinalAmount int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("paid amount %d is less than total %d", e.PaidAmount, e.FinalAmount)
}

// MinimumPurchaseError rejects a discount code below its purchase threshold.
type MinimumPurchaseError struct {
	MinimumPurchase int64
}

func (e *MinimumPurchaseError) Error() string {
	return fmt.Sprintf("minimum purchase of %d is required to use this discount", e.MinimumPurchase)
}
