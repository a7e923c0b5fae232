package handler

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/service"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to HTTP responses. Business rejections get
// 4xx with the error text; anything unrecognized is a 500 without internals
// leaking to the client.
func respondError(c *fiber.Ctx, err error) error {
	var inactiveProduct *service.InactiveProductError
	var insufficientStock *service.InsufficientStockError
	var insufficientMaterial *service.InsufficientMaterialError
	var insufficientPayment *service.InsufficientPaymentError
	var minimumPurchase *service.MinimumPurchaseError
	var validation *validator.ErrorResponse

	switch {
	case errors.As(err, &validation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrPaymentMethodNotFound),
		errors.Is(err, service.ErrTaxSettingNotFound),
		errors.Is(err, service.ErrDiscountNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrPaymentMethodRequired),
		errors.Is(err, service.ErrOrderAlreadyCancelled),
		errors.Is(err, service.ErrCyclicRecipe),
		errors.Is(err, service.ErrDiscountNotStarted),
		errors.Is(err, service.ErrDiscountExpired),
		errors.Is(err, service.ErrDiscountExhausted),
		errors.Is(err, service.ErrRoundingIncrement),
		errors.Is(err, service.ErrPercentageOutOfRange):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	case errors.As(err, &inactiveProduct),
		errors.As(err, &insufficientStock),
		errors.As(err, &insufficientMaterial),
		errors.As(err, &insufficientPayment),
		errors.As(err, &minimumPurchase):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}
