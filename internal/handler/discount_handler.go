package handler

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/pricing"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DiscountHandler struct {
	discountService service.DiscountService
}

func NewDiscountHandler(discountService service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// CreateDiscount adds a discount definition
// POST /api/v1/discounts
func (h *DiscountHandler) CreateDiscount(c *fiber.Ctx) error {
	var discount model.Discount
	if err := c.BodyParser(&discount); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.discountService.CreateDiscount(&discount, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Discount created successfully",
		"discount": discount,
	})
}

// UpdateDiscount edits a discount definition
// PUT /api/v1/discounts/:id
func (h *DiscountHandler) UpdateDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid discount ID"})
	}

	existing, err := h.discountService.GetDiscountByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := c.BodyParser(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	existing.ID = id

	userID, _ := c.Locals("user_id").(string)
	if err := h.discountService.UpdateDiscount(existing, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Discount updated successfully",
		"discount": existing,
	})
}

// GetDiscounts lists every definition
// GET /api/v1/discounts
func (h *DiscountHandler) GetDiscounts(c *fiber.Ctx) error {
	discounts, err := h.discountService.GetDiscounts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"discounts": discounts})
}

// GetUsableDiscounts lists codes the POS can offer right now
// GET /api/v1/discounts/usable
func (h *DiscountHandler) GetUsableDiscounts(c *fiber.Ctx) error {
	discounts, err := h.discountService.GetUsableDiscounts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"discounts": discounts})
}

// ValidateCodeRequest carries the cart snapshot for a preview
type ValidateCodeRequest struct {
	Code  string `json:"code"`
	Items []struct {
		ProductID   string `json:"product_id"`
		CategoryID  string `json:"category_id"`
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
		UnitPrice   int64  `json:"unit_price"`
	} `json:"items"`
}

// ValidateCode previews a discount code against a cart
// POST /api/v1/discounts/validate
func (h *DiscountHandler) ValidateCode(c *fiber.Ctx) error {
	var req ValidateCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Discount code is required"})
	}

	items := make([]pricing.CartItem, 0, len(req.Items))
	var subtotal int64
	for _, item := range req.Items {
		items = append(items, pricing.CartItem{
			ProductID:   item.ProductID,
			CategoryID:  item.CategoryID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
		subtotal += int64(item.Quantity) * item.UnitPrice
	}

	preview, err := h.discountService.ValidateCode(req.Code, items, subtotal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(preview)
}
