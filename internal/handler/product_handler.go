package handler

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct adds a menu item
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.productService.CreateProduct(&product, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct edits a menu item
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	existing, err := h.productService.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := c.BodyParser(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	existing.ID = id

	userID, _ := c.Locals("user_id").(string)
	if err := h.productService.UpdateProduct(existing, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": existing,
	})
}

// GetProducts lists the menu
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetProduct returns one menu item
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// CreateCategory adds a menu category
// POST /api/v1/categories
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.productService.CreateCategory(&category, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// GetCategories lists menu categories
// GET /api/v1/categories
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.productService.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}
