package handler

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateMaterial adds a raw material with an empty stock row
// POST /api/v1/materials
func (h *InventoryHandler) CreateMaterial(c *fiber.Ctx) error {
	var material model.RawMaterial
	if err := c.BodyParser(&material); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.inventoryService.CreateMaterial(&material, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Material created successfully",
		"material": material,
	})
}

// UpdateMaterial edits a raw material
// PUT /api/v1/materials/:id
func (h *InventoryHandler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	existing, err := h.inventoryService.GetMaterialByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := c.BodyParser(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	existing.ID = id

	userID, _ := c.Locals("user_id").(string)
	if err := h.inventoryService.UpdateMaterial(existing, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Material updated successfully",
		"material": existing,
	})
}

// GetMaterials lists raw materials with stock levels
// GET /api/v1/materials
func (h *InventoryHandler) GetMaterials(c *fiber.Ctx) error {
	materials, err := h.inventoryService.GetMaterials()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"materials": materials})
}

// GetMaterial returns one raw material
// GET /api/v1/materials/:id
func (h *InventoryHandler) GetMaterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	material, err := h.inventoryService.GetMaterialByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(material)
}

// AdjustStock applies a manual raw-material movement
// POST /api/v1/materials/stock/adjust
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.StockAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	movement, err := h.inventoryService.AdjustStock(&req, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Stock adjusted successfully",
		"movement": movement,
	})
}

// GetMovements lists the raw-material audit trail
// GET /api/v1/materials/movements?material_id=&limit=
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	var materialID *uuid.UUID
	if v := c.Query("material_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid material_id"})
		}
		materialID = &id
	}

	movements, err := h.inventoryService.GetMovements(materialID, c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movements": movements})
}

// GetLowStock lists materials under their minimum
// GET /api/v1/materials/low-stock
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	materials, err := h.inventoryService.GetLowStockMaterials()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"materials": materials})
}

// AdjustProductStock applies a manual finished-goods movement
// POST /api/v1/inventory/adjust
func (h *InventoryHandler) AdjustProductStock(c *fiber.Ctx) error {
	var req service.ProductStockAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	log, err := h.inventoryService.AdjustProductStock(&req, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Stock adjusted successfully",
		"log":     log,
	})
}

// GetInventoryLogs lists the finished-goods audit trail for a product
// GET /api/v1/inventory/:product_id/logs
func (h *InventoryHandler) GetInventoryLogs(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	logs, err := h.inventoryService.GetInventoryLogs(productID, c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}
