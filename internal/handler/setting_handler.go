package handler

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	settingService service.SettingService
}

func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetTaxSettings lists every tax/service charge
// GET /api/v1/settings/taxes
func (h *SettingHandler) GetTaxSettings(c *fiber.Ctx) error {
	settings, err := h.settingService.GetTaxSettings()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// UpdateTaxSetting edits one charge by its key
// PUT /api/v1/settings/taxes/:key
func (h *SettingHandler) UpdateTaxSetting(c *fiber.Ctx) error {
	var req service.TaxSettingUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	setting, err := h.settingService.UpdateTaxSetting(c.Params("key"), &req, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Tax setting updated successfully",
		"setting": setting,
	})
}

// GetRoundingSetting returns the rounding policy
// GET /api/v1/settings/rounding
func (h *SettingHandler) GetRoundingSetting(c *fiber.Ctx) error {
	setting, err := h.settingService.GetRoundingSetting()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}

// UpdateRoundingSetting edits the rounding policy
// PUT /api/v1/settings/rounding
func (h *SettingHandler) UpdateRoundingSetting(c *fiber.Ctx) error {
	var req service.RoundingSettingUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	setting, err := h.settingService.UpdateRoundingSetting(&req, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Rounding setting updated successfully",
		"setting": setting,
	})
}

// PreviewRequest is an amount to run through a calculation preview
type PreviewRequest struct {
	Amount int64 `json:"amount"`
}

// PreviewRounding shows how an amount would round
// POST /api/v1/settings/rounding/preview
func (h *SettingHandler) PreviewRounding(c *fiber.Ctx) error {
	var req PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.settingService.PreviewRounding(req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// PreviewTotal runs the tax/service/rounding pipeline over an amount
// POST /api/v1/settings/total/preview
func (h *SettingHandler) PreviewTotal(c *fiber.Ctx) error {
	var req PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Amount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must not be negative"})
	}

	preview, err := h.settingService.PreviewTotal(req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(preview)
}
