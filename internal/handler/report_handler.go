package handler

import (
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var start, end time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		start = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		end = t
	}
	return start, end, nil
}

// GetDailySales charts revenue per day
// GET /api/v1/reports/daily-sales?start_date=&end_date=
func (h *ReportHandler) GetDailySales(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be YYYY-MM-DD"})
	}

	data, err := h.reportService.GetDailySales(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"daily_sales": data})
}

// GetSalesSummary returns the period's headline numbers
// GET /api/v1/reports/summary?start_date=&end_date=
func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be YYYY-MM-DD"})
	}

	summary, err := h.reportService.GetSalesSummary(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetStockMovementChart charts raw-material in/out per day
// GET /api/v1/reports/stock-movements?start_date=&end_date=
func (h *ReportHandler) GetStockMovementChart(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be YYYY-MM-DD"})
	}

	data, err := h.reportService.GetStockMovementChart(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stock_movements": data})
}
