package handler

import (
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles checkout
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashierID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.orderService.CreateOrder(&req, cashierID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrders lists orders with filters
// GET /api/v1/orders?start_date=&end_date=&payment_status=&page=&limit=
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		PaymentStatus: c.Query("payment_status"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
	}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if v := c.Query("cashier_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid cashier_id"})
		}
		filter.CashierID = &id
	}

	orders, total, err := h.orderService.GetOrders(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.Limit,
	})
}

// GetOrder returns one order with its items
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orderService.GetOrderByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// CancelOrderRequest carries the refund reason
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder refunds an order and restores stock
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.CancelOrder(id, req.Reason, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// MarkReceiptPrinted flags the receipt as printed
// PATCH /api/v1/orders/:id/receipt
func (h *OrderHandler) MarkReceiptPrinted(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.orderService.MarkReceiptPrinted(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Receipt marked as printed"})
}
