package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/pricing"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	orderNumberPrefix   = "PK"
	orderNumberAttempts = 5
)

// OrderItemRequest is one requested cart line.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Notes     string    `json:"notes"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethodID uuid.UUID          `json:"payment_method_id"`
	PaidAmount      int64              `json:"paid_amount" validate:"gte=0"`
	DiscountCode    string             `json:"discount_code"`
	CustomerName    string             `json:"customer_name"`
	Notes           string             `json:"notes"`
}

type OrderService interface {
	// CreateOrder runs the whole checkout pipeline in one transaction:
	// validation, discount gating, tax/service compounding, rounding,
	// payment, persistence and stock deduction. Either everything commits
	// or nothing does.
	CreateOrder(req *CreateOrderRequest, cashierID uuid.UUID) (*model.Order, error)
	// CancelOrder marks a paid order refunded and restores finished-goods
	// stock for its lines.
	CancelOrder(orderID uuid.UUID, reason string, userID string) (*model.Order, error)
	GetOrders(filter repository.OrderFilter) ([]model.Order, int64, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
	MarkReceiptPrinted(id uuid.UUID) error
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	stockRepo     repository.StockRepository
	discountRepo  repository.DiscountRepository
	taxRepo       repository.TaxSettingRepository
	roundingRepo  repository.RoundingSettingRepository
	paymentRepo   repository.PaymentMethodRepository
	recipes       RecipeService
	hub           *ws.Hub
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	stockRepo repository.StockRepository,
	discountRepo repository.DiscountRepository,
	taxRepo repository.TaxSettingRepository,
	roundingRepo repository.RoundingSettingRepository,
	paymentRepo repository.PaymentMethodRepository,
	recipes RecipeService,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		stockRepo:     stockRepo,
		discountRepo:  discountRepo,
		taxRepo:       taxRepo,
		roundingRepo:  roundingRepo,
		paymentRepo:   paymentRepo,
		recipes:       recipes,
		hub:           hub,
	}
}

// lockedLine pairs a requested line with the product row loaded inside the
// transaction, so pricing and deduction see the same state.
type lockedLine struct {
	request OrderItemRequest
	product *model.Product
}

func (s *orderService) CreateOrder(req *CreateOrderRequest, cashierID uuid.UUID) (*model.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.PaymentMethodID == uuid.Nil {
		return nil, ErrPaymentMethodRequired
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrEmptyCart
		}
	}

	method, err := s.paymentRepo.FindByID(req.PaymentMethodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, err
	}
	if !method.IsActive {
		return nil, ErrPaymentMethodNotFound
	}

	var order *model.Order
	var deductedProducts []uuid.UUID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		lines, subtotal, err := s.loadLines(tx, req.Items)
		if err != nil {
			return err
		}

		discountAmount, discountDetails, appliedDiscount, err := s.applyDiscount(req.DiscountCode, lines, subtotal)
		if err != nil {
			return err
		}

		taxSettings, err := s.taxRepo.FindActiveOrdered()
		if err != nil {
			return err
		}
		charges := pricing.CalculateTaxAndService(taxSettings, subtotal-discountAmount)

		roundingSetting, err := s.roundingRepo.Get()
		if err != nil {
			return err
		}
		rounding := pricing.ApplyRounding(charges.FinalAmount, roundingSetting)
		finalAmount := rounding.RoundedAmount

		paidAmount := req.PaidAmount
		changeAmount := int64(0)
		if method.Code == model.PaymentMethodCash {
			if paidAmount < finalAmount {
				return &InsufficientPaymentError{PaidAmount: paidAmount, FinalAmount: finalAmount}
			}
			changeAmount = paidAmount - finalAmount
		} else {
			// Non-cash tenders settle exactly.
			paidAmount = finalAmount
		}

		orderNumber, err := s.generateOrderNumber(tx)
		if err != nil {
			return err
		}

		order = &model.Order{
			OrderNumber:     orderNumber,
			OrderDate:       time.Now(),
			CashierID:       &cashierID,
			PaymentMethodID: method.ID,
			Subtotal:        subtotal,
			DiscountAmount:  discountAmount,
			DiscountCode:    discountCode(appliedDiscount),
			DiscountDetails: discountDetails,
			TaxAmount:       charges.TaxAmount,
			ServiceAmount:   charges.ServiceAmount,
			RoundingAmount:  rounding.RoundingAmount,
			FinalAmount:     finalAmount,
			PaidAmount:      paidAmount,
			ChangeAmount:    changeAmount,
			PaymentStatus:   model.PaymentPaid,
			CustomerName:    req.CustomerName,
			Notes:           req.Notes,
		}
		order.CreatedBy = cashierID.String()
		order.UpdatedBy = cashierID.String()
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		for _, line := range lines {
			cost, err := s.recipes.CalculateProductCost(line.product.ID)
			if err != nil {
				return err
			}
			item := &model.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.product.ID,
				ProductName: line.product.Name,
				Quantity:    line.request.Quantity,
				UnitPrice:   line.product.Price,
				Subtotal:    int64(line.request.Quantity) * line.product.Price,
				Notes:       line.request.Notes,
				CostOfGoods: cost.TotalCost.Mul(decimal.NewFromInt(int64(line.request.Quantity))),
			}
			item.CreatedBy = cashierID.String()
			if err := s.orderRepo.CreateItem(tx, item); err != nil {
				return err
			}
			order.Items = append(order.Items, *item)
		}

		for _, line := range lines {
			if err := s.deductLine(tx, order, line); err != nil {
				return err
			}
			deductedProducts = append(deductedProducts, line.product.ID)
		}

		if appliedDiscount != nil {
			if err := s.discountRepo.IncrementUsage(tx, appliedDiscount.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDiscountExhausted
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	s.hub.PublishEvent(ws.EventOrderCreated,
		fmt.Sprintf("Order %s created", full.OrderNumber), full)
	s.notifyLowStock(deductedProducts)

	return full, nil
}

func (s *orderService) loadLines(tx *gorm.DB, items []OrderItemRequest) ([]lockedLine, int64, error) {
	lines := make([]lockedLine, 0, len(items))
	var subtotal int64

	for _, item := range items {
		product, err := s.productRepo.FindForSale(tx, item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProductNotFound
		}
		if err != nil {
			return nil, 0, err
		}
		if !product.IsActive {
			return nil, 0, &InactiveProductError{ProductName: product.Name}
		}
		lines = append(lines, lockedLine{request: item, product: product})
		subtotal += int64(item.Quantity) * product.Price
	}
	return lines, subtotal, nil
}

// applyDiscount gates the code and runs the discount engine. A rejected code
// fails the order loudly rather than silently skipping the discount.
func (s *orderService) applyDiscount(code string, lines []lockedLine, subtotal int64) (int64, model.DiscountDetailList, *model.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, nil, nil, nil
	}

	discount, err := s.discountRepo.FindActiveByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, nil, ErrDiscountNotFound
	}
	if err != nil {
		return 0, nil, nil, err
	}

	if err := gateDiscount(discount, time.Now(), subtotal); err != nil {
		return 0, nil, nil, err
	}

	cart := make([]pricing.CartItem, 0, len(lines))
	for _, line := range lines {
		categoryID := ""
		if line.product.CategoryID != nil {
			categoryID = line.product.CategoryID.String()
		}
		cart = append(cart, pricing.CartItem{
			ProductID:   line.product.ID.String(),
			CategoryID:  categoryID,
			ProductName: line.product.Name,
			Quantity:    line.request.Quantity,
			UnitPrice:   line.product.Price,
		})
	}

	calc := pricing.CalculateDiscount(discount, cart, subtotal)
	return calc.DiscountAmount, calc.Details, discount, nil
}

// deductLine takes stock for one order line: leaf materials through the
// flattened recipe for recipe products, the finished-goods counter otherwise.
// Products without an inventory record (made to order, no recipe yet) deduct
// nothing.
func (s *orderService) deductLine(tx *gorm.DB, order *model.Order, line lockedLine) error {
	quantity := line.request.Quantity

	if line.product.HasRecipe {
		requirements, err := s.recipes.FlattenRequirements(line.product.ID)
		if err != nil {
			return err
		}
		for _, req := range requirements {
			needed := req.Quantity.Mul(decimal.NewFromInt(int64(quantity)))
			ok, err := s.stockRepo.DecrementIfAvailable(tx, req.MaterialID, needed)
			if err != nil {
				return err
			}
			if !ok {
				available := decimal.Zero
				if level, err := s.stockRepo.FindByMaterial(tx, req.MaterialID); err == nil {
					available = level.Quantity
				}
				return &InsufficientMaterialError{
					MaterialName: req.MaterialName,
					Required:     needed,
					Available:    available,
				}
			}

			level, err := s.stockRepo.FindByMaterial(tx, req.MaterialID)
			if err != nil {
				return err
			}
			movement := &model.StockMovement{
				MaterialID:       req.MaterialID,
				Type:             model.MovementOut,
				Quantity:         needed,
				PreviousQuantity: level.Quantity.Add(needed),
				NewQuantity:      level.Quantity,
				Unit:             req.Unit,
				UnitCost:         req.UnitCost,
				TotalCost:        req.UnitCost.Mul(needed),
				Notes:            fmt.Sprintf("Sale %s - %s", order.OrderNumber, line.product.Name),
				ReferenceID:      &order.ID,
				ReferenceType:    "order",
			}
			if err := s.stockRepo.CreateMovement(tx, movement); err != nil {
				return err
			}
		}
		return nil
	}

	if line.product.Inventory == nil {
		return nil
	}

	ok, err := s.inventoryRepo.DecrementIfAvailable(tx, line.product.ID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		available := 0
		if inv, err := s.inventoryRepo.FindByProduct(tx, line.product.ID); err == nil {
			available = inv.Quantity
		}
		return &InsufficientStockError{
			ProductName: line.product.Name,
			Requested:   quantity,
			Available:   available,
		}
	}

	inv, err := s.inventoryRepo.FindByProduct(tx, line.product.ID)
	if err != nil {
		return err
	}
	log := &model.InventoryLog{
		ProductID:        line.product.ID,
		Type:             model.MovementOut,
		Quantity:         quantity,
		PreviousQuantity: inv.Quantity + quantity,
		NewQuantity:      inv.Quantity,
		Notes:            fmt.Sprintf("Sale %s", order.OrderNumber),
		ReferenceID:      &order.ID,
		ReferenceType:    "order",
	}
	return s.inventoryRepo.CreateLog(tx, log)
}

// generateOrderNumber builds PK + yymmdd + 4 random digits and verifies the
// candidate inside the transaction before use; the unique index on
// order_number stays as the backstop for races between transactions.
func (s *orderService) generateOrderNumber(tx *gorm.DB) (string, error) {
	day := time.Now().Format("060102")
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%s%04d", orderNumberPrefix, day, rand.Intn(10000))
		exists, err := s.orderRepo.ExistsByNumber(tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique order number after %d attempts", orderNumberAttempts)
}

func (s *orderService) CancelOrder(orderID uuid.UUID, reason string, userID string) (*model.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDInTx(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.PaymentStatus == model.PaymentRefunded {
			return ErrOrderAlreadyCancelled
		}

		notes := order.Notes
		if reason != "" {
			if notes != "" {
				notes += " | "
			}
			notes += "Cancelled: " + reason
		}
		if err := s.orderRepo.UpdatePaymentStatus(tx, order.ID, model.PaymentRefunded, notes); err != nil {
			return err
		}

		// Finished-goods stock comes back; consumed raw materials do not,
		// the prepared items cannot be un-made.
		for _, item := range order.Items {
			product, err := s.productRepo.FindForSale(tx, item.ProductID)
			if err != nil {
				return err
			}
			if product.HasRecipe || product.Inventory == nil {
				continue
			}
			if err := s.inventoryRepo.Increment(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			inv, err := s.inventoryRepo.FindByProduct(tx, item.ProductID)
			if err != nil {
				return err
			}
			log := &model.InventoryLog{
				ProductID:        item.ProductID,
				Type:             model.MovementIn,
				Quantity:         item.Quantity,
				PreviousQuantity: inv.Quantity - item.Quantity,
				NewQuantity:      inv.Quantity,
				Notes:            fmt.Sprintf("Refund %s", order.OrderNumber),
				ReferenceID:      &order.ID,
				ReferenceType:    "refund",
			}
			log.CreatedBy = userID
			if err := s.inventoryRepo.CreateLog(tx, log); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.hub.PublishEvent(ws.EventOrderCancelled,
		fmt.Sprintf("Order %s cancelled", full.OrderNumber), full)
	return full, nil
}

func (s *orderService) GetOrders(filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.FindAll(filter)
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *orderService) MarkReceiptPrinted(id uuid.UUID) error {
	return s.orderRepo.UpdateReceiptPrinted(id, true)
}

// notifyLowStock pushes alerts for any sold product that fell to or under its
// minimum, and for raw materials that dropped below theirs.
func (s *orderService) notifyLowStock(productIDs []uuid.UUID) {
	for _, id := range productIDs {
		inv, err := s.inventoryRepo.FindByProduct(nil, id)
		if err != nil {
			continue
		}
		if inv.MinimumStock > 0 && inv.Quantity <= inv.MinimumStock {
			s.hub.PublishEvent(ws.EventStockLow, "Product stock is low", inv)
		}
	}

	materials, err := s.stockRepo.FindBelowMinimum()
	if err != nil || len(materials) == 0 {
		return
	}
	s.hub.PublishEvent(ws.EventStockLow, "Raw material stock is low", materials)
}

func discountCode(d *model.Discount) string {
	if d == nil {
		return ""
	}
	return d.Code
}
