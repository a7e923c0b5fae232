package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
)

func TestCreateOrderComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	env.seedStandardCharges(t)
	env.seedRounding(t, model.RoundNearest, 100)
	product := env.createProduct(t, "PCG-001", 45000, 10)
	cashier := uuid.New()

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethodID: env.cashMethod(t).ID,
		PaidAmount:      110000,
	}, cashier)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// 90000 -> +5% service = 94500 -> +11% tax = 104895 -> nearest 100 = 104900
	if order.Subtotal != 90000 {
		t.Errorf("Subtotal = %d, want 90000", order.Subtotal)
	}
	if order.ServiceAmount != 4500 {
		t.Errorf("ServiceAmount = %d, want 4500", order.ServiceAmount)
	}
	if order.TaxAmount != 10395 {
		t.Errorf("TaxAmount = %d, want 10395", order.TaxAmount)
	}
	if order.RoundingAmount != 5 {
		t.Errorf("RoundingAmount = %d, want 5", order.RoundingAmount)
	}
	if order.FinalAmount != 104900 {
		t.Errorf("FinalAmount = %d, want 104900", order.FinalAmount)
	}
	if order.ChangeAmount != 5100 {
		t.Errorf("ChangeAmount = %d, want 5100", order.ChangeAmount)
	}
	if order.PaymentStatus != model.PaymentPaid {
		t.Errorf("PaymentStatus = %s, want paid", order.PaymentStatus)
	}
	if !strings.HasPrefix(order.OrderNumber, "PK"+time.Now().Format("060102")) {
		t.Errorf("OrderNumber = %q, want PKyymmddNNNN", order.OrderNumber)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].UnitPrice != 45000 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	inv, err := env.inventoryRepo.FindByProduct(nil, product.ID)
	if err != nil {
		t.Fatalf("find inventory: %v", err)
	}
	if inv.Quantity != 8 {
		t.Errorf("stock after sale = %d, want 8", inv.Quantity)
	}

	logs, err := env.inventoryRepo.FindLogsByProduct(product.ID, 10)
	if err != nil {
		t.Fatalf("find logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if logs[0].Type != model.MovementOut || logs[0].PreviousQuantity != 10 || logs[0].NewQuantity != 8 {
		t.Errorf("unexpected log: %+v", logs[0])
	}
}

func TestCreateOrderAppliesDiscountCode(t *testing.T) {
	env := newTestEnv(t)
	env.seedStandardCharges(t)
	product := env.createProduct(t, "PCG-002", 50000, 10)

	limit := 5
	discount := &model.Discount{
		Code:       "hemat10",
		Name:       "Hemat 10%",
		Type:       model.DiscountPercentage,
		Value:      10,
		StartDate:  time.Now().AddDate(0, 0, -1),
		EndDate:    time.Now().AddDate(0, 0, 1),
		UsageLimit: &limit,
		IsActive:   true,
	}
	if err := env.discountRepo.Create(discount); err != nil {
		t.Fatalf("create discount: %v", err)
	}

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethodID: env.cardMethod(t).ID,
		DiscountCode:    "HEMAT10",
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.DiscountAmount != 10000 {
		t.Errorf("DiscountAmount = %d, want 10000", order.DiscountAmount)
	}
	if order.DiscountCode != "HEMAT10" {
		t.Errorf("DiscountCode = %q, want HEMAT10", order.DiscountCode)
	}
	if len(order.DiscountDetails) != 1 {
		t.Fatalf("len(DiscountDetails) = %d, want 1", len(order.DiscountDetails))
	}

	sum := order.Subtotal - order.DiscountAmount + order.TaxAmount + order.ServiceAmount + order.RoundingAmount
	if order.FinalAmount != sum {
		t.Errorf("FinalAmount = %d, want reconciled %d", order.FinalAmount, sum)
	}
	// Non-cash tenders settle exactly.
	if order.PaidAmount != order.FinalAmount || order.ChangeAmount != 0 {
		t.Errorf("PaidAmount = %d change = %d, want exact settle", order.PaidAmount, order.ChangeAmount)
	}

	updated, err := env.discountRepo.FindByID(discount.ID)
	if err != nil {
		t.Fatalf("reload discount: %v", err)
	}
	if updated.UsageCount != 1 {
		t.Errorf("UsageCount = %d, want 1", updated.UsageCount)
	}
}

func TestCreateOrderDiscountExhausted(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-003", 20000, 20)

	limit := 1
	discount := &model.Discount{
		Code:       "ONCE",
		Name:       "Single use",
		Type:       model.DiscountFixedAmount,
		Value:      5000,
		StartDate:  time.Now().AddDate(0, 0, -1),
		EndDate:    time.Now().AddDate(0, 0, 1),
		UsageLimit: &limit,
		IsActive:   true,
	}
	if err := env.discountRepo.Create(discount); err != nil {
		t.Fatalf("create discount: %v", err)
	}

	req := &CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethodID: env.cardMethod(t).ID,
		DiscountCode:    "ONCE",
	}
	if _, err := env.orders.CreateOrder(req, uuid.New()); err != nil {
		t.Fatalf("first order: %v", err)
	}
	if _, err := env.orders.CreateOrder(req, uuid.New()); !errors.Is(err, ErrDiscountExhausted) {
		t.Fatalf("second order err = %v, want ErrDiscountExhausted", err)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-004", 15000, 2)

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 5}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Requested != 5 || stockErr.Available != 2 {
		t.Errorf("unexpected error detail: %+v", stockErr)
	}

	// Nothing may survive the failed checkout.
	var orderCount int64
	env.db.Model(&model.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Errorf("orders persisted after rollback: %d", orderCount)
	}
	inv, _ := env.inventoryRepo.FindByProduct(nil, product.ID)
	if inv.Quantity != 2 {
		t.Errorf("stock after rollback = %d, want 2", inv.Quantity)
	}
}

func TestCreateOrderCashShortfall(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-005", 30000, 5)

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethodID: env.cashMethod(t).ID,
		PaidAmount:      20000,
	}, uuid.New())

	var payErr *InsufficientPaymentError
	if !errors.As(err, &payErr) {
		t.Fatalf("err = %v, want InsufficientPaymentError", err)
	}
	if payErr.FinalAmount != 30000 || payErr.PaidAmount != 20000 {
		t.Errorf("unexpected error detail: %+v", payErr)
	}

	inv, _ := env.inventoryRepo.FindByProduct(nil, product.ID)
	if inv.Quantity != 5 {
		t.Errorf("stock after rejected payment = %d, want 5", inv.Quantity)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-006", 10000, 5)

	if _, err := env.orders.CreateOrder(&CreateOrderRequest{
		PaymentMethodID: env.cashMethod(t).ID,
	}, uuid.New()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart err = %v, want ErrEmptyCart", err)
	}

	if _, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items: []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	}, uuid.New()); !errors.Is(err, ErrPaymentMethodRequired) {
		t.Errorf("missing method err = %v, want ErrPaymentMethodRequired", err)
	}

	if _, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethodID: uuid.New(),
	}, uuid.New()); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Errorf("unknown method err = %v, want ErrPaymentMethodNotFound", err)
	}

	if _, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethodID: env.cashMethod(t).ID,
		PaidAmount:      100000,
	}, uuid.New()); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product err = %v, want ErrProductNotFound", err)
	}

	inactive := &model.Product{SKU: "PCG-OFF", Name: "Off menu", Price: 5000}
	if err := env.productRepo.Create(inactive); err != nil {
		t.Fatalf("create inactive product: %v", err)
	}
	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: inactive.ID, Quantity: 1}},
		PaymentMethodID: env.cashMethod(t).ID,
		PaidAmount:      100000,
	}, uuid.New())
	var inactiveErr *InactiveProductError
	if !errors.As(err, &inactiveErr) {
		t.Errorf("inactive product err = %v, want InactiveProductError", err)
	}
}

func TestCreateOrderDeductsRecipeMaterials(t *testing.T) {
	env := newTestEnv(t)
	product := env.createRecipeProduct(t, "PCG-007", 25000)
	flour := env.createMaterial(t, "FLR", "1000", "2")
	recipe := env.createRecipe(t, product.ID, "1.0")
	env.addMaterialIngredient(t, recipe.ID, flour, "100", "2", "200")

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 3}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	level, err := env.stockRepo.FindByMaterial(nil, flour.ID)
	if err != nil {
		t.Fatalf("find stock level: %v", err)
	}
	if !level.Quantity.Equal(mustDecimal(t, "700")) {
		t.Errorf("flour stock = %s, want 700", level.Quantity)
	}

	movements, err := env.stockRepo.FindMovements(&flour.ID, 10)
	if err != nil {
		t.Fatalf("find movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("len(movements) = %d, want 1", len(movements))
	}
	m := movements[0]
	if m.Type != model.MovementOut || !m.Quantity.Equal(mustDecimal(t, "300")) {
		t.Errorf("unexpected movement: type=%s qty=%s", m.Type, m.Quantity)
	}
	if m.ReferenceID == nil || *m.ReferenceID != order.ID || m.ReferenceType != "order" {
		t.Errorf("movement not linked to order: %+v", m)
	}

	if len(order.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(order.Items))
	}
	if !order.Items[0].CostOfGoods.Equal(mustDecimal(t, "600")) {
		t.Errorf("CostOfGoods = %s, want 600", order.Items[0].CostOfGoods)
	}
}

func TestCreateOrderInsufficientMaterialRollsBack(t *testing.T) {
	env := newTestEnv(t)
	product := env.createRecipeProduct(t, "PCG-008", 25000)
	flour := env.createMaterial(t, "FLR2", "150", "2")
	recipe := env.createRecipe(t, product.ID, "1.0")
	env.addMaterialIngredient(t, recipe.ID, flour, "100", "2", "200")

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())

	var matErr *InsufficientMaterialError
	if !errors.As(err, &matErr) {
		t.Fatalf("err = %v, want InsufficientMaterialError", err)
	}
	if !matErr.Required.Equal(mustDecimal(t, "200")) || !matErr.Available.Equal(mustDecimal(t, "150")) {
		t.Errorf("unexpected error detail: required=%s available=%s", matErr.Required, matErr.Available)
	}

	var orderCount int64
	env.db.Model(&model.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Errorf("orders persisted after rollback: %d", orderCount)
	}
	level, _ := env.stockRepo.FindByMaterial(nil, flour.ID)
	if !level.Quantity.Equal(mustDecimal(t, "150")) {
		t.Errorf("flour stock after rollback = %s, want 150", level.Quantity)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-009", 12000, 6)

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 4}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	cancelled, err := env.orders.CancelOrder(order.ID, "customer walked out", "manager-1")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.PaymentStatus != model.PaymentRefunded {
		t.Errorf("PaymentStatus = %s, want refunded", cancelled.PaymentStatus)
	}
	if !strings.Contains(cancelled.Notes, "customer walked out") {
		t.Errorf("Notes = %q, want cancellation reason recorded", cancelled.Notes)
	}

	inv, _ := env.inventoryRepo.FindByProduct(nil, product.ID)
	if inv.Quantity != 6 {
		t.Errorf("stock after refund = %d, want 6", inv.Quantity)
	}

	logs, _ := env.inventoryRepo.FindLogsByProduct(product.ID, 10)
	var sawRefund bool
	for _, log := range logs {
		if log.Type == model.MovementIn && log.ReferenceType == "refund" {
			sawRefund = true
		}
	}
	if !sawRefund {
		t.Error("no refund log recorded")
	}

	if _, err := env.orders.CancelOrder(order.ID, "again", "manager-1"); !errors.Is(err, ErrOrderAlreadyCancelled) {
		t.Errorf("second cancel err = %v, want ErrOrderAlreadyCancelled", err)
	}
}

func TestCancelOrderDoesNotRestoreMaterials(t *testing.T) {
	env := newTestEnv(t)
	product := env.createRecipeProduct(t, "PCG-010", 25000)
	flour := env.createMaterial(t, "FLR3", "500", "2")
	recipe := env.createRecipe(t, product.ID, "1.0")
	env.addMaterialIngredient(t, recipe.ID, flour, "100", "2", "200")

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := env.orders.CancelOrder(order.ID, "", "manager-1"); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	// The pancong is already made; its ingredients stay consumed.
	level, _ := env.stockRepo.FindByMaterial(nil, flour.ID)
	if !level.Quantity.Equal(mustDecimal(t, "400")) {
		t.Errorf("flour stock after refund = %s, want 400", level.Quantity)
	}
}

func TestMarkReceiptPrinted(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-011", 8000, 3)

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethodID: env.cardMethod(t).ID,
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ReceiptPrinted {
		t.Fatal("receipt flagged printed on creation")
	}

	if err := env.orders.MarkReceiptPrinted(order.ID); err != nil {
		t.Fatalf("MarkReceiptPrinted: %v", err)
	}
	reloaded, err := env.orders.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID: %v", err)
	}
	if !reloaded.ReceiptPrinted {
		t.Error("receipt not flagged printed")
	}
}

func TestCreateOrderConservation(t *testing.T) {
	env := newTestEnv(t)
	env.seedStandardCharges(t)
	env.seedRounding(t, model.RoundNearest, 100)
	product := env.createProduct(t, "PCG-012", 17500, 50)

	for qty := 1; qty <= 5; qty++ {
		order, err := env.orders.CreateOrder(&CreateOrderRequest{
			Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: qty}},
			PaymentMethodID: env.cardMethod(t).ID,
		}, uuid.New())
		if err != nil {
			t.Fatalf("CreateOrder qty=%d: %v", qty, err)
		}
		sum := order.Subtotal - order.DiscountAmount + order.TaxAmount + order.ServiceAmount + order.RoundingAmount
		if order.FinalAmount != sum {
			t.Errorf("qty=%d: FinalAmount = %d, want reconciled %d", qty, order.FinalAmount, sum)
		}
	}
}
