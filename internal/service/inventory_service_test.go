package service

import (
	"errors"
	"testing"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
)

func TestAdjustStockMovements(t *testing.T) {
	env := newTestEnv(t)
	material := env.createMaterial(t, "GULA", "100", "0.01")

	// Goods received.
	movement, err := env.inventory.AdjustStock(&StockAdjustmentRequest{
		MaterialID: material.ID,
		Type:       model.MovementIn,
		Quantity:   mustDecimal(t, "50"),
		UnitCost:   mustDecimal(t, "0.01"),
		Notes:      "supplier delivery",
	}, "manager-1")
	if err != nil {
		t.Fatalf("AdjustStock in: %v", err)
	}
	if !movement.PreviousQuantity.Equal(mustDecimal(t, "100")) || !movement.NewQuantity.Equal(mustDecimal(t, "150")) {
		t.Errorf("in movement: prev=%s new=%s, want 100 -> 150", movement.PreviousQuantity, movement.NewQuantity)
	}

	// Spoilage.
	movement, err = env.inventory.AdjustStock(&StockAdjustmentRequest{
		MaterialID: material.ID,
		Type:       model.MovementOut,
		Quantity:   mustDecimal(t, "30"),
	}, "manager-1")
	if err != nil {
		t.Fatalf("AdjustStock out: %v", err)
	}
	if !movement.NewQuantity.Equal(mustDecimal(t, "120")) {
		t.Errorf("out movement new = %s, want 120", movement.NewQuantity)
	}

	// Stock opname sets the counted absolute level.
	movement, err = env.inventory.AdjustStock(&StockAdjustmentRequest{
		MaterialID: material.ID,
		Type:       model.MovementAdjustment,
		Quantity:   mustDecimal(t, "95.5"),
		Notes:      "monthly opname",
	}, "manager-1")
	if err != nil {
		t.Fatalf("AdjustStock adjustment: %v", err)
	}
	if !movement.NewQuantity.Equal(mustDecimal(t, "95.5")) {
		t.Errorf("adjustment new = %s, want 95.5", movement.NewQuantity)
	}
	if !movement.Quantity.Equal(mustDecimal(t, "24.5")) {
		t.Errorf("adjustment delta = %s, want 24.5", movement.Quantity)
	}

	movements, err := env.inventory.GetMovements(&material.ID, 10)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	if len(movements) != 3 {
		t.Errorf("len(movements) = %d, want 3", len(movements))
	}
}

func TestAdjustStockRejectsOverdraw(t *testing.T) {
	env := newTestEnv(t)
	material := env.createMaterial(t, "KEJU", "20", "0.1")

	_, err := env.inventory.AdjustStock(&StockAdjustmentRequest{
		MaterialID: material.ID,
		Type:       model.MovementOut,
		Quantity:   mustDecimal(t, "25"),
	}, "manager-1")

	var matErr *InsufficientMaterialError
	if !errors.As(err, &matErr) {
		t.Fatalf("err = %v, want InsufficientMaterialError", err)
	}

	level, _ := env.stockRepo.FindByMaterial(nil, material.ID)
	if !level.Quantity.Equal(mustDecimal(t, "20")) {
		t.Errorf("stock after rejected overdraw = %s, want 20", level.Quantity)
	}
}

func TestAdjustStockUnknownMaterial(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.AdjustStock(&StockAdjustmentRequest{
		MaterialID: uuid.New(),
		Type:       model.MovementIn,
		Quantity:   mustDecimal(t, "1"),
	}, "manager-1")
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("err = %v, want ErrMaterialNotFound", err)
	}
}

func TestAdjustProductStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-ADJ", 10000, 4)

	log, err := env.inventory.AdjustProductStock(&ProductStockAdjustmentRequest{
		ProductID: product.ID,
		Type:      model.MovementIn,
		Quantity:  6,
		Notes:     "fresh batch",
	}, "manager-1")
	if err != nil {
		t.Fatalf("AdjustProductStock: %v", err)
	}
	if log.PreviousQuantity != 4 || log.NewQuantity != 10 {
		t.Errorf("log prev=%d new=%d, want 4 -> 10", log.PreviousQuantity, log.NewQuantity)
	}

	_, err = env.inventory.AdjustProductStock(&ProductStockAdjustmentRequest{
		ProductID: product.ID,
		Type:      model.MovementOut,
		Quantity:  50,
	}, "manager-1")
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
}

func TestCreateMaterialSeedsStockRow(t *testing.T) {
	env := newTestEnv(t)

	material := &model.RawMaterial{Code: "TEPUNG", Name: "Tepung Terigu", Unit: "gram"}
	if err := env.inventory.CreateMaterial(material, "manager-1"); err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}

	level, err := env.stockRepo.FindByMaterial(nil, material.ID)
	if err != nil {
		t.Fatalf("stock row missing: %v", err)
	}
	if !level.Quantity.IsZero() {
		t.Errorf("new material stock = %s, want 0", level.Quantity)
	}
	if level.Unit != "gram" {
		t.Errorf("stock unit = %q, want gram", level.Unit)
	}
}
