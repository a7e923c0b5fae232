package service

import (
	"path/filepath"
	"testing"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pos_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Category{}, &model.Product{}, &model.Inventory{}, &model.InventoryLog{},
		&model.RawMaterial{}, &model.StockLevel{}, &model.StockMovement{},
		&model.Recipe{}, &model.RecipeIngredient{},
		&model.Discount{}, &model.TaxSetting{}, &model.RoundingSetting{},
		&model.PaymentMethod{}, &model.Order{}, &model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// testEnv wires every service against one database, the way main does.
type testEnv struct {
	db        *gorm.DB
	orders    OrderService
	recipes   RecipeService
	inventory InventoryService
	discounts DiscountService
	settings  SettingService

	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	materialRepo  repository.MaterialRepository
	stockRepo     repository.StockRepository
	discountRepo  repository.DiscountRepository
	taxRepo       repository.TaxSettingRepository
	roundingRepo  repository.RoundingSettingRepository
	paymentRepo   repository.PaymentMethodRepository
	recipeRepo    repository.RecipeRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	hub := ws.NewHub()

	env := &testEnv{
		db:            db,
		orderRepo:     repository.NewOrderRepo(db),
		productRepo:   repository.NewProductRepo(db),
		inventoryRepo: repository.NewInventoryRepo(db),
		materialRepo:  repository.NewMaterialRepo(db),
		stockRepo:     repository.NewStockRepo(db),
		discountRepo:  repository.NewDiscountRepo(db),
		taxRepo:       repository.NewTaxSettingRepo(db),
		roundingRepo:  repository.NewRoundingSettingRepo(db),
		paymentRepo:   repository.NewPaymentMethodRepo(db),
		recipeRepo:    repository.NewRecipeRepo(db),
	}

	env.recipes = NewRecipeService(env.recipeRepo)
	env.orders = NewOrderService(db, env.orderRepo, env.productRepo, env.inventoryRepo,
		env.stockRepo, env.discountRepo, env.taxRepo, env.roundingRepo, env.paymentRepo,
		env.recipes, hub)
	env.inventory = NewInventoryService(db, env.materialRepo, env.stockRepo,
		env.productRepo, env.inventoryRepo, hub)
	env.discounts = NewDiscountService(env.discountRepo)
	env.settings = NewSettingService(env.taxRepo, env.roundingRepo)

	if err := env.paymentRepo.SeedDefaults(); err != nil {
		t.Fatalf("seed payment methods: %v", err)
	}
	return env
}

func (e *testEnv) cashMethod(t *testing.T) *model.PaymentMethod {
	t.Helper()
	method, err := e.paymentRepo.FindByCode(model.PaymentMethodCash)
	if err != nil {
		t.Fatalf("find cash method: %v", err)
	}
	return method
}

func (e *testEnv) cardMethod(t *testing.T) *model.PaymentMethod {
	t.Helper()
	method, err := e.paymentRepo.FindByCode("CARD")
	if err != nil {
		t.Fatalf("find card method: %v", err)
	}
	return method
}

// createProduct inserts a stocked menu item with an inventory row.
func (e *testEnv) createProduct(t *testing.T, sku string, price int64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Price:    price,
		Unit:     "pcs",
		IsActive: true,
	}
	if err := e.productRepo.Create(product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	inv := &model.Inventory{ProductID: product.ID, Quantity: stock, MinimumStock: 1}
	if err := e.inventoryRepo.Create(inv); err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	product.Inventory = inv
	return product
}

// createRecipeProduct inserts a recipe-backed menu item with no inventory row.
func (e *testEnv) createRecipeProduct(t *testing.T, sku string, price int64) *model.Product {
	t.Helper()
	product := &model.Product{
		SKU:       sku,
		Name:      "Product " + sku,
		Price:     price,
		Unit:      "pcs",
		IsActive:  true,
		HasRecipe: true,
	}
	if err := e.productRepo.Create(product); err != nil {
		t.Fatalf("create recipe product: %v", err)
	}
	return product
}

func (e *testEnv) createMaterial(t *testing.T, code string, stock, unitCost string) *model.RawMaterial {
	t.Helper()
	material := &model.RawMaterial{
		Code:         code,
		Name:         "Material " + code,
		Unit:         "gram",
		CurrentPrice: mustDecimal(t, unitCost),
		MinimumStock: decimal.NewFromInt(10),
	}
	if err := e.materialRepo.Create(material); err != nil {
		t.Fatalf("create material: %v", err)
	}
	level := &model.StockLevel{
		MaterialID: material.ID,
		Quantity:   mustDecimal(t, stock),
		Unit:       "gram",
	}
	if err := e.stockRepo.Create(level); err != nil {
		t.Fatalf("create stock level: %v", err)
	}
	return material
}

// createRecipe attaches an active recipe to the product and returns it.
func (e *testEnv) createRecipe(t *testing.T, productID uuid.UUID, version string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		ProductID:     productID,
		Version:       version,
		YieldQuantity: decimal.NewFromInt(1),
		IsActive:      true,
	}
	if err := e.recipeRepo.Create(recipe); err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return recipe
}

func (e *testEnv) addMaterialIngredient(t *testing.T, recipeID uuid.UUID, material *model.RawMaterial, qty, unitCost, totalCost string) {
	t.Helper()
	ingredient := &model.RecipeIngredient{
		RecipeID:   recipeID,
		MaterialID: &material.ID,
		Quantity:   mustDecimal(t, qty),
		Unit:       material.Unit,
		UnitCost:   mustDecimal(t, unitCost),
		TotalCost:  mustDecimal(t, totalCost),
	}
	if err := e.recipeRepo.AddIngredient(ingredient); err != nil {
		t.Fatalf("add material ingredient: %v", err)
	}
}

func (e *testEnv) addSubRecipeIngredient(t *testing.T, recipeID, subRecipeID uuid.UUID, qty string) {
	t.Helper()
	ingredient := &model.RecipeIngredient{
		RecipeID:    recipeID,
		SubRecipeID: &subRecipeID,
		Quantity:    mustDecimal(t, qty),
		Unit:        "pcs",
	}
	if err := e.recipeRepo.AddIngredient(ingredient); err != nil {
		t.Fatalf("add sub-recipe ingredient: %v", err)
	}
}

// seedStandardCharges installs the cafe's default 5% before-service charge
// and 11% tax.
func (e *testEnv) seedStandardCharges(t *testing.T) {
	t.Helper()
	charges := []model.TaxSetting{
		{SettingKey: model.ServiceChargeKey, Name: "Service Charge", Percentage: 5, ApplyBeforeService: true, IsActive: true},
		{SettingKey: "ppn", Name: "PPN", Percentage: 11, IsActive: true},
	}
	for i := range charges {
		if err := e.taxRepo.Save(&charges[i]); err != nil {
			t.Fatalf("seed tax setting: %v", err)
		}
	}
}

func (e *testEnv) seedRounding(t *testing.T, method model.RoundingMethod, increment int64) {
	t.Helper()
	setting := model.RoundingSetting{
		IsActive:          true,
		RoundingMethod:    method,
		RoundingIncrement: increment,
		ApplyTo:           "final_total",
	}
	if err := e.roundingRepo.Save(&setting); err != nil {
		t.Fatalf("seed rounding setting: %v", err)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}
