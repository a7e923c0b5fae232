package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dedesp/PancongKeceApp-sub000/internal/handler"
	"github.com/dedesp/PancongKeceApp-sub000/internal/middleware"
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"
	"github.com/dedesp/PancongKeceApp-sub000/internal/ws"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Category{}, &model.Product{}, &model.Inventory{}, &model.InventoryLog{},
		&model.RawMaterial{}, &model.StockLevel{}, &model.StockMovement{},
		&model.Recipe{}, &model.RecipeIngredient{},
		&model.Discount{}, &model.TaxSetting{}, &model.RoundingSetting{},
		&model.PaymentMethod{}, &model.Order{}, &model.OrderItem{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// 3. Seed defaults
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	stockRepo := repository.NewStockRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	discountRepo := repository.NewDiscountRepo(db)
	taxRepo := repository.NewTaxSettingRepo(db)
	roundingRepo := repository.NewRoundingSettingRepo(db)
	paymentRepo := repository.NewPaymentMethodRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	productService := service.NewProductService(productRepo, categoryRepo, inventoryRepo)
	recipeService := service.NewRecipeService(recipeRepo)
	inventoryService := service.NewInventoryService(db, materialRepo, stockRepo, productRepo, inventoryRepo, wsHub)
	discountService := service.NewDiscountService(discountRepo)
	settingService := service.NewSettingService(taxRepo, roundingRepo)
	orderService := service.NewOrderService(db, orderRepo, productRepo, inventoryRepo, stockRepo,
		discountRepo, taxRepo, roundingRepo, paymentRepo, recipeService, wsHub)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	discountHandler := handler.NewDiscountHandler(discountService)
	settingHandler := handler.NewSettingHandler(settingService)
	orderHandler := handler.NewOrderHandler(orderService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pancong Kece POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Get("/auth/profile", authHandler.Profile)

	// Menu
	protected.Get("/categories", productHandler.GetCategories)
	protected.Post("/categories", middleware.RequireRole(model.RoleManager, model.RoleAdmin), productHandler.CreateCategory)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleManager, model.RoleAdmin), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleManager, model.RoleAdmin), productHandler.UpdateProduct)
	protected.Get("/products/:id/recipes", recipeHandler.GetRecipesByProduct)
	protected.Get("/products/:id/cost", recipeHandler.GetProductCost)

	// Recipes
	protected.Post("/recipes", middleware.RequireRole(model.RoleManager, model.RoleAdmin), recipeHandler.CreateRecipe)
	protected.Post("/recipes/:id/ingredients", middleware.RequireRole(model.RoleManager, model.RoleAdmin), recipeHandler.AddIngredient)

	// Raw materials and stock
	protected.Get("/materials", inventoryHandler.GetMaterials)
	protected.Get("/materials/low-stock", inventoryHandler.GetLowStock)
	protected.Get("/materials/movements", inventoryHandler.GetMovements)
	protected.Get("/materials/:id", inventoryHandler.GetMaterial)
	protected.Post("/materials", middleware.RequireRole(model.RoleManager, model.RoleAdmin), inventoryHandler.CreateMaterial)
	protected.Put("/materials/:id", middleware.RequireRole(model.RoleManager, model.RoleAdmin), inventoryHandler.UpdateMaterial)
	protected.Post("/materials/stock/adjust", middleware.RequireRole(model.RoleManager, model.RoleAdmin), inventoryHandler.AdjustStock)

	// Finished-goods inventory
	protected.Post("/inventory/adjust", middleware.RequireRole(model.RoleManager, model.RoleAdmin), inventoryHandler.AdjustProductStock)
	protected.Get("/inventory/:product_id/logs", inventoryHandler.GetInventoryLogs)

	// Discounts
	protected.Get("/discounts", discountHandler.GetDiscounts)
	protected.Get("/discounts/usable", discountHandler.GetUsableDiscounts)
	protected.Post("/discounts/validate", discountHandler.ValidateCode)
	protected.Post("/discounts", middleware.RequireRole(model.RoleManager, model.RoleAdmin), discountHandler.CreateDiscount)
	protected.Put("/discounts/:id", middleware.RequireRole(model.RoleManager, model.RoleAdmin), discountHandler.UpdateDiscount)

	// Settings
	protected.Get("/settings/taxes", settingHandler.GetTaxSettings)
	protected.Put("/settings/taxes/:key", middleware.RequireRole(model.RoleManager, model.RoleAdmin), settingHandler.UpdateTaxSetting)
	protected.Get("/settings/rounding", settingHandler.GetRoundingSetting)
	protected.Put("/settings/rounding", middleware.RequireRole(model.RoleManager, model.RoleAdmin), settingHandler.UpdateRoundingSetting)
	protected.Post("/settings/rounding/preview", settingHandler.PreviewRounding)
	protected.Post("/settings/total/preview", settingHandler.PreviewTotal)

	// Orders
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.GetOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Post("/orders/:id/cancel", middleware.RequireRole(model.RoleManager, model.RoleAdmin), orderHandler.CancelOrder)
	protected.Patch("/orders/:id/receipt", orderHandler.MarkReceiptPrinted)

	// Payment methods
	protected.Get("/payment-methods", func(c *fiber.Ctx) error {
		methods, err := paymentRepo.FindAllActive()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment methods"})
		}
		return c.JSON(fiber.Map{"payment_methods": methods})
	})

	// Roles
	protected.Get("/roles", func(c *fiber.Ctx) error {
		roles, err := roleRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
		}
		return c.JSON(fiber.Map{"roles": roles})
	})

	// Users (admin only)
	admin := protected.Group("/users", middleware.RequireRole(model.RoleAdmin))
	admin.Get("/", userHandler.GetUsers)
	admin.Get("/:id", userHandler.GetUser)
	admin.Post("/", userHandler.CreateUser)
	admin.Put("/:id", userHandler.UpdateUser)
	admin.Delete("/:id", userHandler.DeleteUser)

	// Reports
	reports := protected.Group("/reports", middleware.RequireRole(model.RoleManager, model.RoleAdmin))
	reports.Get("/daily-sales", reportHandler.GetDailySales)
	reports.Get("/summary", reportHandler.GetSalesSummary)
	reports.Get("/stock-movements", reportHandler.GetStockMovementChart)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates roles, the admin account, payment methods and checkout
// settings on first boot. Every seed is idempotent.
func seedDefaults(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	paymentRepo := repository.NewPaymentMethodRepo(db)

	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}
	if err := paymentRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed payment methods: %v", err)
	}

	seedTaxSettings(db)
	seedRoundingSetting(db)

	if _, err := userRepo.FindByEmail("admin@pancongkece.id"); err != nil {
		adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
		if err != nil {
			log.Printf("Warning: admin role missing, skipping admin seed: %v", err)
			return
		}

		admin := &model.User{
			Email:    "admin@pancongkece.id",
			FullName: "Administrator",
			RoleID:   &adminRole.ID,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@pancongkece.id / admin123")
		}
	}
}

func seedTaxSettings(db *gorm.DB) {
	defaults := []model.TaxSetting{
		{
			SettingKey:         model.ServiceChargeKey,
			Name:               "Service Charge",
			Percentage:         5,
			Description:        "Service charge applied to the discounted subtotal",
			ApplyBeforeService: true,
			IsActive:           true,
		},
		{
			SettingKey:  "ppn",
			Name:        "PPN",
			Percentage:  11,
			Description: "Value added tax, compounds over the service charge",
			IsActive:    true,
		},
	}

	repo := repository.NewTaxSettingRepo(db)
	for _, setting := range defaults {
		if _, err := repo.FindByKey(setting.SettingKey); err == nil {
			continue
		}
		setting.CreatedBy = "system"
		if err := repo.Save(&setting); err != nil {
			log.Printf("Warning: Failed to seed tax setting %s: %v", setting.SettingKey, err)
		}
	}
}

func seedRoundingSetting(db *gorm.DB) {
	repo := repository.NewRoundingSettingRepo(db)
	existing, err := repo.Get()
	if err != nil {
		log.Printf("Warning: Failed to read rounding setting: %v", err)
		return
	}
	if existing == nil {
		setting := model.DefaultRoundingSetting()
		setting.CreatedBy = "system"
		if err := repo.Save(&setting); err != nil {
			log.Printf("Warning: Failed to seed rounding setting: %v", err)
		}
	}
}
