package handler

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecipeHandler struct {
	recipeService service.RecipeService
}

func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// CreateRecipe adds a recipe version for a product
// POST /api/v1/recipes
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var recipe model.Recipe
	if err := c.BodyParser(&recipe); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.recipeService.CreateRecipe(&recipe, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}

// AddIngredient attaches a material or sub-recipe line
// POST /api/v1/recipes/:id/ingredients
func (h *RecipeHandler) AddIngredient(c *fiber.Ctx) error {
	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid recipe ID"})
	}

	var ingredient model.RecipeIngredient
	if err := c.BodyParser(&ingredient); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	ingredient.RecipeID = recipeID

	userID, _ := c.Locals("user_id").(string)
	if err := h.recipeService.AddIngredient(&ingredient, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Ingredient added successfully",
		"ingredient": ingredient,
	})
}

// GetRecipesByProduct lists versions for one product
// GET /api/v1/products/:id/recipes
func (h *RecipeHandler) GetRecipesByProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	recipes, err := h.recipeService.GetRecipesByProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recipes": recipes})
}

// GetProductCost resolves the recipe into a unit cost breakdown
// GET /api/v1/products/:id/cost
func (h *RecipeHandler) GetProductCost(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	cost, err := h.recipeService.CalculateProductCost(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cost)
}
