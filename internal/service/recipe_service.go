package service

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostComponent mirrors one node of the BOM tree in a cost breakdown.
type CostComponent struct {
	Type         string          `json:"type"` // "material" or "sub_recipe"
	Name         string          `json:"name"`
	Code         string          `json:"code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	SubBreakdown []CostComponent `json:"sub_breakdown,omitempty"`
}

// CostBreakdown is the resolved cost of one unit of a product.
type CostBreakdown struct {
	TotalCost decimal.Decimal `json:"total_cost"`
	Breakdown []CostComponent `json:"breakdown"`
}

// MaterialRequirement is one leaf raw material needed to produce a single
// unit of a product, with sub-recipes flattened out.
type MaterialRequirement struct {
	MaterialID   uuid.UUID
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
}

type RecipeService interface {
	// CalculateProductCost resolves the product's active recipe into a unit
	// cost with a nested breakdown. Missing product or recipe yields a zero
	// cost, not an error; a cyclic BOM yields ErrCyclicRecipe.
	CalculateProductCost(productID uuid.UUID) (*CostBreakdown, error)
	// FlattenRequirements resolves the leaf raw materials needed for one
	// unit of the product, multiplying quantities down through sub-recipes.
	FlattenRequirements(productID uuid.UUID) ([]MaterialRequirement, error)

	CreateRecipe(recipe *model.Recipe, userID string) error
	AddIngredient(ingredient *model.RecipeIngredient, userID string) error
	GetRecipesByProduct(productID uuid.UUID) ([]model.Recipe, error)
	GetRecipeByID(id uuid.UUID) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
}

func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo}
}

func (s *recipeService) CalculateProductCost(productID uuid.UUID) (*CostBreakdown, error) {
	visited := map[uuid.UUID]bool{}
	return s.resolveCost(productID, visited)
}

func (s *recipeService) resolveCost(productID uuid.UUID, visited map[uuid.UUID]bool) (*CostBreakdown, error) {
	recipe, err := s.recipeRepo.FindActiveByProduct(productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		// No active recipe: the product has zero resolvable cost.
		return &CostBreakdown{TotalCost: decimal.Zero, Breakdown: []CostComponent{}}, nil
	}

	if visited[recipe.ID] {
		return nil, ErrCyclicRecipe
	}
	visited[recipe.ID] = true
	defer delete(visited, recipe.ID)

	result := &CostBreakdown{TotalCost: decimal.Zero, Breakdown: []CostComponent{}}

	for _, ingredient := range recipe.Ingredients {
		switch {
		case ingredient.MaterialID != nil && ingredient.Material != nil:
			// Leaf cost comes from the denormalized snapshot, not the
			// material's current price.
			cost := ingredient.TotalCost
			result.TotalCost = result.TotalCost.Add(cost)
			result.Breakdown = append(result.Breakdown, CostComponent{
				Type:      "material",
				Name:      ingredient.Material.Name,
				Code:      ingredient.Material.Code,
				Quantity:  ingredient.Quantity,
				Unit:      ingredient.Unit,
				UnitCost:  ingredient.UnitCost,
				TotalCost: cost,
			})

		case ingredient.SubRecipeID != nil && ingredient.SubRecipe != nil:
			sub, err := s.resolveCost(ingredient.SubRecipe.ProductID, visited)
			if err != nil {
				return nil, err
			}
			cost := sub.TotalCost.Mul(ingredient.Quantity)
			result.TotalCost = result.TotalCost.Add(cost)

			name := "Sub Recipe"
			if ingredient.SubRecipe.Product != nil {
				name = ingredient.SubRecipe.Product.Name
			}
			result.Breakdown = append(result.Breakdown, CostComponent{
				Type:         "sub_recipe",
				Name:         name,
				Quantity:     ingredient.Quantity,
				Unit:         ingredient.Unit,
				UnitCost:     sub.TotalCost,
				TotalCost:    cost,
				SubBreakdown: sub.Breakdown,
			})
		}
		// Rows with neither reference are invalid data; skipped defensively,
		// BeforeSave prevents new ones.
	}

	result.TotalCost = result.TotalCost.Round(2)
	return result, nil
}

func (s *recipeService) FlattenRequirements(productID uuid.UUID) ([]MaterialRequirement, error) {
	visited := map[uuid.UUID]bool{}
	byMaterial := map[uuid.UUID]*MaterialRequirement{}
	var order []uuid.UUID

	if err := s.flatten(productID, decimal.NewFromInt(1), visited, byMaterial, &order); err != nil {
		return nil, err
	}

	requirements := make([]MaterialRequirement, 0, len(order))
	for _, id := range order {
		requirements = append(requirements, *byMaterial[id])
	}
	return requirements, nil
}

func (s *recipeService) flatten(productID uuid.UUID, multiplier decimal.Decimal,
	visited map[uuid.UUID]bool, byMaterial map[uuid.UUID]*MaterialRequirement, order *[]uuid.UUID) error {

	recipe, err := s.recipeRepo.FindActiveByProduct(productID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return nil
	}

	if visited[recipe.ID] {
		return ErrCyclicRecipe
	}
	visited[recipe.ID] = true
	defer delete(visited, recipe.ID)

	for _, ingredient := range recipe.Ingredients {
		switch {
		case ingredient.MaterialID != nil && ingredient.Material != nil:
			required := ingredient.Quantity.Mul(multiplier)
			if existing, ok := byMaterial[*ingredient.MaterialID]; ok {
				existing.Quantity = existing.Quantity.Add(required)
			} else {
				byMaterial[*ingredient.MaterialID] = &MaterialRequirement{
					MaterialID:   *ingredient.MaterialID,
					MaterialName: ingredient.Material.Name,
					Unit:         ingredient.Unit,
					Quantity:     required,
					UnitCost:     ingredient.UnitCost,
				}
				*order = append(*order, *ingredient.MaterialID)
			}

		case ingredient.SubRecipeID != nil && ingredient.SubRecipe != nil:
			err := s.flatten(ingredient.SubRecipe.ProductID, multiplier.Mul(ingredient.Quantity), visited, byMaterial, order)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *recipeService) CreateRecipe(recipe *model.Recipe, userID string) error {
	if errs := validator.ValidateStruct(recipe); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	recipe.CreatedBy = userID
	recipe.UpdatedBy = userID
	return s.recipeRepo.Create(recipe)
}

func (s *recipeService) AddIngredient(ingredient *model.RecipeIngredient, userID string) error {
	ingredient.CreatedBy = userID
	ingredient.UpdatedBy = userID

	// Reject a self-referencing sub-recipe up front; deeper cycles are
	// caught by the resolver's visited set.
	if ingredient.SubRecipeID != nil && *ingredient.SubRecipeID == ingredient.RecipeID {
		return ErrCyclicRecipe
	}
	return s.recipeRepo.AddIngredient(ingredient)
}

func (s *recipeService) GetRecipesByProduct(productID uuid.UUID) ([]model.Recipe, error) {
	return s.recipeRepo.FindByProduct(productID)
}

func (s *recipeService) GetRecipeByID(id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return recipe, err
}
