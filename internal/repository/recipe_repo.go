package repository

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	Update(recipe *model.Recipe) error
	FindByID(id uuid.UUID) (*model.Recipe, error)
	FindByProduct(productID uuid.UUID) ([]model.Recipe, error)
	// FindActiveByProduct returns the recipe used for costing and
	// deduction. Tie-break when several are active: highest version, then
	// newest. Returns (nil, nil) when the product has no active recipe.
	FindActiveByProduct(productID uuid.UUID) (*model.Recipe, error)
	AddIngredient(ingredient *model.RecipeIngredient) error
	RemoveIngredient(id uuid.UUID) error
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func (r *recipeRepo) Create(recipe *model.Recipe) error {
	return r.db.Create(recipe).Error
}

func (r *recipeRepo) Update(recipe *model.Recipe) error {
	return r.db.Save(recipe).Error
}

func (r *recipeRepo) FindByID(id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Ingredients").
		Preload("Ingredients.Material").
		Preload("Ingredients.SubRecipe").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) FindByProduct(productID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.
		Preload("Ingredients").
		Preload("Ingredients.Material").
		Where("product_id = ?", productID).
		Order("version DESC, created_at DESC").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) FindActiveByProduct(productID uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Ingredients").
		Preload("Ingredients.Material").
		Preload("Ingredients.SubRecipe").
		Preload("Ingredients.SubRecipe.Product").
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("version DESC, created_at DESC").
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) AddIngredient(ingredient *model.RecipeIngredient) error {
	return r.db.Create(ingredient).Error
}

func (r *recipeRepo) RemoveIngredient(id uuid.UUID) error {
	return r.db.Delete(&model.RecipeIngredient{}, "id = ?", id).Error
}
