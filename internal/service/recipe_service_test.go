package service

import (
	"errors"
	"testing"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
)

func TestCalculateProductCostNested(t *testing.T) {
	env := newTestEnv(t)

	// Pancong topping keju: 50g batter (sub-recipe) + 20g cheese.
	batterProduct := env.createRecipeProduct(t, "SUB-BATTER", 0)
	batterRecipe := env.createRecipe(t, batterProduct.ID, "1.0")
	flour := env.createMaterial(t, "FLOUR", "10000", "0.02")
	coconut := env.createMaterial(t, "COCONUT", "5000", "0.05")
	env.addMaterialIngredient(t, batterRecipe.ID, flour, "100", "0.02", "2000")
	env.addMaterialIngredient(t, batterRecipe.ID, coconut, "20", "0.05", "1000")

	cheese := env.createMaterial(t, "CHEESE", "2000", "0.1")
	pancong := env.createRecipeProduct(t, "PCG-KEJU", 15000)
	pancongRecipe := env.createRecipe(t, pancong.ID, "1.0")
	env.addSubRecipeIngredient(t, pancongRecipe.ID, batterRecipe.ID, "2")
	env.addMaterialIngredient(t, pancongRecipe.ID, cheese, "20", "0.1", "2000")

	cost, err := env.recipes.CalculateProductCost(pancong.ID)
	if err != nil {
		t.Fatalf("CalculateProductCost: %v", err)
	}

	// batter = 2000 + 1000 = 3000 per unit, x2 = 6000, + cheese 2000 = 8000
	if !cost.TotalCost.Equal(mustDecimal(t, "8000")) {
		t.Errorf("TotalCost = %s, want 8000", cost.TotalCost)
	}
	if len(cost.Breakdown) != 2 {
		t.Fatalf("len(Breakdown) = %d, want 2", len(cost.Breakdown))
	}

	var sawSub bool
	for _, component := range cost.Breakdown {
		if component.Type == "sub_recipe" {
			sawSub = true
			if !component.TotalCost.Equal(mustDecimal(t, "6000")) {
				t.Errorf("sub-recipe cost = %s, want 6000", component.TotalCost)
			}
			if len(component.SubBreakdown) != 2 {
				t.Errorf("len(SubBreakdown) = %d, want 2", len(component.SubBreakdown))
			}
		}
	}
	if !sawSub {
		t.Error("no sub_recipe component in breakdown")
	}
}

func TestCalculateProductCostNoRecipe(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PCG-PLAIN", 10000, 5)

	cost, err := env.recipes.CalculateProductCost(product.ID)
	if err != nil {
		t.Fatalf("CalculateProductCost: %v", err)
	}
	if !cost.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", cost.TotalCost)
	}
	if len(cost.Breakdown) != 0 {
		t.Errorf("len(Breakdown) = %d, want 0", len(cost.Breakdown))
	}
}

func TestCalculateProductCostDetectsCycle(t *testing.T) {
	env := newTestEnv(t)

	productA := env.createRecipeProduct(t, "CYC-A", 1000)
	productB := env.createRecipeProduct(t, "CYC-B", 1000)
	recipeA := env.createRecipe(t, productA.ID, "1.0")
	recipeB := env.createRecipe(t, productB.ID, "1.0")

	env.addSubRecipeIngredient(t, recipeA.ID, recipeB.ID, "1")
	env.addSubRecipeIngredient(t, recipeB.ID, recipeA.ID, "1")

	if _, err := env.recipes.CalculateProductCost(productA.ID); !errors.Is(err, ErrCyclicRecipe) {
		t.Fatalf("err = %v, want ErrCyclicRecipe", err)
	}
	if _, err := env.recipes.FlattenRequirements(productA.ID); !errors.Is(err, ErrCyclicRecipe) {
		t.Fatalf("flatten err = %v, want ErrCyclicRecipe", err)
	}
}

func TestCalculateProductCostSharedSubRecipe(t *testing.T) {
	// A diamond is not a cycle: the same sub-recipe may appear under two
	// different parents of one product.
	env := newTestEnv(t)

	base := env.createRecipeProduct(t, "DIA-BASE", 0)
	baseRecipe := env.createRecipe(t, base.ID, "1.0")
	sugar := env.createMaterial(t, "SUGAR", "1000", "0.01")
	env.addMaterialIngredient(t, baseRecipe.ID, sugar, "50", "0.01", "500")

	mid1 := env.createRecipeProduct(t, "DIA-M1", 0)
	mid1Recipe := env.createRecipe(t, mid1.ID, "1.0")
	env.addSubRecipeIngredient(t, mid1Recipe.ID, baseRecipe.ID, "1")

	mid2 := env.createRecipeProduct(t, "DIA-M2", 0)
	mid2Recipe := env.createRecipe(t, mid2.ID, "1.0")
	env.addSubRecipeIngredient(t, mid2Recipe.ID, baseRecipe.ID, "2")

	top := env.createRecipeProduct(t, "DIA-TOP", 9000)
	topRecipe := env.createRecipe(t, top.ID, "1.0")
	env.addSubRecipeIngredient(t, topRecipe.ID, mid1Recipe.ID, "1")
	env.addSubRecipeIngredient(t, topRecipe.ID, mid2Recipe.ID, "1")

	cost, err := env.recipes.CalculateProductCost(top.ID)
	if err != nil {
		t.Fatalf("CalculateProductCost: %v", err)
	}
	// 500 (via mid1) + 1000 (via mid2)
	if !cost.TotalCost.Equal(mustDecimal(t, "1500")) {
		t.Errorf("TotalCost = %s, want 1500", cost.TotalCost)
	}
}

func TestFlattenRequirementsMergesMaterials(t *testing.T) {
	env := newTestEnv(t)

	flour := env.createMaterial(t, "FLOUR-F", "10000", "0.02")
	milk := env.createMaterial(t, "MILK-F", "5000", "0.03")

	batter := env.createRecipeProduct(t, "FLT-BATTER", 0)
	batterRecipe := env.createRecipe(t, batter.ID, "1.0")
	env.addMaterialIngredient(t, batterRecipe.ID, flour, "100", "0.02", "2000")
	env.addMaterialIngredient(t, batterRecipe.ID, milk, "50", "0.03", "1500")

	// Top-level recipe dusts with extra flour on top of the batter's share.
	pancong := env.createRecipeProduct(t, "FLT-TOP", 12000)
	pancongRecipe := env.createRecipe(t, pancong.ID, "1.0")
	env.addSubRecipeIngredient(t, pancongRecipe.ID, batterRecipe.ID, "2")
	env.addMaterialIngredient(t, pancongRecipe.ID, flour, "10", "0.02", "200")

	requirements, err := env.recipes.FlattenRequirements(pancong.ID)
	if err != nil {
		t.Fatalf("FlattenRequirements: %v", err)
	}
	if len(requirements) != 2 {
		t.Fatalf("len(requirements) = %d, want 2", len(requirements))
	}

	byName := map[string]string{}
	for _, req := range requirements {
		byName[req.MaterialName] = req.Quantity.String()
	}
	// flour: 10 direct + 100 x 2 via batter = 210; milk: 50 x 2 = 100
	if byName["Material FLOUR-F"] != "210" {
		t.Errorf("flour requirement = %s, want 210", byName["Material FLOUR-F"])
	}
	if byName["Material MILK-F"] != "100" {
		t.Errorf("milk requirement = %s, want 100", byName["Material MILK-F"])
	}
}

func TestAddIngredientRejectsSelfReference(t *testing.T) {
	env := newTestEnv(t)
	product := env.createRecipeProduct(t, "SELF-REF", 1000)
	recipe := env.createRecipe(t, product.ID, "1.0")

	err := env.recipes.AddIngredient(&model.RecipeIngredient{
		RecipeID:    recipe.ID,
		SubRecipeID: &recipe.ID,
		Quantity:    mustDecimal(t, "1"),
		Unit:        "pcs",
	}, "tester")
	if !errors.Is(err, ErrCyclicRecipe) {
		t.Fatalf("err = %v, want ErrCyclicRecipe", err)
	}
}
