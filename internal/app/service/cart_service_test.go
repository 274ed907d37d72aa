package service

import (
	"testing"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ri(name, unit string, amount int) model.RecipeIngredient {
	return model.RecipeIngredient{
		Amount:     amount,
		Ingredient: model.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestAggregateIngredients_SumsByNameAndUnit(t *testing.T) {
	recipes := []model.Recipe{
		{Ingredients: []model.RecipeIngredient{
			ri("flour", "g", 200),
			ri("egg", "pcs", 2),
		}},
		{Ingredients: []model.RecipeIngredient{
			ri("flour", "g", 100),
		}},
	}

	totals := AggregateIngredients(recipes)

	assert.Equal(t, []IngredientTotal{
		{Name: "flour", Unit: "g", Amount: 300},
		{Name: "egg", Unit: "pcs", Amount: 2},
	}, totals)
}

func TestAggregateIngredients_DifferentUnitsStaySeparate(t *testing.T) {
	recipes := []model.Recipe{
		{Ingredients: []model.RecipeIngredient{
			ri("milk", "ml", 200),
			ri("milk", "g", 50),
		}},
	}

	totals := AggregateIngredients(recipes)

	assert.Equal(t, []IngredientTotal{
		{Name: "milk", Unit: "ml", Amount: 200},
		{Name: "milk", Unit: "g", Amount: 50},
	}, totals)
}

func TestAggregateIngredients_FirstSeenOrder(t *testing.T) {
	recipes := []model.Recipe{
		{Ingredients: []model.RecipeIngredient{
			ri("sugar", "g", 50),
			ri("flour", "g", 200),
		}},
		{Ingredients: []model.RecipeIngredient{
			ri("flour", "g", 100),
			ri("butter", "g", 80),
		}},
	}

	totals := AggregateIngredients(recipes)

	names := make([]string, 0, len(totals))
	for _, total := range totals {
		names = append(names, total.Name)
	}
	assert.Equal(t, []string{"sugar", "flour", "butter"}, names)
}

func TestAggregateIngredients_TotalIndependentOfRecipeOrder(t *testing.T) {
	a := model.Recipe{Ingredients: []model.RecipeIngredient{
		ri("flour", "g", 200),
		ri("egg", "pcs", 1),
	}}
	b := model.Recipe{Ingredients: []model.RecipeIngredient{
		ri("egg", "pcs", 3),
		ri("flour", "g", 100),
	}}

	forward := AggregateIngredients([]model.Recipe{a, b})
	reverse := AggregateIngredients([]model.Recipe{b, a})

	byKey := func(totals []IngredientTotal) map[string]int {
		out := make(map[string]int, len(totals))
		for _, total := range totals {
			out[total.Name+"/"+total.Unit] = total.Amount
		}
		return out
	}
	assert.Equal(t, byKey(forward), byKey(reverse))
	assert.Equal(t, 300, byKey(forward)["flour/g"])
	assert.Equal(t, 4, byKey(forward)["egg/pcs"])
}

func TestAggregateIngredients_Empty(t *testing.T) {
	assert.Empty(t, AggregateIngredients(nil))
	assert.Empty(t, AggregateIngredients([]model.Recipe{{}}))
}

func TestCartService_ShoppingList(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	markRepo := repository.NewMarkRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	cartService := NewCartService(markRepo)
	markService := NewMarkService(markRepo, recipeRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "tester",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	ingredients := []model.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "egg", MeasurementUnit: "pcs"},
	}
	testDB.Create(&ingredients)

	pancakes := &model.Recipe{AuthorID: user.ID, Name: "Pancakes", CookingTime: 20}
	testDB.Create(pancakes)
	testDB.Create(&[]model.RecipeIngredient{
		{RecipeID: pancakes.ID, IngredientID: ingredients[0].ID, Amount: 300},
		{RecipeID: pancakes.ID, IngredientID: ingredients[1].ID, Amount: 2},
	})

	omelette := &model.Recipe{AuthorID: user.ID, Name: "Omelette", CookingTime: 10}
	testDB.Create(omelette)
	testDB.Create(&[]model.RecipeIngredient{
		{RecipeID: omelette.ID, IngredientID: ingredients[1].ID, Amount: 3},
	})

	require.NoError(t, markService.Mark(user.ID, pancakes.ID, model.ListCart))
	require.NoError(t, markService.Mark(user.ID, omelette.ID, model.ListCart))

	totals, err := cartService.ShoppingList(user.ID)
	require.NoError(t, err)

	assert.Equal(t, []IngredientTotal{
		{Name: "flour", Unit: "g", Amount: 300},
		{Name: "egg", Unit: "pcs", Amount: 5},
	}, totals)
}

func TestCartService_ShoppingList_EmptyCart(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	markRepo := repository.NewMarkRepository(testDB)
	cartService := NewCartService(markRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "tester",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	totals, err := cartService.ShoppingList(user.ID)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
