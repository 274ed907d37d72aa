package service

import (
	"testing"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIngredientServiceTest(t *testing.T) IngredientService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	ingredients := []model.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salted butter", MeasurementUnit: "g"},
	}
	testDB.Create(&ingredients)

	return NewIngredientService(repository.NewIngredientRepository(testDB))
}

func TestIngredientService_ListIngredients_NoTerms(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	ingredients, err := ingredientService.ListIngredients(nil)
	require.NoError(t, err)

	// Catalog order is alphabetical when no search terms are given.
	assert.Equal(t, []string{"salt", "salted butter", "sugar"}, names(ingredients))
}

func TestIngredientService_ListIngredients_WithTerms(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	ingredients, err := ingredientService.ListIngredients([]string{"salt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"salt", "salted butter"}, names(ingredients))
}

func TestIngredientService_GetIngredientByID_NotFound(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	_, err := ingredientService.GetIngredientByID(9999)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}
