package repository

import (
	"testing"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMarkRepositoryTest(t *testing.T) (MarkRepository, *model.User, []model.Recipe, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "tester",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	recipes := []model.Recipe{
		{AuthorID: user.ID, Name: "First", CookingTime: 10},
		{AuthorID: user.ID, Name: "Second", CookingTime: 20},
	}
	testDB.Create(&recipes)

	return NewMarkRepository(testDB), user, recipes, testDB
}

func TestMarkRepository_GetOrCreate_Idempotent(t *testing.T) {
	repo, user, _, testDB := setupMarkRepositoryTest(t)

	first, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.Model(&model.MarkedRecipes{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkRepository_Find_NoRecord(t *testing.T) {
	repo, user, _, _ := setupMarkRepositoryTest(t)

	_, err := repo.Find(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkRepository_AddRemoveContains(t *testing.T) {
	repo, user, recipes, _ := setupMarkRepositoryTest(t)

	record, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Add(record, &recipes[0], model.ListFavorites))

	has, err := repo.Contains(record, recipes[0].ID, model.ListFavorites)
	require.NoError(t, err)
	assert.True(t, has)

	// The cart set is untouched.
	has, err = repo.Contains(record, recipes[0].ID, model.ListCart)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.Remove(record, &recipes[0], model.ListFavorites))
	has, err = repo.Contains(record, recipes[0].ID, model.ListFavorites)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMarkRepository_RecipeIDs(t *testing.T) {
	repo, user, recipes, _ := setupMarkRepositoryTest(t)

	record, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Add(record, &recipes[0], model.ListCart))
	require.NoError(t, repo.Add(record, &recipes[1], model.ListCart))

	ids, err := repo.RecipeIDs(record, model.ListCart)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{recipes[0].ID, recipes[1].ID}, ids)

	ids, err = repo.RecipeIDs(record, model.ListFavorites)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMarkRepository_CartRecipes_PreloadsIngredients(t *testing.T) {
	repo, user, recipes, testDB := setupMarkRepositoryTest(t)

	ingredient := model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	testDB.Create(&ingredient)
	testDB.Create(&model.RecipeIngredient{
		RecipeID:     recipes[0].ID,
		IngredientID: ingredient.ID,
		Amount:       300,
	})

	record, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Add(record, &recipes[0], model.ListCart))

	cart, err := repo.CartRecipes(user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.Len(t, cart[0].Ingredients, 1)
	assert.Equal(t, "flour", cart[0].Ingredients[0].Ingredient.Name)
}

func TestMarkRepository_CartRecipes_NoRecord(t *testing.T) {
	repo, user, _, _ := setupMarkRepositoryTest(t)

	cart, err := repo.CartRecipes(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
