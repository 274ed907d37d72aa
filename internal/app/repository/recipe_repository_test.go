package repository

import (
	"testing"
	"time"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeRepositoryTest(t *testing.T) (RecipeRepository, *model.User, []model.Ingredient, []model.Tag, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "author@example.com",
		PasswordHash: "hash",
		Username:     "author",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	ingredients := []model.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "egg", MeasurementUnit: "pcs"},
	}
	testDB.Create(&ingredients)

	tags := []model.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#4A61DD", Slug: "dinner"},
	}
	testDB.Create(&tags)

	return NewRecipeRepository(testDB), user, ingredients, tags, testDB
}

func TestRecipeRepository_Create_WithAssociations(t *testing.T) {
	repo, user, ingredients, tags, _ := setupRecipeRepositoryTest(t)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Pancakes",
		CookingTime: 20,
	}
	err := repo.Create(recipe, tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 300},
		{IngredientID: ingredients[1].ID, Amount: 2},
	})
	require.NoError(t, err)
	require.NotZero(t, recipe.ID)

	fetched, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Tags, 1)
	assert.Len(t, fetched.Ingredients, 2)
	assert.Equal(t, "author", fetched.Author.Username)
}

func TestRecipeRepository_Update_ReplacesAssociations(t *testing.T) {
	repo, user, ingredients, tags, testDB := setupRecipeRepositoryTest(t)

	recipe := &model.Recipe{AuthorID: user.ID, Name: "Pancakes", CookingTime: 20}
	require.NoError(t, repo.Create(recipe, tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 300},
		{IngredientID: ingredients[1].ID, Amount: 2},
	}))

	recipe.Name = "Crepes"
	recipe.Tags = nil
	recipe.Ingredients = nil
	require.NoError(t, repo.Update(recipe, tags[1:], []model.RecipeIngredient{
		{IngredientID: ingredients[1].ID, Amount: 4},
	}))

	fetched, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", fetched.Name)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "dinner", fetched.Tags[0].Slug)
	require.Len(t, fetched.Ingredients, 1)
	assert.Equal(t, 4, fetched.Ingredients[0].Amount)

	// Old association rows are gone.
	var count int64
	testDB.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecipeRepository_FindWithFilter_TagSlugsNoDuplicates(t *testing.T) {
	repo, user, ingredients, tags, _ := setupRecipeRepositoryTest(t)

	// One recipe carrying both tags must appear once even when both
	// slugs match.
	recipe := &model.Recipe{AuthorID: user.ID, Name: "Roast", CookingTime: 90}
	require.NoError(t, repo.Create(recipe, tags, []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 100},
	}))

	recipes, err := repo.FindWithFilter(RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}})
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestRecipeRepository_FindWithFilter_EmptyIDSet(t *testing.T) {
	repo, user, ingredients, tags, _ := setupRecipeRepositoryTest(t)

	recipe := &model.Recipe{AuthorID: user.ID, Name: "Roast", CookingTime: 90}
	require.NoError(t, repo.Create(recipe, tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 100},
	}))

	// A non-nil empty id set means "restrict to nothing".
	recipes, err := repo.FindWithFilter(RecipeFilter{RecipeIDs: []uint{}})
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// A nil id set means "no restriction".
	recipes, err = repo.FindWithFilter(RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestRecipeRepository_FindWithFilter_Author(t *testing.T) {
	repo, user, ingredients, tags, testDB := setupRecipeRepositoryTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Username:     "other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	mine := &model.Recipe{AuthorID: user.ID, Name: "Mine", CookingTime: 5}
	require.NoError(t, repo.Create(mine, tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 10},
	}))
	theirs := &model.Recipe{AuthorID: other.ID, Name: "Theirs", CookingTime: 5}
	require.NoError(t, repo.Create(theirs, nil, []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 10},
	}))

	recipes, err := repo.FindWithFilter(RecipeFilter{AuthorID: &user.ID})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mine", recipes[0].Name)
}

func TestRecipeRepository_Delete_SoftThenPurge(t *testing.T) {
	repo, user, ingredients, tags, testDB := setupRecipeRepositoryTest(t)

	recipe := &model.Recipe{AuthorID: user.ID, Name: "Old", CookingTime: 5}
	require.NoError(t, repo.Create(recipe, tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 10},
	}))

	require.NoError(t, repo.Delete(recipe.ID))

	// Soft-deleted: invisible to queries, row still present.
	_, err := repo.FindByID(recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	testDB.Unscoped().Model(&model.Recipe{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Not old enough to purge yet.
	purged, err := repo.PurgeDeletedBefore(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	// Purge with a future cutoff removes the row and its associations.
	purged, err = repo.PurgeDeletedBefore(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	testDB.Unscoped().Model(&model.Recipe{}).Count(&count)
	assert.Equal(t, int64(0), count)
	testDB.Model(&model.RecipeIngredient{}).Count(&count)
	assert.Equal(t, int64(0), count)
	testDB.Table("recipe_tags").Count(&count)
	assert.Equal(t, int64(0), count)
}
