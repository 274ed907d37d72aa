package service

import (
	"testing"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMarkServiceTest(t *testing.T) (MarkService, *model.User, *model.Recipe, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	markRepo := repository.NewMarkRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	markService := NewMarkService(markRepo, recipeRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "tester",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Test Recipe",
		CookingTime: 10,
	}
	testDB.Create(recipe)

	return markService, user, recipe, testDB
}

func TestMarkService_Mark_CreatesRecordLazily(t *testing.T) {
	markService, user, recipe, testDB := setupMarkServiceTest(t)

	// No record until the first mark.
	var count int64
	testDB.Model(&model.MarkedRecipes{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	err := markService.Mark(user.ID, recipe.ID, model.ListFavorites)
	require.NoError(t, err)

	testDB.Model(&model.MarkedRecipes{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	marked, err := markService.IsMarked(&user.ID, recipe.ID, model.ListFavorites)
	require.NoError(t, err)
	assert.True(t, marked)
}

func TestMarkService_Mark_Twice(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))

	err := markService.Mark(user.ID, recipe.ID, model.ListFavorites)
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestMarkService_Mark_SingleRecordForBothLists(t *testing.T) {
	markService, user, recipe, testDB := setupMarkServiceTest(t)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))
	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListCart))

	var count int64
	testDB.Model(&model.MarkedRecipes{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkService_Mark_ListsAreIndependent(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))

	inCart, err := markService.IsMarked(&user.ID, recipe.ID, model.ListCart)
	require.NoError(t, err)
	assert.False(t, inCart)

	// Same recipe can sit in both lists at once.
	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListCart))

	favorited, err := markService.IsMarked(&user.ID, recipe.ID, model.ListFavorites)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestMarkService_Mark_RecipeNotFound(t *testing.T) {
	markService, user, _, _ := setupMarkServiceTest(t)

	err := markService.Mark(user.ID, 9999, model.ListFavorites)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestMarkService_Mark_InvalidKind(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	err := markService.Mark(user.ID, recipe.ID, model.ListKind("wishlist"))
	assert.True(t, IsValidationError(err))
}

func TestMarkService_Unmark_Success(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListCart))
	require.NoError(t, markService.Unmark(user.ID, recipe.ID, model.ListCart))

	marked, err := markService.IsMarked(&user.ID, recipe.ID, model.ListCart)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestMarkService_Unmark_NotMarked(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	// With a record but without the mark.
	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))
	err := markService.Unmark(user.ID, recipe.ID, model.ListCart)
	assert.ErrorIs(t, err, ErrNotMarked)
}

func TestMarkService_Unmark_WithoutRecord(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	err := markService.Unmark(user.ID, recipe.ID, model.ListFavorites)
	assert.ErrorIs(t, err, ErrNotMarked)
}

func TestMarkService_Unmark_OtherListKeepsMark(t *testing.T) {
	markService, user, recipe, _ := setupMarkServiceTest(t)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))
	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListCart))

	require.NoError(t, markService.Unmark(user.ID, recipe.ID, model.ListCart))

	favorited, err := markService.IsMarked(&user.ID, recipe.ID, model.ListFavorites)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestMarkService_IsMarked_Anonymous(t *testing.T) {
	markService, _, recipe, _ := setupMarkServiceTest(t)

	marked, err := markService.IsMarked(nil, recipe.ID, model.ListFavorites)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestMarkService_MarksArePerUser(t *testing.T) {
	markService, user, recipe, testDB := setupMarkServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Username:     "other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	require.NoError(t, markService.Mark(user.ID, recipe.ID, model.ListFavorites))

	marked, err := markService.IsMarked(&other.ID, recipe.ID, model.ListFavorites)
	require.NoError(t, err)
	assert.False(t, marked)
}
