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

func setupUserServiceTest(t *testing.T) (UserService, *model.User, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userService := NewUserService(repository.NewUserRepository(testDB))

	subscriber := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hash",
		Username:     "reader",
		Role:         model.RoleUser,
	}
	testDB.Create(subscriber)

	author := &model.User{
		Email:        "chef@example.com",
		PasswordHash: "hash",
		Username:     "chef",
		Role:         model.RoleUser,
	}
	testDB.Create(author)

	return userService, subscriber, author, testDB
}

func TestUserService_Subscribe_Success(t *testing.T) {
	userService, subscriber, author, _ := setupUserServiceTest(t)

	err := userService.Subscribe(subscriber.ID, author.ID)
	require.NoError(t, err)

	subscribed, err := userService.IsSubscribed(subscriber.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	// Not symmetrical.
	subscribed, err = userService.IsSubscribed(author.ID, subscriber.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func TestUserService_Subscribe_Twice(t *testing.T) {
	userService, subscriber, author, _ := setupUserServiceTest(t)

	require.NoError(t, userService.Subscribe(subscriber.ID, author.ID))

	err := userService.Subscribe(subscriber.ID, author.ID)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestUserService_Subscribe_Self(t *testing.T) {
	userService, subscriber, _, _ := setupUserServiceTest(t)

	err := userService.Subscribe(subscriber.ID, subscriber.ID)
	assert.ErrorIs(t, err, ErrSelfSubscription)
}

func TestUserService_Subscribe_UnknownAuthor(t *testing.T) {
	userService, subscriber, _, _ := setupUserServiceTest(t)

	err := userService.Subscribe(subscriber.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Unsubscribe(t *testing.T) {
	userService, subscriber, author, _ := setupUserServiceTest(t)

	require.NoError(t, userService.Subscribe(subscriber.ID, author.ID))
	require.NoError(t, userService.Unsubscribe(subscriber.ID, author.ID))

	subscribed, err := userService.IsSubscribed(subscriber.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	err = userService.Unsubscribe(subscriber.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestUserService_ListSubscriptions_WithRecipes(t *testing.T) {
	userService, subscriber, author, testDB := setupUserServiceTest(t)

	recipe := &model.Recipe{AuthorID: author.ID, Name: "Soup", CookingTime: 30}
	testDB.Create(recipe)

	require.NoError(t, userService.Subscribe(subscriber.ID, author.ID))

	authors, err := userService.ListSubscriptions(subscriber.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "chef", authors[0].Username)
	require.Len(t, authors[0].Recipes, 1)
	assert.Equal(t, "Soup", authors[0].Recipes[0].Name)
}
