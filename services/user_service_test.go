package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	user, err := RegisterUser("alice@example.com", "alice", "s3cret", "Alice", "Smith")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password)

	_, err = RegisterUser("alice@example.com", "alice2", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	token, err := AuthenticateUser("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = AuthenticateUser("alice@example.com", "wrong")
	assert.Error(t, err)
}

func TestListUsersPrefixSearch(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice")
	createUser(t, "alina")
	createUser(t, "bob")

	svc := NewUserService()
	views, total, err := svc.List(0, "ali", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "alina", views[1].Username)
}

func TestGetUserSubscribedFlag(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.NoError(t, NewRelationService().Subscribe(bob.ID, alice.ID))

	svc := NewUserService()

	view, err := svc.Get(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, view.IsSubscribed)

	// Anonymous and unrelated viewers see false.
	view, err = svc.Get(0, alice.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	_, err = svc.Get(0, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubscriptionsPayload(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	salt := createIngredient(t, "Salt", "g")
	dinner := createTag(t, "dinner")

	for _, name := range []string{"Soup", "Stew", "Salad"} {
		createRecipe(t, alice.ID, name,
			[]IngredientAmount{{ID: salt.ID, Quantity: 1}}, []uint{dinner.ID})
	}
	require.NoError(t, NewRelationService().Subscribe(bob.ID, alice.ID))

	svc := NewUserService()
	views, total, err := svc.Subscriptions(bob.ID, 1, 10, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)

	sub := views[0]
	assert.Equal(t, "alice", sub.Username)
	assert.True(t, sub.IsSubscribed)
	assert.EqualValues(t, 3, sub.RecipesCount)
	// The embedded list is capped by recipes_limit.
	assert.Len(t, sub.Recipes, 2)
}

func TestSubscriptionsEmpty(t *testing.T) {
	setupTestDB(t)
	bob := createUser(t, "bob")

	views, total, err := NewUserService().Subscriptions(bob.ID, 1, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, views)
}
