package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMergesSameNameAndUnit(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "alice")
	shopper := createUser(t, "bob")
	saltG := createIngredient(t, "Salt", "g")
	dinner := createTag(t, "dinner")

	soup := createRecipe(t, author.ID, "Soup",
		[]IngredientAmount{{ID: saltG.ID, Quantity: 5}}, []uint{dinner.ID})
	stew := createRecipe(t, author.ID, "Stew",
		[]IngredientAmount{{ID: saltG.ID, Quantity: 10}}, []uint{dinner.ID})

	relations := NewRelationService()
	_, err := relations.AddToCart(shopper.ID, soup.ID)
	require.NoError(t, err)
	_, err = relations.AddToCart(shopper.ID, stew.ID)
	require.NoError(t, err)

	entries, err := NewCartService().Aggregate(shopper.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Salt", entries[0].Name)
	assert.Equal(t, "g", entries[0].MeasurementUnit)
	assert.Equal(t, 15.0, entries[0].Quantity)
	assert.Equal(t, "Salt (g)", entries[0].Label())
}

func TestAggregateKeepsDistinctUnitsSeparate(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "alice")
	shopper := createUser(t, "bob")
	saltG := createIngredient(t, "Salt", "g")
	saltKg := createIngredient(t, "Salt", "kg")
	dinner := createTag(t, "dinner")

	soup := createRecipe(t, author.ID, "Soup",
		[]IngredientAmount{{ID: saltG.ID, Quantity: 5}}, []uint{dinner.ID})
	pickles := createRecipe(t, author.ID, "Pickles",
		[]IngredientAmount{{ID: saltKg.ID, Quantity: 2}}, []uint{dinner.ID})

	relations := NewRelationService()
	_, err := relations.AddToCart(shopper.ID, soup.ID)
	require.NoError(t, err)
	_, err = relations.AddToCart(shopper.ID, pickles.ID)
	require.NoError(t, err)

	entries, err := NewCartService().Aggregate(shopper.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Salt (g)", entries[0].Label())
	assert.Equal(t, 5.0, entries[0].Quantity)
	assert.Equal(t, "Salt (kg)", entries[1].Label())
	assert.Equal(t, 2.0, entries[1].Quantity)
}

func TestAggregateMergesAcrossIngredientRecords(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "alice")
	shopper := createUser(t, "bob")
	// Two distinct catalog rows sharing name and unit merge on purpose.
	saltA := createIngredient(t, "Salt", "g")
	saltB := createIngredient(t, "Salt", "g")
	dinner := createTag(t, "dinner")

	soup := createRecipe(t, author.ID, "Soup",
		[]IngredientAmount{{ID: saltA.ID, Quantity: 3}}, []uint{dinner.ID})
	stew := createRecipe(t, author.ID, "Stew",
		[]IngredientAmount{{ID: saltB.ID, Quantity: 4}}, []uint{dinner.ID})

	relations := NewRelationService()
	_, err := relations.AddToCart(shopper.ID, soup.ID)
	require.NoError(t, err)
	_, err = relations.AddToCart(shopper.ID, stew.ID)
	require.NoError(t, err)

	entries, err := NewCartService().Aggregate(shopper.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7.0, entries[0].Quantity)
}

func TestAggregateEmptyCart(t *testing.T) {
	setupTestDB(t)
	shopper := createUser(t, "bob")

	entries, err := NewCartService().Aggregate(shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderShoppingList(t *testing.T) {
	svc := NewCartService()
	doc := svc.RenderShoppingList("bob", []ShoppingListEntry{
		{Name: "Salt", MeasurementUnit: "g", Quantity: 15},
		{Name: "Sugar", MeasurementUnit: "kg", Quantity: 1.5},
	})
	assert.Equal(t, "Shopping list for bob:\nSalt (g) - 15\nSugar (kg) - 1.5\n", doc)
}
