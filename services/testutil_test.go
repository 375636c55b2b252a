package services

import (
	"fmt"
	"testing"

	"recipebook/config"
	"recipebook/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points config.DB at a fresh in-memory sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same :memory: db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func createAdmin(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		IsAdmin:  true,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func createIngredient(t *testing.T, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, config.DB.Create(&ingredient).Error)
	return ingredient
}

var tagColorSeq int

func createTag(t *testing.T, name string) models.Tag {
	t.Helper()
	tagColorSeq++
	tag := models.Tag{
		Name:  name,
		Color: fmt.Sprintf("#%06X", tagColorSeq),
		Slug:  name,
	}
	require.NoError(t, config.DB.Create(&tag).Error)
	return tag
}

// createRecipe builds a valid recipe through the composition service.
func createRecipe(t *testing.T, authorID uint, name string, ingredients []IngredientAmount, tagIDs []uint) RecipeView {
	t.Helper()
	view, err := NewRecipeService().Create(authorID, RecipeInput{
		Name:        name,
		Text:        "some cooking steps",
		CookingTime: 30,
		Ingredients: ingredients,
		Tags:        tagIDs,
	})
	require.NoError(t, err)
	return *view
}
