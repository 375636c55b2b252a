package models

import "time"

type Recipe struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AuthorID    uint   `gorm:"not null;index"`
	Author      User   `gorm:"constraint:OnDelete:CASCADE"`
	Name        string `gorm:"size:200;not null;index"`
	Text        string `gorm:"type:text;not null"`
	Image       string
	CookingTime int `gorm:"not null"` // minutes, >= 1

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

// One ingredient line of a recipe. The (recipe, ingredient) pair is
// unique; the quantity is recipe-specific.
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE"`
	Quantity     float64    `gorm:"not null"` // >= 1
}
