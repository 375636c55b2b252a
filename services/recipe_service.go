package services

import (
	"errors"
	"unicode/utf8"

	"recipebook/config"
	"recipebook/models"

	"gorm.io/gorm"
)

const maxRecipeNameLength = 200

type RecipeService struct{}

func NewRecipeService() *RecipeService {
	return &RecipeService{}
}

type IngredientAmount struct {
	ID       uint    `json:"id"`
	Quantity float64 `json:"quantity"`
}

type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Ingredients []IngredientAmount
	Tags        []uint
}

// RecipeUpdate carries only the fields present in a PATCH body.
// Nil scalar pointers and nil lists leave the stored value untouched;
// a supplied list replaces the whole set.
type RecipeUpdate struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	Ingredients []IngredientAmount
	Tags        []uint
}

type RecipeFilter struct {
	AuthorID  uint
	TagSlugs  []string
	Favorited bool
	InCart    bool
}

func validateRecipeName(name string) error {
	if name == "" {
		return validationErr("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxRecipeNameLength {
		return validationErr("name", "name must be at most 200 characters")
	}
	return nil
}

func validateCookingTime(minutes int) error {
	if minutes < 1 {
		return validationErr("cooking_time", "cooking time must be at least 1 minute")
	}
	return nil
}

func validateIngredients(tx *gorm.DB, items []IngredientAmount) error {
	if len(items) == 0 {
		return validationErr("ingredients", "at least one ingredient is required")
	}
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return validationErr("ingredients", "ingredients must not repeat")
		}
		seen[it.ID] = true
		if it.Quantity < 1 {
			return validationErr("ingredients", "ingredient quantity must be at least 1")
		}
		ids = append(ids, it.ID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrIngredientNotFound
	}
	return nil
}

func validateTags(tx *gorm.DB, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return validationErr("tags", "at least one tag is required")
	}
	seen := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			return validationErr("tags", "tags must not repeat")
		}
		seen[id] = true
	}
	var count int64
	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return ErrTagNotFound
	}
	return nil
}

// replaceTags is the set-replacement primitive for the recipe tag set:
// the resulting set equals exactly what was submitted.
func replaceTags(tx *gorm.DB, recipeID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec(
			"INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)", recipeID, tagID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceIngredients(tx *gorm.DB, recipeID uint, items []IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	for _, it := range items {
		row := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: it.ID,
			Quantity:     it.Quantity,
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return validationErr("ingredients", "ingredients must not repeat")
			}
			return err
		}
	}
	return nil
}

// Create persists the recipe scalar row, its tag set and its ingredient
// list as one transaction. The author is always the authenticated
// caller. A failure at any step rolls back the whole recipe.
func (s *RecipeService) Create(authorID uint, in RecipeInput) (*RecipeView, error) {
	if err := validateRecipeName(in.Name); err != nil {
		return nil, err
	}
	if err := validateCookingTime(in.CookingTime); err != nil {
		return nil, err
	}

	var recipeID uint
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := validateIngredients(tx, in.Ingredients); err != nil {
			return err
		}
		if err := validateTags(tx, in.Tags); err != nil {
			return err
		}

		recipe := models.Recipe{
			AuthorID:    authorID,
			Name:        in.Name,
			Text:        in.Text,
			Image:       in.Image,
			CookingTime: in.CookingTime,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, recipe.ID, in.Tags); err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, in.Ingredients); err != nil {
			return err
		}
		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipeID, authorID)
}

// Update touches only the supplied fields. Supplied tag/ingredient
// lists replace the stored sets wholesale. Only the author or an admin
// may update.
func (s *RecipeService) Update(caller models.User, recipeID uint, in RecipeUpdate) (*RecipeView, error) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.AuthorID != caller.ID && !caller.IsAdmin {
			return ErrForbidden
		}

		// All validation happens before any write.
		if in.Name != nil {
			if err := validateRecipeName(*in.Name); err != nil {
				return err
			}
		}
		if in.CookingTime != nil {
			if err := validateCookingTime(*in.CookingTime); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := validateIngredients(tx, in.Ingredients); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if err := validateTags(tx, in.Tags); err != nil {
				return err
			}
		}

		if in.Name != nil {
			recipe.Name = *in.Name
		}
		if in.Text != nil {
			recipe.Text = *in.Text
		}
		if in.CookingTime != nil {
			recipe.CookingTime = *in.CookingTime
		}
		if in.Image != nil {
			recipe.Image = *in.Image
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if in.Tags != nil {
			if err := replaceTags(tx, recipe.ID, in.Tags); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := replaceIngredients(tx, recipe.ID, in.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipeID, caller.ID)
}

// Delete removes the recipe and every join row referencing it, in one
// transaction. Only the author or an admin may delete.
func (s *RecipeService) Delete(caller models.User, recipeID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.AuthorID != caller.ID && !caller.IsAdmin {
			return ErrForbidden
		}

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, recipeID).Error
	})
}

// Get returns the consolidated read projection of one recipe. viewerID
// 0 means anonymous: every viewer-relative flag is false.
func (s *RecipeService) Get(recipeID, viewerID uint) (*RecipeView, error) {
	var recipe models.Recipe
	err := config.DB.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	views, err := projectRecipes([]models.Recipe{recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List applies the catalog filters and returns one page of projections
// plus the unpaginated total.
func (s *RecipeService) List(viewerID uint, f RecipeFilter, page, limit int) ([]RecipeView, int64, error) {
	filtered := func() *gorm.DB {
		q := config.DB.Model(&models.Recipe{})
		if f.AuthorID != 0 {
			q = q.Where("author_id = ?", f.AuthorID)
		}
		if len(f.TagSlugs) > 0 {
			q = q.Where("recipes.id IN (?)", config.DB.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs))
		}
		if f.Favorited && viewerID != 0 {
			q = q.Where("EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)", viewerID)
		}
		if f.InCart && viewerID != 0 {
			q = q.Where("EXISTS (SELECT 1 FROM shopping_cart_items WHERE shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?)", viewerID)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := filtered().
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	views, err := projectRecipes(recipes, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// projectRecipes resolves the viewer-relative fields for a batch of
// recipes with one membership query per relation, never per recipe.
func projectRecipes(recipes []models.Recipe, viewerID uint) ([]RecipeView, error) {
	favorited := make(map[uint]bool)
	inCart := make(map[uint]bool)
	following := make(map[uint]bool)

	if viewerID != 0 && len(recipes) > 0 {
		recipeIDs := make([]uint, 0, len(recipes))
		authorSet := make(map[uint]bool)
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			authorSet[r.AuthorID] = true
		}
		authorIDs := make([]uint, 0, len(authorSet))
		for id := range authorSet {
			authorIDs = append(authorIDs, id)
		}

		var favIDs []uint
		if err := config.DB.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
			Pluck("recipe_id", &favIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			favorited[id] = true
		}

		var cartIDs []uint
		if err := config.DB.Model(&models.ShoppingCartItem{}).
			Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
			Pluck("recipe_id", &cartIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range cartIDs {
			inCart[id] = true
		}

		var followedIDs []uint
		if err := config.DB.Model(&models.Follow{}).
			Where("follower_id = ? AND author_id IN ?", viewerID, authorIDs).
			Pluck("author_id", &followedIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range followedIDs {
			following[id] = true
		}
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		ingredients := make([]RecipeIngredientView, 0, len(r.Ingredients))
		for _, ri := range r.Ingredients {
			ingredients = append(ingredients, RecipeIngredientView{
				ID:              ri.IngredientID,
				Name:            ri.Ingredient.Name,
				MeasurementUnit: ri.Ingredient.MeasurementUnit,
				Quantity:        ri.Quantity,
			})
		}
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		views = append(views, RecipeView{
			ID:               r.ID,
			Tags:             tags,
			Author:           userView(r.Author, following[r.AuthorID]),
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}
