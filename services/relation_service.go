package services

import (
	"errors"

	"recipebook/config"
	"recipebook/models"

	"gorm.io/gorm"
)

// RelationService manages the user↔recipe pair tables (favorites,
// shopping cart) and user↔user follows. Every mutation runs its
// existence check inside the same transaction as the write; the
// composite unique index is the backstop against concurrent adds, and
// a translated duplicate-key error is reported the same way as the
// pre-check.
type RelationService struct{}

func NewRelationService() *RelationService {
	return &RelationService{}
}

func (s *RelationService) AddFavorite(userID, recipeID uint) (*RecipeMinified, error) {
	return s.addRecipeRelation(userID, recipeID, func(tx *gorm.DB) (existsQuery *gorm.DB, row interface{}) {
		return tx.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID),
			&models.Favorite{UserID: userID, RecipeID: recipeID}
	})
}

func (s *RelationService) RemoveFavorite(userID, recipeID uint) error {
	return s.removeRecipeRelation(userID, recipeID, &models.Favorite{})
}

func (s *RelationService) AddToCart(userID, recipeID uint) (*RecipeMinified, error) {
	return s.addRecipeRelation(userID, recipeID, func(tx *gorm.DB) (existsQuery *gorm.DB, row interface{}) {
		return tx.Model(&models.ShoppingCartItem{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID),
			&models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}
	})
}

func (s *RelationService) RemoveFromCart(userID, recipeID uint) error {
	return s.removeRecipeRelation(userID, recipeID, &models.ShoppingCartItem{})
}

func (s *RelationService) addRecipeRelation(
	userID, recipeID uint,
	pair func(tx *gorm.DB) (existsQuery *gorm.DB, row interface{}),
) (*RecipeMinified, error) {
	var minified RecipeMinified
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		existsQuery, row := pair(tx)
		var count int64
		if err := existsQuery.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return err
		}
		minified = minifyRecipe(recipe)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &minified, nil
}

func (s *RelationService) removeRecipeRelation(userID, recipeID uint, model interface{}) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Subscribe records follower → author. Self-follows and duplicates are
// rejected before the write; the unique pair index catches the race.
func (s *RelationService) Subscribe(followerID, authorID uint) error {
	if followerID == authorID {
		return ErrSelfFollow
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND author_id = ?", followerID, authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		if err := tx.Create(&models.Follow{FollowerID: followerID, AuthorID: authorID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (s *RelationService) Unsubscribe(followerID, authorID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		result := tx.Where("follower_id = ? AND author_id = ?", followerID, authorID).
			Delete(&models.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
