package services

import (
	"errors"

	"recipebook/config"
	"recipebook/models"

	"gorm.io/gorm"
)

// CatalogService reads the ingredient and tag reference data. The
// catalog is immutable through the API; recipes only point into it.
type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// ListIngredients returns ingredients whose name starts with the given
// prefix; an empty prefix returns the whole catalog.
func (s *CatalogService) ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	q := config.DB.Model(&models.Ingredient{}).Order("name")
	if namePrefix != "" {
		q = q.Where("name LIKE ?", namePrefix+"%")
	}
	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := config.DB.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *CatalogService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := config.DB.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *CatalogService) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := config.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}
