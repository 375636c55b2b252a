package services

import (
	"fmt"
	"strconv"
	"strings"

	"recipebook/config"
)

// CartService produces the consolidated shopping list for a user's
// cart. It is a pure read-side projection: nothing in the cart or the
// recipes is mutated.
type CartService struct{}

func NewCartService() *CartService {
	return &CartService{}
}

// ShoppingListEntry is one consolidated line: quantities of every cart
// recipe sharing the same (name, measurement unit) key are summed.
// The same ingredient name under two different units stays two entries.
type ShoppingListEntry struct {
	Name            string  `json:"name"`
	MeasurementUnit string  `json:"measurement_unit"`
	Quantity        float64 `json:"quantity"`
}

func (e ShoppingListEntry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.MeasurementUnit)
}

// Aggregate collapses the user's cart into one grouped, name-ordered
// list. An empty cart yields an empty list.
func (s *CartService) Aggregate(userID uint) ([]ShoppingListEntry, error) {
	var entries []ShoppingListEntry
	err := config.DB.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.quantity) AS quantity").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ShoppingListEntry{}
	}
	return entries, nil
}

// RenderShoppingList renders the aggregate as the downloadable text
// document served by the cart download endpoint.
func (s *CartService) RenderShoppingList(username string, entries []ShoppingListEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s:\n", username)
	for _, e := range entries {
		b.WriteString(e.Label())
		b.WriteString(" - ")
		b.WriteString(strconv.FormatFloat(e.Quantity, 'f', -1, 64))
		b.WriteString("\n")
	}
	return b.String()
}
