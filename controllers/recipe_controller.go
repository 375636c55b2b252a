package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"recipebook/middlewares"
	"recipebook/services"
	"recipebook/utils"

	"github.com/gin-gonic/gin"
)

type recipeCreateBody struct {
	Name        string                      `json:"name" binding:"required"`
	Text        string                      `json:"text" binding:"required"`
	CookingTime int                         `json:"cooking_time" binding:"required"`
	Image       string                      `json:"image"`
	Ingredients []services.IngredientAmount `json:"ingredients"`
	Tags        []uint                      `json:"tags"`
}

type recipeUpdateBody struct {
	Name        *string                     `json:"name"`
	Text        *string                     `json:"text"`
	CookingTime *int                        `json:"cooking_time"`
	Image       *string                     `json:"image"`
	Ingredients []services.IngredientAmount `json:"ingredients"`
	Tags        []uint                      `json:"tags"`
}

// resolveImage uploads base64 data-URL payloads to S3 and returns the
// public URL; anything else is stored as-is.
func resolveImage(image string) (string, error) {
	if strings.HasPrefix(image, "data:") && utils.S3Enabled() {
		return utils.UploadBase64Image(image, "recipes")
	}
	return image, nil
}

func recipeFilterFromQuery(c *gin.Context) services.RecipeFilter {
	var f services.RecipeFilter
	if v, err := strconv.ParseUint(c.Query("author"), 10, 32); err == nil {
		f.AuthorID = uint(v)
	}
	f.TagSlugs = c.QueryArray("tags")
	f.Favorited = c.Query("is_favorited") == "1"
	f.InCart = c.Query("is_in_shopping_cart") == "1"
	return f
}

func ListRecipes(c *gin.Context) {
	viewerID := middlewares.CurrentUserID(c)
	page, limit := utils.PageParams(c)

	svc := services.NewRecipeService()
	views, total, err := svc.List(viewerID, recipeFilterFromQuery(c), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewPage(c, total, page, limit, views))
}

func GetRecipe(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID := middlewares.CurrentUserID(c)

	svc := services.NewRecipeService()
	view, err := svc.Get(recipeID, viewerID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func CreateRecipe(c *gin.Context) {
	var body recipeCreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := resolveImage(body.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The author is always the authenticated caller; a client-supplied
	// author field is never honored.
	authorID := middlewares.CurrentUserID(c)

	svc := services.NewRecipeService()
	view, err := svc.Create(authorID, services.RecipeInput{
		Name:        body.Name,
		Text:        body.Text,
		CookingTime: body.CookingTime,
		Image:       image,
		Ingredients: body.Ingredients,
		Tags:        body.Tags,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func UpdateRecipe(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body recipeUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller, err := services.FindUserByID(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	update := services.RecipeUpdate{
		Name:        body.Name,
		Text:        body.Text,
		CookingTime: body.CookingTime,
		Ingredients: body.Ingredients,
		Tags:        body.Tags,
	}
	if body.Image != nil {
		image, err := resolveImage(*body.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.Image = &image
	}

	svc := services.NewRecipeService()
	view, err := svc.Update(*caller, recipeID, update)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func DeleteRecipe(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller, err := services.FindUserByID(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	svc := services.NewRecipeService()
	if err := svc.Delete(*caller, recipeID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DownloadShoppingCart(c *gin.Context) {
	caller, err := services.FindUserByID(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	svc := services.NewCartService()
	entries, err := svc.Aggregate(caller.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	doc := svc.RenderShoppingList(caller.Username, entries)
	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}

func AddToShoppingCart(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewRelationService()
	minified, err := svc.AddToCart(middlewares.CurrentUserID(c), recipeID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, minified)
}

func RemoveFromShoppingCart(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewRelationService()
	if err := svc.RemoveFromCart(middlewares.CurrentUserID(c), recipeID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func AddFavorite(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewRelationService()
	minified, err := svc.AddFavorite(middlewares.CurrentUserID(c), recipeID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, minified)
}

func RemoveFavorite(c *gin.Context) {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewRelationService()
	if err := svc.RemoveFavorite(middlewares.CurrentUserID(c), recipeID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
