package controllers

import (
	"net/http"

	"recipebook/services"

	"github.com/gin-gonic/gin"
)

func ListIngredients(c *gin.Context) {
	svc := services.NewCatalogService()
	ingredients, err := svc.ListIngredients(c.Query("name"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewCatalogService()
	ingredient, err := svc.GetIngredient(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
