package controllers

import (
	"net/http"

	"recipebook/services"

	"github.com/gin-gonic/gin"
)

func ListTags(c *gin.Context) {
	svc := services.NewCatalogService()
	tags, err := svc.ListTags()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewCatalogService()
	tag, err := svc.GetTag(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
