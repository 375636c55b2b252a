package controllers

import (
	"net/http"
	"strconv"

	"recipebook/middlewares"
	"recipebook/services"
	"recipebook/utils"

	"github.com/gin-gonic/gin"
)

func ListUsers(c *gin.Context) {
	viewerID := middlewares.CurrentUserID(c)
	page, limit := utils.PageParams(c)

	svc := services.NewUserService()
	views, total, err := svc.List(viewerID, c.Query("search"), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewPage(c, total, page, limit, views))
}

func Me(c *gin.Context) {
	viewerID := middlewares.CurrentUserID(c)

	svc := services.NewUserService()
	view, err := svc.Get(viewerID, viewerID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID := middlewares.CurrentUserID(c)

	svc := services.NewUserService()
	view, err := svc.Get(viewerID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func recipesLimitFromQuery(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("recipes_limit")); err == nil && v > 0 {
		return v
	}
	return 0
}

func Subscriptions(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	page, limit := utils.PageParams(c)

	svc := services.NewUserService()
	views, total, err := svc.Subscriptions(userID, page, limit, recipesLimitFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewPage(c, total, page, limit, views))
}

func Subscribe(c *gin.Context) {
	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middlewares.CurrentUserID(c)

	relations := services.NewRelationService()
	if err := relations.Subscribe(userID, authorID); err != nil {
		serviceError(c, err)
		return
	}

	users := services.NewUserService()
	view, err := users.Subscription(authorID, recipesLimitFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func Unsubscribe(c *gin.Context) {
	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.NewRelationService()
	if err := svc.Unsubscribe(middlewares.CurrentUserID(c), authorID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
