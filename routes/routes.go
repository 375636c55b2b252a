package routes

import (
	"recipebook/controllers"
	"recipebook/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Recipe catalog: reads are open with optional viewer context,
	// mutations require authentication.
	recipes := r.Group("/recipes")
	{
		recipes.GET("/", middlewares.OptionalAuthMiddleware(), controllers.ListRecipes)
		recipes.GET("/:id/", middlewares.OptionalAuthMiddleware(), controllers.GetRecipe)

		authed := recipes.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.POST("/", controllers.CreateRecipe)
			authed.PATCH("/:id/", controllers.UpdateRecipe)
			authed.DELETE("/:id/", controllers.DeleteRecipe)

			authed.GET("/download_shopping_cart/", controllers.DownloadShoppingCart)
			authed.POST("/:id/shopping_cart/", controllers.AddToShoppingCart)
			authed.DELETE("/:id/shopping_cart/", controllers.RemoveFromShoppingCart)
			authed.POST("/:id/favorite/", controllers.AddFavorite)
			authed.DELETE("/:id/favorite/", controllers.RemoveFavorite)
		}
	}

	// Reference data
	r.GET("/ingredients/", controllers.ListIngredients)
	r.GET("/ingredients/:id/", controllers.GetIngredient)
	r.GET("/tags/", controllers.ListTags)
	r.GET("/tags/:id/", controllers.GetTag)

	users := r.Group("/users")
	{
		users.GET("/", middlewares.OptionalAuthMiddleware(), controllers.ListUsers)
		users.GET("/:id/", middlewares.OptionalAuthMiddleware(), controllers.GetUser)

		authed := users.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.GET("/me/", controllers.Me)
			authed.GET("/subscriptions/", controllers.Subscriptions)
			authed.POST("/:id/subscribe/", controllers.Subscribe)
			authed.DELETE("/:id/subscribe/", controllers.Unsubscribe)
		}
	}

	return r
}
