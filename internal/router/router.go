package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoroz/cookbook-backend/config"
	"github.com/jmoroz/cookbook-backend/internal/app/controller"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	ingredientController *controller.IngredientController
	tagController        *controller.TagController
	recipeController     *controller.RecipeController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	ingredientController *controller.IngredientController,
	tagController *controller.TagController,
	recipeController *controller.RecipeController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		ingredientController: ingredientController,
		tagController:        tagController,
		recipeController:     recipeController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Cookbook API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.PUT("/password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		users := v1.Group("/users")
		{
			users.GET("/subscriptions",
				r.authMiddleware.Authenticate(),
				r.userController.GetSubscriptions,
			)
			users.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.userController.GetUserByID)
			users.POST("/:id/subscribe",
				r.authMiddleware.Authenticate(),
				r.userController.Subscribe,
			)
			users.DELETE("/:id/subscribe",
				r.authMiddleware.Authenticate(),
				r.userController.Unsubscribe,
			)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.GetAllIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredientByID)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.GetAllTags)
			tags.GET("/:id", r.tagController.GetTagByID)
			tags.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.CreateTag,
			)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetAllRecipes)
			recipes.GET("/download_shopping_cart",
				r.authMiddleware.Authenticate(),
				r.recipeController.DownloadShoppingCart,
			)
			recipes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetRecipeByID)

			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.CreateRecipe)
			recipes.PUT("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.DeleteRecipe)

			recipes.POST("/:id/favorite",
				r.authMiddleware.Authenticate(),
				r.recipeController.AddToFavorites,
			)
			recipes.DELETE("/:id/favorite",
				r.authMiddleware.Authenticate(),
				r.recipeController.RemoveFromFavorites,
			)
			recipes.POST("/:id/shopping_cart",
				r.authMiddleware.Authenticate(),
				r.recipeController.AddToShoppingCart,
			)
			recipes.DELETE("/:id/shopping_cart",
				r.authMiddleware.Authenticate(),
				r.recipeController.RemoveFromShoppingCart,
			)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/presigned-url",
				r.authMiddleware.Authenticate(),
				r.uploadController.GeneratePresignedURL,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
