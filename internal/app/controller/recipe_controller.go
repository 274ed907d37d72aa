package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/service"
	"github.com/jmoroz/cookbook-backend/internal/export"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
)

type RecipeController struct {
	recipeService service.RecipeService
	markService   service.MarkService
	cartService   service.CartService
}

func NewRecipeController(
	recipeService service.RecipeService,
	markService service.MarkService,
	cartService service.CartService,
) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
		markService:   markService,
		cartService:   cartService,
	}
}

type RecipeRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Image       string                     `json:"image"`
	Text        string                     `json:"text"`
	CookingTime int                        `json:"cooking_time" binding:"required"`
	TagIDs      []uint                     `json:"tags"`
	Ingredients []service.IngredientAmount `json:"ingredients" binding:"required"`
}

func toRecipeInput(req RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.TagIDs,
		Ingredients: req.Ingredients,
	}
}

// RecipeResponse decorates a recipe with the caller's mark state.
type RecipeResponse struct {
	model.Recipe
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

// GetAllRecipes returns recipes matching the query filters.
// GET /api/v1/recipes?author=&tags=&is_favorited=&is_in_shopping_cart=&limit=&offset=
func (ctrl *RecipeController) GetAllRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params, err := parseListParams(c)
	if err != nil {
		log.Warn("Invalid recipe listing parameters", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	currentUserID := middleware.GetOptionalUserID(c)

	recipes, err := ctrl.recipeService.ListRecipes(params, currentUserID)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to fetch recipes", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch recipes",
		})
		return
	}

	responses, err := ctrl.decorate(recipes, currentUserID)
	if err != nil {
		log.Error("Failed to resolve mark state", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch recipes",
		})
		return
	}

	log.Info("Recipes fetched successfully", map[string]interface{}{
		"count": len(responses),
	})

	c.JSON(http.StatusOK, gin.H{
		"recipes": responses,
		"count":   len(responses),
	})
}

// GetRecipeByID returns a recipe by ID
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipeByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.GetRecipe(id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Recipe not found",
			})
			return
		}
		log.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch recipe",
		})
		return
	}

	currentUserID := middleware.GetOptionalUserID(c)
	responses, err := ctrl.decorate([]model.Recipe{*recipe}, currentUserID)
	if err != nil {
		log.Error("Failed to resolve mark state", err, map[string]interface{}{
			"recipe_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch recipe",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": responses[0],
	})
}

// CreateRecipe creates a new recipe for the authenticated user
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(userID, toRecipeInput(req))
	if err != nil {
		ctrl.respondWriteError(c, err, "Failed to create recipe")
		return
	}

	log.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"recipe": recipe,
	})
}

// UpdateRecipe replaces a recipe's fields, tags and ingredient list
// PUT /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe update request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	recipe, err := ctrl.recipeService.UpdateRecipe(userID, id, toRecipeInput(req))
	if err != nil {
		ctrl.respondWriteError(c, err, "Failed to update recipe")
		return
	}

	log.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": id,
		"user_id":   userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// DeleteRecipe removes the user's own recipe
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := ctrl.recipeService.DeleteRecipe(userID, id); err != nil {
		ctrl.respondWriteError(c, err, "Failed to delete recipe")
		return
	}

	log.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": id,
		"user_id":   userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted",
	})
}

// AddToFavorites marks a recipe as favorite
// POST /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) AddToFavorites(c *gin.Context) {
	ctrl.mark(c, model.ListFavorites, true)
}

// RemoveFromFavorites unmarks a favorite recipe
// DELETE /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) RemoveFromFavorites(c *gin.Context) {
	ctrl.mark(c, model.ListFavorites, false)
}

// AddToShoppingCart puts a recipe in the shopping cart
// POST /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) AddToShoppingCart(c *gin.Context) {
	ctrl.mark(c, model.ListCart, true)
}

// RemoveFromShoppingCart takes a recipe out of the shopping cart
// DELETE /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) RemoveFromShoppingCart(c *gin.Context) {
	ctrl.mark(c, model.ListCart, false)
}

// DownloadShoppingCart streams the consolidated shopping list
// GET /api/v1/recipes/download_shopping_cart?format=txt|xlsx
func (ctrl *RecipeController) DownloadShoppingCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	format := c.DefaultQuery("format", "txt")
	if format != "txt" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported format %q, use txt or xlsx", format),
		})
		return
	}

	totals, err := ctrl.cartService.ShoppingList(userID)
	if err != nil {
		log.Error("Failed to build shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build shopping list",
		})
		return
	}

	log.Info("Shopping list downloaded", map[string]interface{}{
		"user_id": userID,
		"entries": len(totals),
		"format":  format,
	})

	if format == "xlsx" {
		data, err := export.ShoppingListXLSX(totals)
		if err != nil {
			log.Error("Failed to render shopping list workbook", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to render shopping list",
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="shopping_list.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.ShoppingListText(totals)))
}

func (ctrl *RecipeController) mark(c *gin.Context, kind model.ListKind, add bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var err error
	if add {
		err = ctrl.markService.Mark(userID, id, kind)
	} else {
		err = ctrl.markService.Unmark(userID, id, kind)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Recipe not found",
			})
		case errors.Is(err, service.ErrAlreadyMarked):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Recipe is already in the list",
			})
		case errors.Is(err, service.ErrNotMarked):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Recipe is not in the list",
			})
		case service.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			log.Error("Failed to change recipe mark", err, map[string]interface{}{
				"recipe_id": id,
				"user_id":   userID,
				"list_kind": kind,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to change recipe mark",
			})
		}
		return
	}

	log.Info("Recipe mark changed", map[string]interface{}{
		"recipe_id": id,
		"user_id":   userID,
		"list_kind": kind,
		"added":     add,
	})

	status := http.StatusCreated
	if !add {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"message": "OK",
	})
}

func (ctrl *RecipeController) respondWriteError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only the recipe author can modify it",
		})
	case errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrTagNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error(fallback, err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fallback,
		})
	}
}

// decorate attaches the caller's favorite and cart state to each recipe.
func (ctrl *RecipeController) decorate(recipes []model.Recipe, userID *uint) ([]RecipeResponse, error) {
	responses := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		favorited, err := ctrl.markService.IsMarked(userID, recipe.ID, model.ListFavorites)
		if err != nil {
			return nil, err
		}
		inCart, err := ctrl.markService.IsMarked(userID, recipe.ID, model.ListCart)
		if err != nil {
			return nil, err
		}
		responses = append(responses, RecipeResponse{
			Recipe:           recipe,
			IsFavorited:      favorited,
			IsInShoppingCart: inCart,
		})
	}
	return responses, nil
}

func parseRecipeID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid recipe ID",
		})
		return 0, false
	}
	return uint(id), true
}

func parseListParams(c *gin.Context) (service.ListRecipesParams, error) {
	params := service.ListRecipesParams{
		Limit:  20,
		Offset: 0,
	}

	if authorStr := c.Query("author"); authorStr != "" {
		author, err := strconv.ParseUint(authorStr, 10, 32)
		if err != nil {
			return params, fmt.Errorf("invalid author ID %q", authorStr)
		}
		authorID := uint(author)
		params.AuthorID = &authorID
	}

	// tags is repeatable and also accepts a comma-separated list
	for _, raw := range c.QueryArray("tags") {
		for _, slug := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(slug); trimmed != "" {
				params.TagSlugs = append(params.TagSlugs, trimmed)
			}
		}
	}

	params.Favorited = parseBoolFlag(c.Query("is_favorited"))
	params.InCart = parseBoolFlag(c.Query("is_in_shopping_cart"))

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return params, fmt.Errorf("invalid limit %q", limitStr)
		}
		params.Limit = limit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return params, fmt.Errorf("invalid offset %q", offsetStr)
		}
		params.Offset = offset
	}

	return params, nil
}

func parseBoolFlag(value string) bool {
	return value == "1" || strings.EqualFold(value, "true")
}
