package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoroz/cookbook-backend/internal/app/service"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
)

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{
		ingredientService: ingredientService,
	}
}

// GetAllIngredients returns the ingredient catalog, ordered by the
// search terms when the name parameter is given (repeatable).
// GET /api/v1/ingredients?name=...
func (ctrl *IngredientController) GetAllIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	terms := c.QueryArray("name")

	ingredients, err := ctrl.ingredientService.ListIngredients(terms)
	if err != nil {
		log.Error("Failed to fetch ingredients", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch ingredients",
		})
		return
	}

	log.Info("Ingredients fetched successfully", map[string]interface{}{
		"count": len(ingredients),
	})

	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// GetIngredientByID returns an ingredient by ID
// GET /api/v1/ingredients/:id
func (ctrl *IngredientController) GetIngredientByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid ingredient ID format", map[string]interface{}{
			"ingredient_id": idStr,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ingredient ID",
		})
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredientByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ingredient not found",
			})
			return
		}
		log.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch ingredient",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient": ingredient,
	})
}
