package service

import (
	"errors"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type IngredientService interface {
	// ListIngredients returns the catalog, ordered by the search terms
	// when any are given (see SearchIngredients for the ordering contract).
	ListIngredients(terms []string) ([]model.Ingredient, error)
	GetIngredientByID(id uint) (*model.Ingredient, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo}
}

func (s *ingredientService) ListIngredients(terms []string) ([]model.Ingredient, error) {
	logger.Debug("Listing ingredients", map[string]interface{}{
		"terms": terms,
	})

	ingredients, err := s.ingredientRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list ingredients", err, nil)
		return nil, err
	}

	result := SearchIngredients(ingredients, terms, DefaultIngredientSearchFields())

	logger.Info("Ingredients listed successfully", map[string]interface{}{
		"terms": terms,
		"count": len(result),
	})
	return result, nil
}

func (s *ingredientService) GetIngredientByID(id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Ingredient not found", map[string]interface{}{
				"ingredient_id": id,
			})
			return nil, ErrIngredientNotFound
		}
		logger.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		return nil, err
	}
	return ingredient, nil
}
