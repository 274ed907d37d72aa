package service

import (
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
)

// IngredientTotal is one consolidated shopping-list line: the combined
// amount of an ingredient across every recipe in the cart.
type IngredientTotal struct {
	Name   string
	Unit   string
	Amount int
}

// CartService turns the recipes in a user's shopping cart into a
// consolidated ingredient list.
type CartService interface {
	ShoppingList(userID uint) ([]IngredientTotal, error)
}

type cartService struct {
	markRepo repository.MarkRepository
}

func NewCartService(markRepo repository.MarkRepository) CartService {
	return &cartService{markRepo: markRepo}
}

func (s *cartService) ShoppingList(userID uint) ([]IngredientTotal, error) {
	logger.Debug("Building shopping list", map[string]interface{}{
		"user_id": userID,
	})

	recipes, err := s.markRepo.CartRecipes(userID)
	if err != nil {
		logger.Error("Failed to load cart recipes", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	totals := AggregateIngredients(recipes)

	logger.Info("Shopping list built successfully", map[string]interface{}{
		"user_id": userID,
		"recipes": len(recipes),
		"entries": len(totals),
	})
	return totals, nil
}

// AggregateIngredients sums recipe ingredient amounts keyed by
// (name, unit). Two ingredients with the same name but different units
// stay separate lines. Entries appear in first-encounter order, so the
// totals are deterministic for a given recipe order.
func AggregateIngredients(recipes []model.Recipe) []IngredientTotal {
	type key struct {
		name string
		unit string
	}

	index := make(map[key]int)
	totals := make([]IngredientTotal, 0)

	for _, recipe := range recipes {
		for _, item := range recipe.Ingredients {
			k := key{name: item.Ingredient.Name, unit: item.Ingredient.MeasurementUnit}
			if pos, ok := index[k]; ok {
				totals[pos].Amount += item.Amount
				continue
			}
			index[k] = len(totals)
			totals = append(totals, IngredientTotal{
				Name:   item.Ingredient.Name,
				Unit:   item.Ingredient.MeasurementUnit,
				Amount: item.Amount,
			})
		}
	}

	return totals
}
