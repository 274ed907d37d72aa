package repository

import (
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *model.Ingredient) error
	FindAll() ([]model.Ingredient, error)
	FindByID(id uint) (*model.Ingredient, error)
	FindByIDs(ids []uint) ([]model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ingredient *model.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		logger.Error("Failed to create ingredient in database", err, map[string]interface{}{
			"name": ingredient.Name,
			"unit": ingredient.MeasurementUnit,
		})
		return err
	}

	logger.Debug("Ingredient created in database", map[string]interface{}{
		"ingredient_id": ingredient.ID,
		"name":          ingredient.Name,
	})
	return nil
}

func (r *ingredientRepository) FindAll() ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := r.db.Order("name ASC").Find(&ingredients).Error; err != nil {
		logger.Error("Failed to list ingredients from database", err, nil)
		return nil, err
	}

	logger.Debug("Ingredients listed from database", map[string]interface{}{
		"count": len(ingredients),
	})
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		logger.Error("Failed to find ingredient by ID in database", err, map[string]interface{}{
			"ingredient_id": id,
		})
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}

	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients by IDs in database", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return ingredients, nil
}
