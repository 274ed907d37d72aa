package repository

import (
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarkRepository interface {
	// GetOrCreate returns the per-user marked-recipes record, creating
	// it on first use. The upsert relies on the user_id unique index,
	// so concurrent first-time marks converge on one row.
	GetOrCreate(userID uint) (*model.MarkedRecipes, error)
	// Find returns gorm.ErrRecordNotFound when the user has no record yet.
	Find(userID uint) (*model.MarkedRecipes, error)
	Add(record *model.MarkedRecipes, recipe *model.Recipe, kind model.ListKind) error
	Remove(record *model.MarkedRecipes, recipe *model.Recipe, kind model.ListKind) error
	Contains(record *model.MarkedRecipes, recipeID uint, kind model.ListKind) (bool, error)
	RecipeIDs(record *model.MarkedRecipes, kind model.ListKind) ([]uint, error)
	// CartRecipes loads the user's cart recipes with their ingredient
	// associations, in stable id order.
	CartRecipes(userID uint) ([]model.Recipe, error)
}

type markRepository struct {
	db *gorm.DB
}

func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func listAssociation(kind model.ListKind) string {
	if kind == model.ListFavorites {
		return "Favorites"
	}
	return "Cart"
}

func listJoinTable(kind model.ListKind) string {
	if kind == model.ListFavorites {
		return "marked_favorite_recipes"
	}
	return "marked_cart_recipes"
}

func (r *markRepository) GetOrCreate(userID uint) (*model.MarkedRecipes, error) {
	record := model.MarkedRecipes{UserID: userID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil {
		logger.Error("Failed to upsert marked recipes record", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Re-fetch: on conflict the insert is a no-op and the id stays zero.
	var out model.MarkedRecipes
	if err := r.db.Where("user_id = ?", userID).First(&out).Error; err != nil {
		logger.Error("Failed to fetch marked recipes record", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &out, nil
}

func (r *markRepository) Find(userID uint) (*model.MarkedRecipes, error) {
	var record model.MarkedRecipes
	if err := r.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *markRepository) Add(record *model.MarkedRecipes, recipe *model.Recipe, kind model.ListKind) error {
	err := r.db.Model(record).Association(listAssociation(kind)).Append(recipe)
	if err != nil {
		logger.Error("Failed to add recipe mark in database", err, map[string]interface{}{
			"user_id":   record.UserID,
			"recipe_id": recipe.ID,
			"list_kind": kind,
		})
		return err
	}

	logger.Debug("Recipe mark added in database", map[string]interface{}{
		"user_id":   record.UserID,
		"recipe_id": recipe.ID,
		"list_kind": kind,
	})
	return nil
}

func (r *markRepository) Remove(record *model.MarkedRecipes, recipe *model.Recipe, kind model.ListKind) error {
	err := r.db.Model(record).Association(listAssociation(kind)).Delete(recipe)
	if err != nil {
		logger.Error("Failed to remove recipe mark in database", err, map[string]interface{}{
			"user_id":   record.UserID,
			"recipe_id": recipe.ID,
			"list_kind": kind,
		})
		return err
	}

	logger.Debug("Recipe mark removed in database", map[string]interface{}{
		"user_id":   record.UserID,
		"recipe_id": recipe.ID,
		"list_kind": kind,
	})
	return nil
}

func (r *markRepository) Contains(record *model.MarkedRecipes, recipeID uint, kind model.ListKind) (bool, error) {
	var count int64
	err := r.db.Table(listJoinTable(kind)).
		Where("marked_recipes_id = ? AND recipe_id = ?", record.ID, recipeID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check recipe mark in database", err, map[string]interface{}{
			"user_id":   record.UserID,
			"recipe_id": recipeID,
			"list_kind": kind,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *markRepository) RecipeIDs(record *model.MarkedRecipes, kind model.ListKind) ([]uint, error) {
	var ids []uint
	err := r.db.Table(listJoinTable(kind)).
		Where("marked_recipes_id = ?", record.ID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list marked recipe IDs from database", err, map[string]interface{}{
			"user_id":   record.UserID,
			"list_kind": kind,
		})
		return nil, err
	}
	return ids, nil
}

func (r *markRepository) CartRecipes(userID uint) ([]model.Recipe, error) {
	record, err := r.Find(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []model.Recipe{}, nil
		}
		return nil, err
	}

	ids, err := r.RecipeIDs(record, model.ListCart)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Recipe{}, nil
	}

	var recipes []model.Recipe
	err = r.db.Preload("Ingredients.Ingredient").
		Where("id IN ?", ids).
		Order("recipes.id ASC").
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to load cart recipes from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return recipes, nil
}
