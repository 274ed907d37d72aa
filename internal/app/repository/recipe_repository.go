package repository

import (
	"time"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter restricts the recipe listing. All set fields compose
// with AND; TagSlugs is OR across the given slugs. RecipeIDs narrows
// the result to an explicit id set (used for favorites/cart views);
// a non-nil empty slice yields an empty result.
type RecipeFilter struct {
	AuthorID  *uint
	TagSlugs  []string
	RecipeIDs []uint
	Limit     int
	Offset    int
}

type RecipeRepository interface {
	Create(recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error
	Update(recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error
	FindByID(id uint) (*model.Recipe, error)
	FindWithFilter(filter RecipeFilter) ([]model.Recipe, error)
	Delete(id uint) error
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
}

// Create inserts the recipe row first, then its tag set and the
// ingredient associations (one bulk insert), all in one transaction.
func (r *recipeRepository) Create(recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"name":             recipe.Name,
		"author_id":        recipe.AuthorID,
		"tag_count":        len(tags),
		"ingredient_count": len(ingredients),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"name":      recipe.Name,
			"author_id": recipe.AuthorID,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
		"name":      recipe.Name,
	})
	return nil
}

// Update saves the recipe fields and replaces the full tag set and the
// full ingredient-association set with the new ones. Associations are
// cleared then re-inserted, never merged, in a single transaction.
func (r *recipeRepository) Update(recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error {
	logger.Debug("Updating recipe in database", map[string]interface{}{
		"recipe_id":        recipe.ID,
		"tag_count":        len(tags),
		"ingredient_count": len(ingredients),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update recipe in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}

	logger.Debug("Recipe updated in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return nil
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.baseQuery().First(&recipe, id).Error; err != nil {
		logger.Error("Failed to find recipe by ID in database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindWithFilter(filter RecipeFilter) ([]model.Recipe, error) {
	logger.Debug("Finding recipes with filter", map[string]interface{}{
		"author_id":  filter.AuthorID,
		"tag_slugs":  filter.TagSlugs,
		"recipe_ids": filter.RecipeIDs,
		"limit":      filter.Limit,
		"offset":     filter.Offset,
	})

	query := r.baseQuery()

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}

	if filter.RecipeIDs != nil {
		if len(filter.RecipeIDs) == 0 {
			return []model.Recipe{}, nil
		}
		query = query.Where("recipes.id IN ?", filter.RecipeIDs)
	}

	query = query.Order("recipes.created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes with filter", err, map[string]interface{}{
			"author_id": filter.AuthorID,
			"tag_slugs": filter.TagSlugs,
		})
		return nil, err
	}

	logger.Debug("Recipes found with filter", map[string]interface{}{
		"count": len(recipes),
	})
	return recipes, nil
}

func (r *recipeRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Recipe{}, id).Error; err != nil {
		logger.Error("Failed to delete recipe from database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return err
	}

	logger.Debug("Recipe deleted from database", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}

// PurgeDeletedBefore hard-deletes recipes whose soft-delete timestamp
// is older than the cutoff, along with their association rows.
func (r *recipeRepository) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	var purged int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Unscoped().Model(&model.Recipe{}).
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("recipe_id IN ?", ids).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM marked_favorite_recipes WHERE recipe_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM marked_cart_recipes WHERE recipe_id IN ?", ids).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Where("id IN ?", ids).Delete(&model.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to purge soft-deleted recipes", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	return purged, nil
}
