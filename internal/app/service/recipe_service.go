package service

import (
	"errors"
	"fmt"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeAuthor = errors.New("recipe does not belong to user")
)

// IngredientAmount is one entry of a recipe's ingredient list as
// submitted by the client.
type IngredientAmount struct {
	IngredientID uint `json:"id" binding:"required"`
	Amount       int  `json:"amount" binding:"required"`
}

// RecipeInput carries the writable recipe fields. On update the tag
// set and the ingredient list replace the existing ones wholesale: an
// entry omitted from Ingredients is removed from the recipe.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// ListRecipesParams are the already-parsed query parameters of the
// recipe listing. Favorited and InCart are mutually exclusive with
// each other and with AuthorID; TagSlugs composes with everything.
type ListRecipesParams struct {
	AuthorID  *uint
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Limit     int
	Offset    int
}

type RecipeService interface {
	ListRecipes(params ListRecipesParams, currentUserID *uint) ([]model.Recipe, error)
	GetRecipe(id uint) (*model.Recipe, error)
	CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(userID, recipeID uint, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(userID, recipeID uint) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	markRepo       repository.MarkRepository
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	markRepo repository.MarkRepository,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		markRepo:       markRepo,
	}
}

func (s *recipeService) ListRecipes(params ListRecipesParams, currentUserID *uint) ([]model.Recipe, error) {
	logger.Debug("Listing recipes", map[string]interface{}{
		"author_id": params.AuthorID,
		"tag_slugs": params.TagSlugs,
		"favorited": params.Favorited,
		"in_cart":   params.InCart,
	})

	if err := validateListParams(params); err != nil {
		logger.Warn("Rejected recipe listing parameters", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	filter := repository.RecipeFilter{
		AuthorID: params.AuthorID,
		TagSlugs: params.TagSlugs,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	if params.Favorited || params.InCart {
		kind := model.ListFavorites
		if params.InCart {
			kind = model.ListCart
		}

		// Anonymous callers get an empty listing, not an error.
		if currentUserID == nil {
			return []model.Recipe{}, nil
		}

		record, err := s.markRepo.Find(*currentUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.Recipe{}, nil
			}
			logger.Error("Failed to fetch marked recipes record", err, map[string]interface{}{
				"user_id": *currentUserID,
			})
			return nil, err
		}

		ids, err := s.markRepo.RecipeIDs(record, kind)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []uint{}
		}
		filter.RecipeIDs = ids
	}

	recipes, err := s.recipeRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list recipes", err, nil)
		return nil, err
	}

	logger.Info("Recipes listed successfully", map[string]interface{}{
		"count": len(recipes),
	})
	return recipes, nil
}

// validateListParams enforces the mutual-exclusion rules before any
// query runs.
func validateListParams(params ListRecipesParams) error {
	if params.Favorited && params.InCart {
		return NewValidationError("favorited and in-cart filters cannot be combined")
	}
	if params.AuthorID != nil && (params.Favorited || params.InCart) {
		return NewValidationError("author filter cannot be combined with favorited or in-cart filters")
	}
	return nil
}

func (s *recipeService) GetRecipe(id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Recipe not found", map[string]interface{}{
				"recipe_id": id,
			})
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"author_id": authorID,
		"name":      input.Name,
	})

	tags, ingredients, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	if err := s.recipeRepo.Create(recipe, tags, ingredients); err != nil {
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"author_id": authorID,
			"name":      input.Name,
		})
		return nil, err
	}

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return s.GetRecipe(recipe.ID)
}

func (s *recipeService) UpdateRecipe(userID, recipeID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Updating recipe", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	recipe, err := s.GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	if recipe.AuthorID != userID {
		logger.Warn("Recipe update denied: ownership mismatch", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
			"author_id": recipe.AuthorID,
		})
		return nil, ErrNotRecipeAuthor
	}

	tags, ingredients, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	// The author never changes on update.
	recipe.Name = input.Name
	recipe.Image = input.Image
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	recipe.Tags = nil
	recipe.Ingredients = nil

	if err := s.recipeRepo.Update(recipe, tags, ingredients); err != nil {
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return s.GetRecipe(recipeID)
}

func (s *recipeService) DeleteRecipe(userID, recipeID uint) error {
	logger.Info("Deleting recipe", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	recipe, err := s.GetRecipe(recipeID)
	if err != nil {
		return err
	}

	if recipe.AuthorID != userID {
		logger.Warn("Recipe deletion denied: ownership mismatch", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
			"author_id": recipe.AuthorID,
		})
		return ErrNotRecipeAuthor
	}

	if err := s.recipeRepo.Delete(recipeID); err != nil {
		logger.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return nil
}

// validateInput resolves and validates the tag and ingredient lists.
// It runs to completion before any write: unresolved ids fail with the
// not-found sentinels, duplicate ingredients and non-positive amounts
// fail with a ValidationError naming the offender.
func (s *recipeService) validateInput(input RecipeInput) ([]model.Tag, []model.RecipeIngredient, error) {
	if input.Name == "" {
		return nil, nil, NewValidationError("recipe name must not be empty")
	}
	if input.CookingTime <= 0 {
		return nil, nil, NewValidationError("cooking time must be positive, got %d", input.CookingTime)
	}
	if len(input.Ingredients) == 0 {
		return nil, nil, NewValidationError("recipe must have at least one ingredient")
	}

	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, nil, err
	}

	ingredients, err := s.resolveIngredients(input.Ingredients)
	if err != nil {
		return nil, nil, err
	}

	return tags, ingredients, nil
}

func (s *recipeService) resolveTags(tagIDs []uint) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	tags, err := s.tagRepo.FindByIDs(tagIDs)
	if err != nil {
		logger.Error("Failed to resolve tags", err, map[string]interface{}{
			"tag_ids": tagIDs,
		})
		return nil, err
	}

	byID := make(map[uint]model.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}

	resolved := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, ok := byID[id]
		if !ok {
			logger.Warn("Unknown tag in recipe input", map[string]interface{}{
				"tag_id": id,
			})
			return nil, fmt.Errorf("%w: id %d", ErrTagNotFound, id)
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

func (s *recipeService) resolveIngredients(entries []IngredientAmount) ([]model.RecipeIngredient, error) {
	ids := make([]uint, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.IngredientID)
	}

	ingredients, err := s.ingredientRepo.FindByIDs(ids)
	if err != nil {
		logger.Error("Failed to resolve ingredients", err, map[string]interface{}{
			"ingredient_ids": ids,
		})
		return nil, err
	}

	byID := make(map[uint]model.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}

	seen := make(map[uint]bool, len(entries))
	resolved := make([]model.RecipeIngredient, 0, len(entries))
	for _, entry := range entries {
		ingredient, ok := byID[entry.IngredientID]
		if !ok {
			logger.Warn("Unknown ingredient in recipe input", map[string]interface{}{
				"ingredient_id": entry.IngredientID,
			})
			return nil, fmt.Errorf("%w: id %d", ErrIngredientNotFound, entry.IngredientID)
		}

		if seen[entry.IngredientID] {
			return nil, NewValidationError("duplicate ingredient %q, please keep a single entry", ingredient.Name)
		}
		seen[entry.IngredientID] = true

		if entry.Amount <= 0 {
			return nil, NewValidationError("invalid amount %d for ingredient %q", entry.Amount, ingredient.Name)
		}

		resolved = append(resolved, model.RecipeIngredient{
			IngredientID: entry.IngredientID,
			Amount:       entry.Amount,
		})
	}

	return resolved, nil
}
