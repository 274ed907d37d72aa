package service

import (
	"errors"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyMarked = errors.New("recipe is already in the list")
	ErrNotMarked     = errors.New("recipe is not in the list")
)

// MarkService manages the per-user favorites and shopping-cart lists.
// The backing record is created lazily on the first Mark call, so a
// user who never marks anything never gets a row.
type MarkService interface {
	Mark(userID, recipeID uint, kind model.ListKind) error
	Unmark(userID, recipeID uint, kind model.ListKind) error
	// IsMarked reports membership without creating the record; it is
	// false for users that have no record and for nil (anonymous) users.
	IsMarked(userID *uint, recipeID uint, kind model.ListKind) (bool, error)
}

type markService struct {
	markRepo   repository.MarkRepository
	recipeRepo repository.RecipeRepository
}

func NewMarkService(markRepo repository.MarkRepository, recipeRepo repository.RecipeRepository) MarkService {
	return &markService{markRepo: markRepo, recipeRepo: recipeRepo}
}

func (s *markService) Mark(userID, recipeID uint, kind model.ListKind) error {
	logger.Info("Marking recipe", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
		"list_kind": kind,
	})

	if !kind.Valid() {
		return NewValidationError("unknown list kind %q", kind)
	}

	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return err
	}

	record, err := s.markRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}

	marked, err := s.markRepo.Contains(record, recipeID, kind)
	if err != nil {
		return err
	}
	if marked {
		logger.Warn("Recipe already marked", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
			"list_kind": kind,
		})
		return ErrAlreadyMarked
	}

	if err := s.markRepo.Add(record, recipe, kind); err != nil {
		return err
	}

	logger.Info("Recipe marked successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
		"list_kind": kind,
	})
	return nil
}

func (s *markService) Unmark(userID, recipeID uint, kind model.ListKind) error {
	logger.Info("Unmarking recipe", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
		"list_kind": kind,
	})

	if !kind.Valid() {
		return NewValidationError("unknown list kind %q", kind)
	}

	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return err
	}

	record, err := s.markRepo.Find(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMarked
		}
		logger.Error("Failed to fetch marked recipes record", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	marked, err := s.markRepo.Contains(record, recipeID, kind)
	if err != nil {
		return err
	}
	if !marked {
		logger.Warn("Recipe not marked", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
			"list_kind": kind,
		})
		return ErrNotMarked
	}

	if err := s.markRepo.Remove(record, recipe, kind); err != nil {
		return err
	}

	logger.Info("Recipe unmarked successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
		"list_kind": kind,
	})
	return nil
}

func (s *markService) IsMarked(userID *uint, recipeID uint, kind model.ListKind) (bool, error) {
	if userID == nil {
		return false, nil
	}

	record, err := s.markRepo.Find(*userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.markRepo.Contains(record, recipeID, kind)
}

func (s *markService) findRecipe(recipeID uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe for marking", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}
	return recipe, nil
}
