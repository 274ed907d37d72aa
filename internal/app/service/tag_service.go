package service

import (
	"errors"
	"regexp"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")

	hexColorPattern = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	tagSlugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

type TagService interface {
	ListTags() ([]model.Tag, error)
	GetTagByID(id uint) (*model.Tag, error)
	CreateTag(name, color, slug string) (*model.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags() ([]model.Tag, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list tags", err, nil)
		return nil, err
	}
	return tags, nil
}

func (s *tagService) GetTagByID(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Tag not found", map[string]interface{}{
				"tag_id": id,
			})
			return nil, ErrTagNotFound
		}
		logger.Error("Failed to fetch tag", err, map[string]interface{}{
			"tag_id": id,
		})
		return nil, err
	}
	return tag, nil
}

func (s *tagService) CreateTag(name, color, slug string) (*model.Tag, error) {
	logger.Info("Creating tag", map[string]interface{}{
		"name": name,
		"slug": slug,
	})

	if name == "" {
		return nil, NewValidationError("tag name must not be empty")
	}
	if color != "" && !hexColorPattern.MatchString(color) {
		return nil, NewValidationError("invalid hex color %q", color)
	}
	if !tagSlugPattern.MatchString(slug) {
		return nil, NewValidationError("invalid tag slug %q", slug)
	}

	tag := &model.Tag{Name: name, Color: color, Slug: slug}
	if err := s.tagRepo.Create(tag); err != nil {
		logger.Error("Failed to create tag", err, map[string]interface{}{
			"name": name,
			"slug": slug,
		})
		return nil, err
	}

	logger.Info("Tag created successfully", map[string]interface{}{
		"tag_id": tag.ID,
	})
	return tag, nil
}
