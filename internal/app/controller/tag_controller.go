package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoroz/cookbook-backend/internal/app/service"
	apperrors "github.com/jmoroz/cookbook-backend/internal/errors"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Slug  string `json:"slug" binding:"required"`
}

// GetAllTags returns all tags
// GET /api/v1/tags
func (ctrl *TagController) GetAllTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		log.Error("Failed to fetch tags", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tags",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// GetTagByID returns a tag by ID
// GET /api/v1/tags/:id
func (ctrl *TagController) GetTagByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid tag ID format", map[string]interface{}{
			"tag_id": idStr,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid tag ID",
		})
		return
	}

	tag, err := ctrl.tagService.GetTagByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Tag not found",
			})
			return
		}
		log.Error("Failed to fetch tag", err, map[string]interface{}{
			"tag_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tag",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag": tag,
	})
}

// CreateTag creates a new tag (Admin only)
// POST /api/v1/tags
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tag creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	tag, err := ctrl.tagService.CreateTag(req.Name, req.Color, req.Slug)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		if info := apperrors.ParseError(err, "tag"); info.Code == apperrors.ResourceAlreadyExists {
			apperrors.Conflict(c, info.Code, info.Message)
			return
		}
		log.Error("Failed to create tag", err, map[string]interface{}{
			"name": req.Name,
			"slug": req.Slug,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create tag",
		})
		return
	}

	log.Info("Tag created successfully", map[string]interface{}{
		"tag_id": tag.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"tag": tag,
	})
}
