package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoroz/cookbook-backend/internal/app/service"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetUserByID returns a public user profile
// GET /api/v1/users/:id
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := ctrl.userService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch user",
		})
		return
	}

	subscribed := false
	if currentUserID, exists := middleware.GetUserID(c); exists {
		subscribed, err = ctrl.userService.IsSubscribed(currentUserID, id)
		if err != nil {
			log.Error("Failed to check subscription", err, map[string]interface{}{
				"user_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch user",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"is_subscribed": subscribed,
	})
}

// Subscribe subscribes the authenticated user to an author
// POST /api/v1/users/:id/subscribe
func (ctrl *UserController) Subscribe(c *gin.Context) {
	ctrl.changeSubscription(c, true)
}

// Unsubscribe removes the subscription to an author
// DELETE /api/v1/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	ctrl.changeSubscription(c, false)
}

// GetSubscriptions lists the authors the user follows, with recipes
// GET /api/v1/users/subscriptions
func (ctrl *UserController) GetSubscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	authors, err := ctrl.userService.ListSubscriptions(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		log.Error("Failed to list subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list subscriptions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": authors,
		"count":         len(authors),
	})
}

func (ctrl *UserController) changeSubscription(c *gin.Context, subscribe bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	authorID, ok := parseUserID(c)
	if !ok {
		return
	}

	var err error
	if subscribe {
		err = ctrl.userService.Subscribe(userID, authorID)
	} else {
		err = ctrl.userService.Unsubscribe(userID, authorID)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, service.ErrSelfSubscription):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot subscribe to yourself",
			})
		case errors.Is(err, service.ErrAlreadySubscribed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Already subscribed to this author",
			})
		case errors.Is(err, service.ErrNotSubscribed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Not subscribed to this author",
			})
		default:
			log.Error("Failed to change subscription", err, map[string]interface{}{
				"user_id":   userID,
				"author_id": authorID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to change subscription",
			})
		}
		return
	}

	log.Info("Subscription changed", map[string]interface{}{
		"user_id":    userID,
		"author_id":  authorID,
		"subscribed": subscribe,
	})

	status := http.StatusCreated
	if !subscribe {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"message": "OK",
	})
}

func parseUserID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return 0, false
	}
	return uint(id), true
}
