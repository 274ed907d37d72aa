package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user friendly message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts store-level errors into a code and message safe
// to show to the caller. Sensitive details stay out of the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Postgres unique constraint (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		switch {
		case strings.Contains(errStr, "email"):
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already registered"}
		case strings.Contains(errStr, "username"):
			return ErrorInfo{Code: AuthUsernameExists, Message: "Username is already taken"}
		case strings.Contains(errStr, "slug"):
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "Tag slug is already in use"}
		case strings.Contains(errStr, "idx_recipe_ingredient"):
			return ErrorInfo{Code: RecipeDuplicateIngredient, Message: "Ingredient is already in the recipe"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
	}

	// Postgres foreign key constraint (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Resource is referenced by other data and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced resource does not exist"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage is temporarily unavailable, please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Something went wrong, please try again later"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "recipe"):
		return "Recipe not found"
	case strings.Contains(contextLower, "ingredient"):
		return "Ingredient not found"
	case strings.Contains(contextLower, "tag"):
		return "Tag not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "Requested resource not found"
}
