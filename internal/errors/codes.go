package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID        = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat    = "VALIDATION_INVALID_FORMAT"
	ValidationExclusiveFilters = "VALIDATION_EXCLUSIVE_FILTERS"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Recipes (RECIPE_) ====================
	RecipeNotFound            = "RECIPE_NOT_FOUND"
	RecipeDuplicateIngredient = "RECIPE_DUPLICATE_INGREDIENT"
	RecipeInvalidAmount       = "RECIPE_INVALID_AMOUNT"
	RecipeAlreadyMarked       = "RECIPE_ALREADY_MARKED"
	RecipeNotMarked           = "RECIPE_NOT_MARKED"

	// ==================== Ingredients / Tags ====================
	IngredientNotFound = "INGREDIENT_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"
	TagInvalidColor    = "TAG_INVALID_COLOR"

	// ==================== Subscriptions (SUBSCRIPTION_) ====================
	SubscriptionExists   = "SUBSCRIPTION_EXISTS"
	SubscriptionNotFound = "SUBSCRIPTION_NOT_FOUND"
	SubscriptionSelf     = "SUBSCRIPTION_SELF"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
