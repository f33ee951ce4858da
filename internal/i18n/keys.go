package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"

	// ErrKeyCatalogUnavailable is shown when the remote catalog API fails.
	// The rest of the page keeps working.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	ErrKeySessionNotFound    = "error.session_not_found"
	ErrKeyProductNotFound    = "error.product_not_found"
	ErrKeyProductUnavailable = "error.product_unavailable"
	ErrKeyOrderNotFound      = "error.order_not_found"
	ErrKeyEditorNotFound     = "error.editor_not_found"

	ErrKeyValidationEmail      = "error.validation.email"
	ErrKeyValidationPhone      = "error.validation.phone"
	ErrKeyValidationQuantity   = "error.validation.quantity"
	ErrKeyValidationStatus     = "error.validation.status"
	ErrKeyValidationPriceRange = "error.validation.price_range"
	ErrKeyValidationID         = "error.validation.id"
	ErrKeyValidationField      = "error.validation.field"
)
