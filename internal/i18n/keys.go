// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Products
	KeyProductNotFound    = "product.not_found"
	KeyProductCreated     = "product.created"
	KeyProductCreateError = "product.create_error"
	KeyProductFetchError  = "product.fetch_error"

	// Manufacturers
	KeyManufacturerNotFound   = "manufacturer.not_found"
	KeyManufacturerFetchError = "manufacturer.fetch_error"

	// Catalog
	KeyCatalogInvalidGrouping = "catalog.invalid_grouping"
	KeyCatalogFetchError      = "catalog.fetch_error"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationJSONBody = "validation.json_body"

	// Access
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"

	// System
	KeyRateLimitExceeded = "system.rate_limit_exceeded"
	KeyInternalError     = "system.internal_error"
)
