// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Rate limiting
	KeyRateLimited = "rate.limited"

	// Products
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartUpdated     = "cart.updated"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartItemMissing = "cart.item_missing"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"
	KeySearchEmptyQuery   = "search.empty_query"
	KeySearchNone         = "search.none"
	KeySearchSuperseded   = "search.superseded"

	// Chat
	KeyChatEmptyMessage = "chat.empty_message"
	KeyChatSuperseded   = "chat.superseded"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"
)
