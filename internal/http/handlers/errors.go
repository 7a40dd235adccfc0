// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// Codes are stable, lowercase snake_case strings that clients branch on to
// render targeted messages; they are the wire contract, not free text.
// Tenant-resolution failures always map to catalog_not_found so a caller
// cannot distinguish "bad slug" from "no slug" (no enumeration side
// channel). Validation failures on order submission get specific codes.
// Storage failures map to db_locked / db_schema_missing via the typed
// sentinels the repo layer returns; everything unexpected becomes
// server_error at the request boundary.
package handlers

const (
	ErrCodeCatalogNotFound       = "catalog_not_found"
	ErrCodeCatalogNotRegistered  = "catalog_not_registered"
	ErrCodeBadRequest            = "bad_request"
	ErrCodeBuyerTelegramRequired = "buyer_telegram_required"
	ErrCodeItemsRequired         = "items_required"
	ErrCodeNoProductsSpecified   = "no_products_specified"
	ErrCodeNoValidItems          = "no_valid_items"
	ErrCodeDBLocked              = "db_locked"
	ErrCodeDBSchemaMissing       = "db_schema_missing"
	ErrCodeServerError           = "server_error"

	// Router fallbacks:
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
