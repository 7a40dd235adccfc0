// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Error responses carry a stable machine-readable code in the
// "error" field; server-side (5xx) failures additionally expose details and
// a message so the storefront UI can render something actionable, and are
// logged with request context.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{ "error": "catalog_not_found" }
//
// Example server error response:
//
//	HTTP/1.1 500 Internal Server Error
//	{ "error": "db_locked", "details": "...", "message": "database is locked" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archivegarage/go-storefront-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Error is the stable, machine-readable code (see errors.go constants).
	Error string `json:"error" example:"catalog_not_found"`
	// Details carries the raw failure description on 5xx responses.
	Details string `json:"details,omitempty"`
	// Message is a human-readable description on 5xx responses.
	Message string `json:"message,omitempty"`
}

// fail aborts the request with a coded error body.
func fail(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code})
}

// failServer aborts with a 5xx error, attaching details from err and logging
// through the request-scoped logger. A handler must never let a failure
// propagate past this boundary.
func failServer(c *gin.Context, code string, err error) {
	resp := ErrorResponse{Error: code}
	if err != nil {
		resp.Details = err.Error()
		resp.Message = err.Error()
	}

	lg := middleware.LoggerFrom(c)
	lg.Error().
		Int("status", http.StatusInternalServerError).
		Str("code", code).
		Err(err).
		Msg("api error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code string) { fail(c, status, code) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
