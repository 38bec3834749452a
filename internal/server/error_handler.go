// file: internal/server/error_handler.go
// version: 1.2.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/metrics"
)

// ErrorResponse provides a consistent error response format
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status"`
}

// RespondWithError sends a standardized error response and logs the error
func RespondWithError(c *gin.Context, statusCode int, message string, code string) {
	log.Printf("[ERROR] %s %s -> %d: %s", c.Request.Method, c.Request.URL.Path, statusCode, message)
	metrics.IncRequest(c.FullPath(), http.StatusText(statusCode))

	c.JSON(statusCode, ErrorResponse{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error response
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

// RespondWithValidationError sends a 400 error for validation failures
func RespondWithValidationError(c *gin.Context, field string, reason string) {
	message := "validation error: " + field
	if reason != "" {
		message = message + " (" + reason + ")"
	}
	RespondWithError(c, http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// RespondWithNotFound sends a 404 Not Found error response
func RespondWithNotFound(c *gin.Context, resourceType string, id string) {
	message := resourceType + " not found"
	if id != "" {
		message = message + ": " + id
	}
	RespondWithError(c, http.StatusNotFound, message, "NOT_FOUND")
}

// RespondWithInternalError sends a 500 Internal Server Error response
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// RespondWithConflict sends a 409 Conflict error response
func RespondWithConflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, message, "CONFLICT")
}

// RespondWithUnauthorized sends a 401 Unauthorized error response
func RespondWithUnauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// RespondWithForbidden sends a 403 Forbidden error response
func RespondWithForbidden(c *gin.Context, message string) {
	RespondWithError(c, http.StatusForbidden, message, "FORBIDDEN")
}

// RespondWithOK sends a 200 OK response with data
func RespondWithOK(c *gin.Context, data any) {
	metrics.IncRequest(c.FullPath(), http.StatusText(http.StatusOK))
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// RespondWithCreated sends a 201 Created response
func RespondWithCreated(c *gin.Context, data any) {
	metrics.IncRequest(c.FullPath(), http.StatusText(http.StatusCreated))
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// RespondWithNoContent sends a 204 No Content response
func RespondWithNoContent(c *gin.Context) {
	metrics.IncRequest(c.FullPath(), http.StatusText(http.StatusNoContent))
	c.Status(http.StatusNoContent)
}

// RespondWithList sends a successful list response with pagination info
func RespondWithList(c *gin.Context, items any, count int, limit int, offset int) {
	metrics.IncRequest(c.FullPath(), http.StatusText(http.StatusOK))
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"count":  count,
		"limit":  limit,
		"offset": offset,
	})
}
