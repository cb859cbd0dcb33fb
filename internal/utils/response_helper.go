package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proxylink/proxylink-api/internal/models"
)

// SendSuccessResponse sends a successful JSON response
func SendSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendUnauthorizedError sends a 401 Unauthorized error
func SendUnauthorizedError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, message, "")
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, errCode, message string) {
	SendErrorResponse(c, http.StatusNotFound, errCode, message, "")
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// SendServiceError maps a service-layer error to an HTTP response using the
// shared error taxonomy. notFoundCode selects the resource-specific 404 code.
func SendServiceError(c *gin.Context, err error, notFoundCode string) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		SendBadRequestError(c, "Invalid request", err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		SendUnauthorizedError(c, err.Error())
	case errors.Is(err, models.ErrNotFound):
		SendNotFoundError(c, notFoundCode, err.Error())
	default:
		SendInternalServerError(c, "Internal server error", err.Error())
	}
}

// GetActorFromContext extracts the acting identity placed in the context by
// the identity middleware. Returns nil when no identity headers were sent.
func GetActorFromContext(c *gin.Context) *models.ChangedBy {
	value, exists := c.Get("actor")
	if !exists {
		return nil
	}
	actor, ok := value.(*models.ChangedBy)
	if !ok {
		return nil
	}
	return actor
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
