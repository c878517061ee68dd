package response

import (
	"errors"
	"fmt"
	"net/http"

	"travelapp/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// ValidationFailed reports per-field messages under error.details.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", fields)
}

// FromError maps a domain error to its HTTP status and error code.
// Anything unrecognised is recorded on the context for the error logger
// and answered with a generic 500.
func FromError(c *gin.Context, err error) {
	var refErr *domain.ReferentialError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// checked before ErrValidation: a uniqueness violation matches both
	case errors.Is(err, domain.ErrUniqueness):
		ErrorWithDetails(c, http.StatusConflict, "CONFLICT", "Resource already exists", domain.FieldErrors(err))

	case errors.Is(err, domain.ErrValidation):
		ValidationFailed(c, domain.FieldErrors(err))

	case errors.As(err, &refErr):
		ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REFERENCE", "Referenced object does not exist", map[string]string{
			refErr.Field: fmt.Sprintf("Invalid pk %q - object does not exist.", refErr.ID.String()),
		})

	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
