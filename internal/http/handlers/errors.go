package handlers

import (
	"net/http"

	"hauling-backend/internal/domain"
	"hauling-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Persistence
// failures are retryable; the payload says so explicitly so the UI can
// revert the field and offer a retry.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsSourceUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "source_unavailable", err.Error())
	case domain.IsPersistence(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"code":       "persistence_error",
			"retryable":  true,
			"request_id": middleware.GetRequestID(c),
		})
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
