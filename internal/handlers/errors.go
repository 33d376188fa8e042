package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/internal/services"
)

// handleServiceError maps domain errors onto HTTP status codes
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		resp := gin.H{"error": validationErr.Message}
		if validationErr.Field != "" {
			resp["field"] = validationErr.Field
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
		return
	}

	var paymentErr *services.PaymentError
	if errors.As(err, &paymentErr) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": paymentErr.Message})
		return
	}

	var stateErr *services.StateError
	if errors.As(err, &stateErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": stateErr.Message})
		return
	}

	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
