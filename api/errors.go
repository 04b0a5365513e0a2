package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses: validation 400,
// authorization 403, not-found 404, everything else 500 with the error's
// own (already sanitized) message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrPassengerNameRequired),
		errors.Is(err, domain.ErrInsufficientPoints),
		errors.Is(err, domain.ErrBelowMinRedemption),
		errors.Is(err, domain.ErrBookingNotCancelled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPaymentFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
