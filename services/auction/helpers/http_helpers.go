package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"veilmarket/internal/auctionerrors"
	"veilmarket/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrSelfBidForbidden):
		return http.StatusConflict, "sellers cannot bid on their own listing"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusConflict, "illegal auction status transition"
	case errors.Is(err, auctionerrors.ErrNotAuthorized):
		return http.StatusForbidden, "not authorized"
	case errors.Is(err, auctionerrors.ErrConcurrencyExhausted):
		return http.StatusServiceUnavailable, "too much contention, retry shortly"
	case errors.Is(err, auctionerrors.ErrTamperedOrCorrupt),
		errors.Is(err, auctionerrors.ErrVaultMisconfigured):
		return http.StatusInternalServerError, "stored record could not be read"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
