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
	case errors.Is(err, auctionerrors.ErrSettlementNotFound):
		return http.StatusNotFound, "settlement not found"
	case errors.Is(err, auctionerrors.ErrAuctionNotEnded):
		return http.StatusConflict, "auction has not ended"
	case errors.Is(err, auctionerrors.ErrNoWinner):
		return http.StatusConflict, "auction ended without a winner"
	case errors.Is(err, auctionerrors.ErrSettlementExists):
		return http.StatusConflict, "settlement already exists for this auction"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusConflict, "illegal settlement state transition"
	case errors.Is(err, auctionerrors.ErrNotParty):
		return http.StatusForbidden, "caller is not a party to this settlement"
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
