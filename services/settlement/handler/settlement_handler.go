package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/internal/server/middleware"
	settlement "veilmarket/internal/settlementService"
	"veilmarket/services/settlement/helpers"
	"veilmarket/utils"
)

//go:generate mockgen -source=settlement_handler.go -destination=mock_settlement_service.go -package=handler

type SettlementServiceInterface interface {
	Materialize(auctionID string, commissionRate float64) (models.Settlement, error)
	ConfirmAppointment(settlementID string, side models.Side, date, timeSlot, actorID string, role models.Role) error
	CompleteAppointment(settlementID string, side models.Side, actorID string, role models.Role) (models.Settlement, error)
	ForceRelease(settlementID, adminID, reason string) (models.Settlement, error)
	Refund(settlementID, adminID, reason string) (models.Settlement, error)
	GetSettlement(settlementID string, role models.Role, viewerID string) (settlement.SettlementView, error)
}

type SettlementHandler struct {
	service     SettlementServiceInterface
	defaultRate float64
}

func NewSettlementHandler(service SettlementServiceInterface, defaultRate float64) *SettlementHandler {
	return &SettlementHandler{service: service, defaultRate: defaultRate}
}

// MaterializeHandler handles POST /settlements
func (h *SettlementHandler) MaterializeHandler(c *gin.Context) {
	var req helpers.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "MaterializeHandler", err)
		return
	}

	rate := h.defaultRate
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}

	rec, err := h.service.Materialize(req.AuctionID, rate)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("MaterializeHandler: failed to materialize settlement", map[string]any{
			"handler":    "MaterializeHandler",
			"auction_id": req.AuctionID,
			"error":      err.Error(),
		})
		return
	}

	helpers.LogSuccess("MaterializeHandler", "settlement materialized", map[string]any{
		"settlement_id": rec.SettlementID,
		"auction_id":    rec.AuctionRef,
	})
	utils.JSONResponse(c, http.StatusCreated, gin.H{
		"settlement_id": rec.SettlementID,
		"auction_id":    rec.AuctionRef,
		"final_amount":  rec.FinalAmount,
		"platform_cut":  rec.PlatformCut,
		"payout_amount": rec.PayoutAmount,
		"escrow_state":  rec.EscrowState,
	}, "settlement materialized successfully")
}

// GetSettlementHandler handles GET /settlements/:settlement_id
func (h *SettlementHandler) GetSettlementHandler(c *gin.Context) {
	settlementID := c.Param("settlement_id")

	view, err := h.service.GetSettlement(settlementID, middleware.Role(c), middleware.ViewerID(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "settlement retrieved successfully")
}

// ConfirmAppointmentHandler handles POST /settlements/:settlement_id/appointments/:side/confirm
func (h *SettlementHandler) ConfirmAppointmentHandler(c *gin.Context) {
	settlementID := c.Param("settlement_id")
	side, err := parseSide(c.Param("side"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "side must be seller or buyer")
		return
	}

	var req helpers.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ConfirmAppointmentHandler", err)
		return
	}

	if err := h.service.ConfirmAppointment(settlementID, side, req.Date, req.TimeSlot, middleware.ViewerID(c), middleware.Role(c)); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ConfirmAppointmentHandler: failed to confirm appointment", map[string]any{
			"handler":       "ConfirmAppointmentHandler",
			"settlement_id": settlementID,
			"side":          side,
			"error":         err.Error(),
		})
		return
	}

	helpers.LogSuccess("ConfirmAppointmentHandler", "appointment confirmed", map[string]any{
		"settlement_id": settlementID,
		"side":          side,
	})
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"settlement_id": settlementID,
		"side":          side,
		"status":        models.AppointmentConfirmed,
	}, "appointment confirmed successfully")
}

// CompleteAppointmentHandler handles POST /settlements/:settlement_id/appointments/:side/complete
func (h *SettlementHandler) CompleteAppointmentHandler(c *gin.Context) {
	settlementID := c.Param("settlement_id")
	side, err := parseSide(c.Param("side"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "side must be seller or buyer")
		return
	}

	rec, err := h.service.CompleteAppointment(settlementID, side, middleware.ViewerID(c), middleware.Role(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CompleteAppointmentHandler: failed to complete appointment", map[string]any{
			"handler":       "CompleteAppointmentHandler",
			"settlement_id": settlementID,
			"side":          side,
			"error":         err.Error(),
		})
		return
	}

	helpers.LogSuccess("CompleteAppointmentHandler", "appointment completed", map[string]any{
		"settlement_id": settlementID,
		"side":          side,
		"escrow_state":  rec.EscrowState,
	})
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"settlement_id": rec.SettlementID,
		"side":          side,
		"meeting_state": rec.MeetingState,
		"escrow_state":  rec.EscrowState,
	}, "appointment completed successfully")
}

// ForceReleaseHandler handles POST /settlements/:settlement_id/force-release
func (h *SettlementHandler) ForceReleaseHandler(c *gin.Context) {
	h.adminEscrowAction(c, "ForceReleaseHandler", h.service.ForceRelease)
}

// RefundHandler handles POST /settlements/:settlement_id/refund
func (h *SettlementHandler) RefundHandler(c *gin.Context) {
	h.adminEscrowAction(c, "RefundHandler", h.service.Refund)
}

func (h *SettlementHandler) adminEscrowAction(c *gin.Context, handlerName string, action func(settlementID, adminID, reason string) (models.Settlement, error)) {
	settlementID := c.Param("settlement_id")

	var req helpers.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	rec, err := action(settlementID, middleware.ViewerID(c), req.Reason)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error(handlerName+": escrow action failed", map[string]any{
			"handler":       handlerName,
			"settlement_id": settlementID,
			"error":         err.Error(),
		})
		return
	}

	helpers.LogSuccess(handlerName, "escrow action applied", map[string]any{
		"settlement_id": rec.SettlementID,
		"escrow_state":  rec.EscrowState,
	})
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"settlement_id": rec.SettlementID,
		"escrow_state":  rec.EscrowState,
		"meeting_state": rec.MeetingState,
	}, "escrow state updated successfully")
}

func parseSide(raw string) (models.Side, error) {
	switch models.Side(raw) {
	case models.SideSeller:
		return models.SideSeller, nil
	case models.SideBuyer:
		return models.SideBuyer, nil
	default:
		return "", fmt.Errorf("%w - unknown side %q", auctionerrors.ErrInvalidInput, raw)
	}
}
