package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	auction "veilmarket/internal/auctionService"
	register "veilmarket/internal/bidRegister"
	"veilmarket/internal/models"
	"veilmarket/internal/server/middleware"
	"veilmarket/services/auction/helpers"
	"veilmarket/utils"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	CreateAuction(listingRef, sellerID string, startingBid float64, endTime time.Time, notes string) (models.Auction, error)
	PlaceBid(auctionID, bidderID string, amount float64) (models.Bid, error)
	EndAuction(auctionID string) (models.Auction, error)
	CancelAuction(auctionID, actorID string, role models.Role) error
	GetAuction(auctionID string, role models.Role, viewerID string) (auction.AuctionView, error)
}

type RegisterInterface interface {
	ListForAuction(auctionID string) ([]register.BidEntry, error)
	AuditTrail(auctionID string) ([]register.BidEntry, error)
	ListForBidder(bidderID string) ([]register.BidEntry, error)
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	register RegisterInterface
}

func NewAuctionHandler(service AuctionServiceInterface, reg RegisterInterface) *AuctionHandler {
	return &AuctionHandler{service: service, register: reg}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.CreateAuction(req.ListingRef, req.SellerID, req.StartingBid, req.EndTime, req.Notes)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":     "CreateAuctionHandler",
			"listing_ref": req.ListingRef,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":  a.AuctionID,
		"listing_ref": a.ListingRef,
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids. The bidder is
// always the authenticated caller; the request never names an account id.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidderID := middleware.ViewerID(c)

	bid, err := h.service.PlaceBid(auctionID, bidderID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:           bid.BidID,
		AuctionRef:      bid.AuctionRef,
		BidderPseudonym: bid.BidderPseudonym,
		Amount:          bid.Amount,
		IsWinning:       bid.IsWinning,
		CreatedAt:       bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"amount":     bid.Amount,
	})
}

// EndAuctionHandler handles POST /auctions/:auction_id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	a, err := h.service.EndAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("EndAuctionHandler: failed to end auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction ended successfully")
	helpers.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{
		"auction_id": a.AuctionID,
		"total_bids": a.TotalBids,
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	err := h.service.CancelAuction(auctionID, middleware.ViewerID(c), middleware.Role(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelAuctionHandler: failed to cancel auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{"auction_id": auctionID})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	view, err := h.service.GetAuction(auctionID, middleware.Role(c), middleware.ViewerID(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: failed to load auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction retrieved successfully")
}

// ListAuctionBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) ListAuctionBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	entries, err := h.register.ListForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if entries == nil {
		entries = []register.BidEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "bids retrieved successfully")
	helpers.LogSuccess("ListAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(entries),
	})
}

// AuditTrailHandler handles GET /auctions/:auction_id/audit
func (h *AuctionHandler) AuditTrailHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	entries, err := h.register.AuditTrail(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AuditTrailHandler: error retrieving audit trail", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if entries == nil {
		entries = []register.BidEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "audit trail retrieved successfully")
}

// ListMyBidsHandler handles GET /bidders/me/bids
func (h *AuctionHandler) ListMyBidsHandler(c *gin.Context) {
	bidderID := middleware.ViewerID(c)

	entries, err := h.register.ListForBidder(bidderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListMyBidsHandler: error retrieving bids", map[string]any{"error": err.Error()})
		return
	}

	if entries == nil {
		entries = []register.BidEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "bids retrieved successfully")
	helpers.LogSuccess("ListMyBidsHandler", "bids retrieved successfully", map[string]any{"count": len(entries)})
}
