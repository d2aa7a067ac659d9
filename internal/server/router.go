package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auction "veilmarket/internal/auctionService"
	register "veilmarket/internal/bidRegister"
	"veilmarket/internal/server/middleware"
	settlement "veilmarket/internal/settlementService"
	auctionhandler "veilmarket/services/auction/handler"
	settlementhandler "veilmarket/services/settlement/handler"
)

// SetupRouter configures all Gin routes for the engine
func SetupRouter(auctionSvc *auction.AuctionService, reg *register.Register, settlementSvc *settlement.SettlementService, jwtSecret string, commissionRate float64) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(middleware.RequestLogger) // custom request logging

	authOptional := middleware.Authenticate(jwtSecret, true)
	authRequired := middleware.Authenticate(jwtSecret, false)

	ah := auctionhandler.NewAuctionHandler(auctionSvc, reg)
	sh := settlementhandler.NewSettlementHandler(settlementSvc, commissionRate)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auctions := router.Group("/auctions")
	{
		auctions.POST("", authRequired, middleware.RequireAdmin, ah.CreateAuctionHandler)
		auctions.GET("/:auction_id", authOptional, ah.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", authOptional, ah.ListAuctionBidsHandler)
		auctions.GET("/:auction_id/audit", authRequired, middleware.RequireAdmin, ah.AuditTrailHandler)
		auctions.POST("/:auction_id/bids", authRequired, ah.PlaceBidHandler)
		auctions.POST("/:auction_id/end", authRequired, middleware.RequireAdmin, ah.EndAuctionHandler)
		auctions.POST("/:auction_id/cancel", authRequired, ah.CancelAuctionHandler)
	}

	bidders := router.Group("/bidders", authRequired)
	{
		bidders.GET("/me/bids", ah.ListMyBidsHandler)
	}

	settlements := router.Group("/settlements", authRequired)
	{
		settlements.POST("", middleware.RequireAdmin, sh.MaterializeHandler)
		settlements.GET("/:settlement_id", sh.GetSettlementHandler)
		settlements.POST("/:settlement_id/appointments/:side/confirm", sh.ConfirmAppointmentHandler)
		settlements.POST("/:settlement_id/appointments/:side/complete", sh.CompleteAppointmentHandler)
		settlements.POST("/:settlement_id/force-release", middleware.RequireAdmin, sh.ForceReleaseHandler)
		settlements.POST("/:settlement_id/refund", middleware.RequireAdmin, sh.RefundHandler)
	}

	return router
}
