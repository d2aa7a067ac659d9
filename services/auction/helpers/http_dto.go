package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	ListingRef  string    `json:"listing_ref" binding:"required"`
	SellerID    string    `json:"seller_id" binding:"required"`
	StartingBid float64   `json:"starting_bid" binding:"required,gt=0"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Notes       string    `json:"notes"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID           string  `json:"bid_id"`
	AuctionRef      string  `json:"auction_ref"`
	BidderPseudonym string  `json:"bidder_pseudonym"`
	Amount          float64 `json:"amount"`
	IsWinning       bool    `json:"is_winning"`
	CreatedAt       string  `json:"created_at"`
}
