package repository

import (
	"time"

	"veilmarket/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_marketdb.go -package=repository

// MarketDB defines the storage contract for the auction and settlement engine.
// Mutating operations that guard an invariant (leading bid, escrow release,
// status transitions) are conditional updates: they re-check the stored state
// inside the store's own atomicity scope and fail with a conflict error
// instead of overwriting a concurrent writer.
type MarketDB interface {
	// CreateAuction stores a new active auction. The seller pseudonym is
	// claimed here; ErrPseudonymTaken on collision.
	CreateAuction(a models.Auction) error
	GetAuction(auctionID string) (models.Auction, error)

	// CommitLeadingBid atomically accepts bid as the new leading bid:
	// it verifies the auction is active and its CurrentBid still equals
	// expectedCurrentBid, clears IsWinning on the previous leading bid,
	// appends the new bid, and advances CurrentBid, TotalBids and the
	// leading-bidder fields. ErrBidConflict when the guard fails,
	// ErrPseudonymTaken when the bidder pseudonym collides.
	CommitLeadingBid(bid models.Bid, expectedCurrentBid float64) error

	// TransitionAuction moves an auction from one status to another only if
	// the stored status equals from; ErrInvalidTransition otherwise.
	// sealedWinner is written only when transitioning to ended.
	TransitionAuction(auctionID string, from, to models.AuctionStatus, sealedWinner string) error

	ListBidsForAuction(auctionID string) ([]models.Bid, error)
	ListBids() ([]models.Bid, error)

	// CreateSettlement stores a new settlement; ErrSettlementExists when one
	// already references the same auction.
	CreateSettlement(s models.Settlement) error
	GetSettlement(settlementID string) (models.Settlement, error)

	// ConfirmAppointment writes one side's appointment half. Only legal
	// while that half is not completed and escrow is held.
	ConfirmAppointment(settlementID string, side models.Side, appt models.Appointment) error

	// CompleteAppointment marks one side's half completed (idempotently) and
	// re-evaluates the release rule in the same atomic step: when both
	// halves are completed and escrow is held, escrow becomes released and
	// CompletedAt is stamped exactly once. The bool reports whether this
	// call performed the release.
	CompleteAppointment(settlementID string, side models.Side, completedAt time.Time) (models.Settlement, bool, error)

	// ReleaseEscrow moves escrow from held to the given terminal state
	// outside the two-appointment rule (audited admin path).
	ReleaseEscrow(settlementID string, to models.EscrowState, note string, at time.Time) (models.Settlement, error)
}
