package repository

import (
	"fmt"
	"sync"
	"time"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB.
// All conditional updates run under the single mutex, so each method is one
// atomic unit with respect to every other.
type MemoryRepo struct {
	mu                  sync.RWMutex
	auctions            map[string]models.Auction    // key: auctionID
	bids                map[string][]models.Bid      // key: auctionID -> bids in submission order
	settlements         map[string]models.Settlement // key: settlementID
	settlementByAuction map[string]string            // key: auctionID -> settlementID
	pseudonyms          map[string]struct{}          // claimed pseudonyms across all records
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:            make(map[string]models.Auction),
		bids:                make(map[string][]models.Bid),
		settlements:         make(map[string]models.Settlement),
		settlementByAuction: make(map[string]string),
		pseudonyms:          make(map[string]struct{}),
	}
}

// CreateAuction stores a new auction and claims its seller pseudonym
func (r *MemoryRepo) CreateAuction(a models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: auction id already exists", a.AuctionID)
	}
	if _, ok := r.pseudonyms[a.SellerPseudonym]; ok {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, auctionerrors.ErrPseudonymTaken)
	}

	r.pseudonyms[a.SellerPseudonym] = struct{}{}
	r.auctions[a.AuctionID] = a
	return nil
}

// GetAuction returns a copy of the auction record
func (r *MemoryRepo) GetAuction(auctionID string) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// CommitLeadingBid atomically installs bid as the new leading bid, guarded
// by the caller's snapshot of CurrentBid
func (r *MemoryRepo) CommitLeadingBid(bid models.Bid, expectedCurrentBid float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionRef]
	if !ok {
		return fmt.Errorf("commit bid for auction %s: %w", bid.AuctionRef, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != models.AuctionActive || a.CurrentBid != expectedCurrentBid {
		return fmt.Errorf("commit bid for auction %s: %w", bid.AuctionRef, auctionerrors.ErrBidConflict)
	}
	if _, ok := r.pseudonyms[bid.BidderPseudonym]; ok {
		return fmt.Errorf("commit bid for auction %s: %w", bid.AuctionRef, auctionerrors.ErrPseudonymTaken)
	}

	// Clear the previous winner; exactly one bid per auction carries the flag.
	ledger := r.bids[bid.AuctionRef]
	for i := range ledger {
		ledger[i].IsWinning = false
	}
	bid.IsWinning = true
	r.bids[bid.AuctionRef] = append(ledger, bid)
	r.pseudonyms[bid.BidderPseudonym] = struct{}{}

	a.CurrentBid = bid.Amount
	a.TotalBids++
	a.SealedLeadingBidder = bid.SealedBidder
	a.LeadingPseudonym = bid.BidderPseudonym
	a.LeadingBidID = bid.BidID
	a.UpdatedAt = time.Now().UTC()
	r.auctions[bid.AuctionRef] = a

	return nil
}

// TransitionAuction performs a conditional status transition
func (r *MemoryRepo) TransitionAuction(auctionID string, from, to models.AuctionStatus, sealedWinner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != from {
		return fmt.Errorf("transition auction %s from %s to %s (stored %s): %w", auctionID, from, to, a.Status, auctionerrors.ErrInvalidTransition)
	}

	a.Status = to
	if to == models.AuctionEnded {
		a.SealedWinner = sealedWinner
	}
	a.UpdatedAt = time.Now().UTC()
	r.auctions[auctionID] = a
	return nil
}

// ListBidsForAuction returns all bids for an auction in submission order
func (r *MemoryRepo) ListBidsForAuction(auctionID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]models.Bid(nil), r.bids[auctionID]...), nil
}

// ListBids returns every bid across all auctions
func (r *MemoryRepo) ListBids() ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Bid
	for _, ledger := range r.bids {
		all = append(all, ledger...)
	}
	return all, nil
}

// CreateSettlement stores a settlement, enforcing uniqueness per auction
func (r *MemoryRepo) CreateSettlement(s models.Settlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.settlementByAuction[s.AuctionRef]; ok {
		return fmt.Errorf("create settlement for auction %s: %w", s.AuctionRef, auctionerrors.ErrSettlementExists)
	}

	r.settlements[s.SettlementID] = s
	r.settlementByAuction[s.AuctionRef] = s.SettlementID
	return nil
}

// GetSettlement returns a copy of the settlement record
func (r *MemoryRepo) GetSettlement(settlementID string) (models.Settlement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settlements[settlementID]
	if !ok {
		return models.Settlement{}, fmt.Errorf("get settlement %s: %w", settlementID, auctionerrors.ErrSettlementNotFound)
	}
	return s, nil
}

// ConfirmAppointment writes one side's appointment half
func (r *MemoryRepo) ConfirmAppointment(settlementID string, side models.Side, appt models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settlements[settlementID]
	if !ok {
		return fmt.Errorf("confirm appointment on %s: %w", settlementID, auctionerrors.ErrSettlementNotFound)
	}
	if s.EscrowState != models.EscrowHeld {
		return fmt.Errorf("confirm appointment on %s: escrow %s: %w", settlementID, s.EscrowState, auctionerrors.ErrInvalidTransition)
	}

	half, err := appointmentFor(&s, side)
	if err != nil {
		return fmt.Errorf("confirm appointment on %s: %w", settlementID, err)
	}
	if half.Status == models.AppointmentCompleted {
		return fmt.Errorf("confirm appointment on %s: side %s already completed: %w", settlementID, side, auctionerrors.ErrInvalidTransition)
	}

	appt.Status = models.AppointmentConfirmed
	*half = appt
	s.UpdatedAt = time.Now().UTC()
	r.settlements[settlementID] = s
	return nil
}

// CompleteAppointment marks one side completed and applies the release rule
// in the same atomic step
func (r *MemoryRepo) CompleteAppointment(settlementID string, side models.Side, completedAt time.Time) (models.Settlement, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settlements[settlementID]
	if !ok {
		return models.Settlement{}, false, fmt.Errorf("complete appointment on %s: %w", settlementID, auctionerrors.ErrSettlementNotFound)
	}

	// Repeated completion after release is a no-op, not an error.
	if s.EscrowState != models.EscrowHeld {
		return s, false, nil
	}

	half, err := appointmentFor(&s, side)
	if err != nil {
		return models.Settlement{}, false, fmt.Errorf("complete appointment on %s: %w", settlementID, err)
	}
	if half.Status == models.AppointmentPending {
		return models.Settlement{}, false, fmt.Errorf("complete appointment on %s: side %s not confirmed: %w", settlementID, side, auctionerrors.ErrInvalidTransition)
	}
	half.Status = models.AppointmentCompleted

	released := false
	switch {
	case s.SellerAppointment.Status == models.AppointmentCompleted && s.BuyerAppointment.Status == models.AppointmentCompleted:
		s.MeetingState = models.MeetingCompleted
		s.EscrowState = models.EscrowReleased
		at := completedAt
		s.CompletedAt = &at
		released = true
	case s.SellerAppointment.Status == models.AppointmentCompleted:
		s.MeetingState = models.MeetingSellerCompleted
	default:
		s.MeetingState = models.MeetingBuyerCompleted
	}

	s.UpdatedAt = time.Now().UTC()
	r.settlements[settlementID] = s
	return s, released, nil
}

// ReleaseEscrow moves escrow out of held through the audited admin path
func (r *MemoryRepo) ReleaseEscrow(settlementID string, to models.EscrowState, note string, at time.Time) (models.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settlements[settlementID]
	if !ok {
		return models.Settlement{}, fmt.Errorf("release escrow on %s: %w", settlementID, auctionerrors.ErrSettlementNotFound)
	}
	if s.EscrowState != models.EscrowHeld {
		return models.Settlement{}, fmt.Errorf("release escrow on %s: escrow %s: %w", settlementID, s.EscrowState, auctionerrors.ErrInvalidTransition)
	}
	if to != models.EscrowReleased && to != models.EscrowRefunded {
		return models.Settlement{}, fmt.Errorf("release escrow on %s: %s is not a terminal escrow state: %w", settlementID, to, auctionerrors.ErrInvalidInput)
	}

	s.EscrowState = to
	s.ReleaseNote = note
	stamp := at
	s.CompletedAt = &stamp
	s.UpdatedAt = time.Now().UTC()
	r.settlements[settlementID] = s
	return s, nil
}

// appointmentFor selects the mutable appointment half for a side
func appointmentFor(s *models.Settlement, side models.Side) (*models.Appointment, error) {
	switch side {
	case models.SideSeller:
		return &s.SellerAppointment, nil
	case models.SideBuyer:
		return &s.BuyerAppointment, nil
	default:
		return nil, fmt.Errorf("unknown side %q: %w", side, auctionerrors.ErrInvalidInput)
	}
}
