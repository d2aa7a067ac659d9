package auction

import (
	"errors"
	"fmt"
	"time"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/internal/notify"
	"veilmarket/internal/repository"
	"veilmarket/internal/vault"
	"veilmarket/utils"
)

const (
	// maxCommitRetries bounds the optimistic-update loop in PlaceBid. A bid
	// that keeps losing the race is surfaced as ErrConcurrencyExhausted
	// rather than blocking on a lock.
	maxCommitRetries = 3
	// maxMintRetries bounds re-minting after a pseudonym collision in storage.
	maxMintRetries = 3

	sellerPrefix = "SELLER"
	bidderPrefix = "BIDDER"
)

// AuctionService owns the auction lifecycle state machine and the atomic
// leading-bid commit.
type AuctionService struct {
	repo     repository.MarketDB
	vault    *vault.Vault
	notifier notify.Notifier
	now      func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.MarketDB, v *vault.Vault, notifier notify.Notifier) *AuctionService {
	return &AuctionService{
		repo:     repo,
		vault:    v,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuction opens bidding for an approved listing. The seller's real
// identifier is sealed before anything is stored.
func (s *AuctionService) CreateAuction(listingRef, sellerID string, startingBid float64, endTime time.Time, notes string) (models.Auction, error) {
	if listingRef == "" || sellerID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing listingRef or sellerID", auctionerrors.ErrInvalidInput)
	}
	if startingBid <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive starting bid", auctionerrors.ErrInvalidInput)
	}
	if !endTime.After(s.now()) {
		return models.Auction{}, fmt.Errorf("service: %w - end time is in the past", auctionerrors.ErrInvalidInput)
	}

	sealedSeller, err := s.vault.Seal(sellerID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to seal seller for listing %s: %w", listingRef, err)
	}

	a := models.Auction{
		AuctionID:    utils.GenerateID(),
		ListingRef:   listingRef,
		SealedSeller: sealedSeller,
		StartingBid:  startingBid,
		Notes:        notes,
		EndTime:      endTime.UTC(),
		Status:       models.AuctionActive,
		CreatedAt:    s.now(),
	}

	for attempt := 0; attempt < maxMintRetries; attempt++ {
		a.SellerPseudonym, err = s.vault.MintPseudonym(sellerPrefix)
		if err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to mint seller pseudonym: %w", err)
		}

		err = s.repo.CreateAuction(a)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, auctionerrors.ErrPseudonymTaken) {
			return models.Auction{}, fmt.Errorf("service: failed to create auction for listing %s: %w", listingRef, err)
		}
	}
	return models.Auction{}, fmt.Errorf("service: gave up minting seller pseudonym for listing %s: %w", listingRef, auctionerrors.ErrConcurrencyExhausted)
}

// PlaceBid validates and atomically records a bid as the new leading bid.
// The commit is optimistic: on a conflict the auction is re-read and the bid
// re-validated against whatever the winner of the race committed, so the
// loser of a photo finish sees ErrBidTooLow, never a silent overwrite.
func (s *AuctionService) PlaceBid(auctionID, bidderID string, amount float64) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	for attempt := 0; attempt <= maxCommitRetries; attempt++ {
		a, err := s.repo.GetAuction(auctionID)
		if err != nil {
			return models.Bid{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
		}

		if a.Status != models.AuctionActive || s.now().After(a.EndTime) {
			return models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrAuctionNotActive)
		}

		seller, err := s.vault.Unseal(a.SealedSeller)
		if err != nil {
			utils.Error("PlaceBid: cannot unseal seller reference", map[string]any{"auction_id": auctionID, "error": err.Error()})
			return models.Bid{}, fmt.Errorf("service: auction %s has an unreadable seller reference: %w", auctionID, err)
		}
		if bidderID == seller {
			return models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrSelfBidForbidden)
		}

		floor := a.CurrentBid
		if a.StartingBid > floor {
			floor = a.StartingBid
		}
		if amount <= floor {
			return models.Bid{}, fmt.Errorf("service: %w - current floor is %.2f", auctionerrors.ErrBidTooLow, floor)
		}

		sealedBidder, err := s.vault.Seal(bidderID)
		if err != nil {
			return models.Bid{}, fmt.Errorf("service: failed to seal bidder for auction %s: %w", auctionID, err)
		}

		bid := models.Bid{
			BidID:        utils.GenerateID(),
			AuctionRef:   auctionID,
			SealedBidder: sealedBidder,
			Amount:       amount,
			IsWinning:    true,
			CreatedAt:    s.now(),
		}

		committed, err := s.commitWithFreshPseudonym(bid, a.CurrentBid)
		if err == nil {
			return committed, nil
		}
		if errors.Is(err, auctionerrors.ErrBidConflict) {
			continue // another bid landed first; re-validate against its amount
		}
		return models.Bid{}, fmt.Errorf("service: failed to commit bid on auction %s: %w", auctionID, err)
	}

	return models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrConcurrencyExhausted)
}

// commitWithFreshPseudonym mints the bidder pseudonym and commits, re-minting
// on a storage uniqueness violation
func (s *AuctionService) commitWithFreshPseudonym(bid models.Bid, expectedCurrentBid float64) (models.Bid, error) {
	for attempt := 0; attempt < maxMintRetries; attempt++ {
		pseudonym, err := s.vault.MintPseudonym(bidderPrefix)
		if err != nil {
			return models.Bid{}, err
		}
		bid.BidderPseudonym = pseudonym

		err = s.repo.CommitLeadingBid(bid, expectedCurrentBid)
		if err == nil {
			return bid, nil
		}
		if !errors.Is(err, auctionerrors.ErrPseudonymTaken) {
			return models.Bid{}, err
		}
	}
	return models.Bid{}, auctionerrors.ErrConcurrencyExhausted
}

// EndAuction moves an active auction to ended and seals the winner, if any.
func (s *AuctionService) EndAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if a.Status != models.AuctionActive {
		return models.Auction{}, fmt.Errorf("service: auction %s is %s: %w", auctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}

	// Ending with no bids is a valid, if uninteresting, terminal state.
	winner := ""
	sealedWinner := ""
	if a.SealedLeadingBidder != "" {
		winner, err = s.vault.Unseal(a.SealedLeadingBidder)
		if err != nil {
			utils.Error("EndAuction: cannot unseal leading bidder", map[string]any{"auction_id": auctionID, "error": err.Error()})
			return models.Auction{}, fmt.Errorf("service: auction %s has an unreadable leading bidder: %w", auctionID, err)
		}
		sealedWinner, err = s.vault.Seal(winner)
		if err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to seal winner for auction %s: %w", auctionID, err)
		}
	}

	if err := s.repo.TransitionAuction(auctionID, models.AuctionActive, models.AuctionEnded, sealedWinner); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to end auction %s: %w", auctionID, err)
	}

	if winner != "" {
		// Best effort: a lost notification must not roll back the state change.
		if err := s.notifier.Send(winner, "auction_won", map[string]any{
			"auction_id":  auctionID,
			"listing_ref": a.ListingRef,
			"amount":      a.CurrentBid,
		}); err != nil {
			utils.Warn("EndAuction: winner notification failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		}
	}

	return s.repo.GetAuction(auctionID)
}

// CancelAuction cancels an active auction. Only the listing owner or an
// administrator may cancel; bids already in the ledger stay as they are.
func (s *AuctionService) CancelAuction(auctionID, actorID string, role models.Role) error {
	if auctionID == "" || actorID == "" {
		return fmt.Errorf("service: %w - missing auctionID or actor", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	if role != models.RoleAdmin {
		seller, err := s.vault.Unseal(a.SealedSeller)
		if err != nil {
			utils.Error("CancelAuction: cannot unseal seller reference", map[string]any{"auction_id": auctionID, "error": err.Error()})
			return fmt.Errorf("service: auction %s has an unreadable seller reference: %w", auctionID, err)
		}
		if actorID != seller {
			return fmt.Errorf("service: actor may not cancel auction %s: %w", auctionID, auctionerrors.ErrNotAuthorized)
		}
	}

	if a.Status != models.AuctionActive {
		return fmt.Errorf("service: auction %s is %s: %w", auctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}

	if err := s.repo.TransitionAuction(auctionID, models.AuctionActive, models.AuctionCancelled, ""); err != nil {
		return fmt.Errorf("service: failed to cancel auction %s: %w", auctionID, err)
	}
	return nil
}

// GetAuction loads an auction and projects it for the viewer.
func (s *AuctionService) GetAuction(auctionID string, role models.Role, viewerID string) (AuctionView, error) {
	if auctionID == "" {
		return AuctionView{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return AuctionView{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	return s.Project(a, role, viewerID)
}
