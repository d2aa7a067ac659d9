package register

import (
	"fmt"
	"sort"
	"time"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/internal/repository"
	"veilmarket/internal/vault"
	"veilmarket/utils"
)

// BidEntry is the pseudonymous read model of one ledger entry.
type BidEntry struct {
	BidID           string    `json:"bid_id"`
	AuctionRef      string    `json:"auction_ref"`
	BidderPseudonym string    `json:"bidder_pseudonym"`
	Amount          float64   `json:"amount"`
	IsWinning       bool      `json:"is_winning"`
	CreatedAt       time.Time `json:"created_at"`
}

// Register is the read side of the append-only bid ledger.
type Register struct {
	repo  repository.MarketDB
	vault *vault.Vault
}

// NewRegister creates a new Register instance
func NewRegister(repo repository.MarketDB, v *vault.Vault) *Register {
	return &Register{repo: repo, vault: v}
}

// ListForAuction returns an auction's bids ordered by amount descending,
// the display order for a listing page.
func (r *Register) ListForAuction(auctionID string) ([]BidEntry, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("register: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := r.repo.ListBidsForAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("register: failed to list bids for auction %s: %w", auctionID, err)
	}

	entries := toEntries(bids)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Amount > entries[j].Amount })
	return entries, nil
}

// AuditTrail returns an auction's bids ordered by timestamp ascending, the
// order an auditor replays them in.
func (r *Register) AuditTrail(auctionID string) ([]BidEntry, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("register: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := r.repo.ListBidsForAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("register: failed to list bids for auction %s: %w", auctionID, err)
	}

	entries := toEntries(bids)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

// ListForBidder returns every bid a bidder has placed across all auctions.
// Each candidate's sealed reference must be unsealed and compared, an O(n)
// scan over the whole ledger. Acceptable at this deployment's bid volume; a
// scalability limit, not a correctness one. An unreadable sealed reference
// aborts the scan: this is a privileged path and a decryption failure here
// means corruption, not an access decision.
func (r *Register) ListForBidder(bidderID string) ([]BidEntry, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("register: %w - empty bidder ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := r.repo.ListBids()
	if err != nil {
		return nil, fmt.Errorf("register: failed to scan bid ledger: %w", err)
	}

	var entries []BidEntry
	for _, b := range bids {
		owner, err := r.vault.Unseal(b.SealedBidder)
		if err != nil {
			utils.Error("ListForBidder: unreadable sealed bidder in ledger", map[string]any{"bid_id": b.BidID, "error": err.Error()})
			return nil, fmt.Errorf("register: bid %s has an unreadable bidder reference: %w", b.BidID, err)
		}
		if owner == bidderID {
			entries = append(entries, toEntry(b))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

func toEntry(b models.Bid) BidEntry {
	return BidEntry{
		BidID:           b.BidID,
		AuctionRef:      b.AuctionRef,
		BidderPseudonym: b.BidderPseudonym,
		Amount:          b.Amount,
		IsWinning:       b.IsWinning,
		CreatedAt:       b.CreatedAt,
	}
}

func toEntries(bids []models.Bid) []BidEntry {
	entries := make([]BidEntry, 0, len(bids))
	for _, b := range bids {
		entries = append(entries, toEntry(b))
	}
	return entries
}
