package auction

import (
	"fmt"
	"time"

	"veilmarket/internal/models"
	"veilmarket/utils"
)

// AuctionView is the role-projected read model of an auction. Sealed
// references never appear here; privileged fields are populated only for
// the matching role.
type AuctionView struct {
	View             string               `json:"view"`
	AuctionID        string               `json:"auction_id"`
	ListingRef       string               `json:"listing_ref"`
	SellerPseudonym  string               `json:"seller_pseudonym"`
	StartingBid      float64              `json:"starting_bid"`
	CurrentBid       float64              `json:"current_bid"`
	TotalBids        int                  `json:"total_bids"`
	LeadingPseudonym string               `json:"leading_pseudonym,omitempty"`
	EndTime          time.Time            `json:"end_time"`
	Status           models.AuctionStatus `json:"status"`

	// owner projection
	Notes string `json:"notes,omitempty"`

	// administrator projection
	LeadingBidder string `json:"leading_bidder,omitempty"`
	Winner        string `json:"winner,omitempty"`
}

const (
	viewPublic = "public"
	viewOwner  = "owner"
	viewAdmin  = "admin"
)

// Project derives the viewer's read model from an auction record. It is a
// pure function of (record, role, viewerID): public viewers get pseudonyms
// and status only, the listing owner additionally sees the verification
// notes, and administrators see the unsealed leading bidder and winner.
// Decryption failures in a privileged projection abort the projection; they
// are never papered over with empty fields.
func (s *AuctionService) Project(a models.Auction, role models.Role, viewerID string) (AuctionView, error) {
	v := AuctionView{
		View:             viewPublic,
		AuctionID:        a.AuctionID,
		ListingRef:       a.ListingRef,
		SellerPseudonym:  a.SellerPseudonym,
		StartingBid:      a.StartingBid,
		CurrentBid:       a.CurrentBid,
		TotalBids:        a.TotalBids,
		LeadingPseudonym: a.LeadingPseudonym,
		EndTime:          a.EndTime,
		Status:           a.Status,
	}

	switch role {
	case models.RoleAdmin:
		leading, err := s.vault.Unseal(a.SealedLeadingBidder)
		if err != nil {
			utils.Error("Project: cannot unseal leading bidder for admin view", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
			return AuctionView{}, fmt.Errorf("service: admin projection of auction %s: %w", a.AuctionID, err)
		}
		winner, err := s.vault.Unseal(a.SealedWinner)
		if err != nil {
			utils.Error("Project: cannot unseal winner for admin view", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
			return AuctionView{}, fmt.Errorf("service: admin projection of auction %s: %w", a.AuctionID, err)
		}
		v.View = viewAdmin
		v.Notes = a.Notes
		v.LeadingBidder = leading
		v.Winner = winner
		return v, nil

	case models.RoleUser:
		if viewerID == "" {
			return v, nil
		}
		seller, err := s.vault.Unseal(a.SealedSeller)
		if err != nil {
			utils.Error("Project: cannot unseal seller reference", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
			return AuctionView{}, fmt.Errorf("service: projection of auction %s: %w", a.AuctionID, err)
		}
		if viewerID == seller {
			v.View = viewOwner
			v.Notes = a.Notes
		}
		return v, nil

	default:
		return v, nil
	}
}
