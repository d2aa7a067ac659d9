package settlement

import (
	"fmt"
	"time"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/utils"
)

// SettlementView is the role-projected read model of a settlement. A
// settlement is never public: only its two parties and administrators may
// read it, and each party sees the counterpart only as a pseudonym.
type SettlementView struct {
	View              string              `json:"view"`
	SettlementID      string              `json:"settlement_id"`
	AuctionRef        string              `json:"auction_ref"`
	ListingRef        string              `json:"listing_ref"`
	SellerPseudonym   string              `json:"seller_pseudonym"`
	BuyerPseudonym    string              `json:"buyer_pseudonym"`
	FinalAmount       float64             `json:"final_amount"`
	PlatformCut       float64             `json:"platform_cut"`
	PayoutAmount      float64             `json:"payout_amount"`
	EscrowState       models.EscrowState  `json:"escrow_state"`
	SellerAppointment models.Appointment  `json:"seller_appointment"`
	BuyerAppointment  models.Appointment  `json:"buyer_appointment"`
	MeetingState      models.MeetingState `json:"meeting_state"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty"`

	// administrator projection
	Seller      string `json:"seller,omitempty"`
	Buyer       string `json:"buyer,omitempty"`
	ReleaseNote string `json:"release_note,omitempty"`
}

const (
	viewSeller = "seller"
	viewBuyer  = "buyer"
	viewAdmin  = "admin"
)

// Project derives the viewer's read model from a settlement record.
// Administrators see both unsealed parties and the release audit note; the
// seller and buyer each see their own half plus the counterpart's pseudonym;
// anyone else is rejected with ErrNotAuthorized. A decryption failure here
// aborts the projection rather than leaking an empty field.
func (s *SettlementService) Project(rec models.Settlement, role models.Role, viewerID string) (SettlementView, error) {
	v := SettlementView{
		SettlementID:      rec.SettlementID,
		AuctionRef:        rec.AuctionRef,
		ListingRef:        rec.ListingRef,
		SellerPseudonym:   rec.SellerPseudonym,
		BuyerPseudonym:    rec.BuyerPseudonym,
		FinalAmount:       rec.FinalAmount,
		PlatformCut:       rec.PlatformCut,
		PayoutAmount:      rec.PayoutAmount,
		EscrowState:       rec.EscrowState,
		SellerAppointment: rec.SellerAppointment,
		BuyerAppointment:  rec.BuyerAppointment,
		MeetingState:      rec.MeetingState,
		CompletedAt:       rec.CompletedAt,
	}

	if role == models.RoleAdmin {
		seller, err := s.vault.Unseal(rec.SealedSeller)
		if err != nil {
			utils.Error("Project: cannot unseal seller for admin view", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
			return SettlementView{}, fmt.Errorf("service: admin projection of settlement %s: %w", rec.SettlementID, err)
		}
		buyer, err := s.vault.Unseal(rec.SealedBuyer)
		if err != nil {
			utils.Error("Project: cannot unseal buyer for admin view", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
			return SettlementView{}, fmt.Errorf("service: admin projection of settlement %s: %w", rec.SettlementID, err)
		}
		v.View = viewAdmin
		v.Seller = seller
		v.Buyer = buyer
		v.ReleaseNote = rec.ReleaseNote
		return v, nil
	}

	if viewerID != "" {
		seller, err := s.vault.Unseal(rec.SealedSeller)
		if err != nil {
			utils.Error("Project: cannot unseal seller reference", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
			return SettlementView{}, fmt.Errorf("service: projection of settlement %s: %w", rec.SettlementID, err)
		}
		if viewerID == seller {
			v.View = viewSeller
			return v, nil
		}

		buyer, err := s.vault.Unseal(rec.SealedBuyer)
		if err != nil {
			utils.Error("Project: cannot unseal buyer reference", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
			return SettlementView{}, fmt.Errorf("service: projection of settlement %s: %w", rec.SettlementID, err)
		}
		if viewerID == buyer {
			v.View = viewBuyer
			return v, nil
		}
	}

	return SettlementView{}, fmt.Errorf("service: viewer may not read settlement %s: %w", rec.SettlementID, auctionerrors.ErrNotAuthorized)
}
