package settlement

import (
	"fmt"
	"time"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/internal/notify"
	"veilmarket/internal/repository"
	"veilmarket/internal/vault"
	"veilmarket/utils"
)

// SettlementService coordinates post-auction escrow: one settlement per won
// auction, two independently confirmed appointments, and an escrow release
// that fires exactly once when both halves complete.
type SettlementService struct {
	repo     repository.MarketDB
	vault    *vault.Vault
	notifier notify.Notifier
	now      func() time.Time
}

// NewSettlementService creates a new SettlementService instance
func NewSettlementService(repo repository.MarketDB, v *vault.Vault, notifier notify.Notifier) *SettlementService {
	return &SettlementService{
		repo:     repo,
		vault:    v,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Materialize creates the settlement record for an ended auction with a
// winner. The uniqueness constraint on the auction reference makes a second
// call fail with ErrSettlementExists, never a duplicate record.
func (s *SettlementService) Materialize(auctionID string, commissionRate float64) (models.Settlement, error) {
	if auctionID == "" {
		return models.Settlement{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if commissionRate < 0 || commissionRate >= 1 {
		return models.Settlement{}, fmt.Errorf("service: %w - commission rate %.2f out of [0,1)", auctionerrors.ErrInvalidInput, commissionRate)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if a.Status != models.AuctionEnded {
		return models.Settlement{}, fmt.Errorf("service: auction %s is %s: %w", auctionID, a.Status, auctionerrors.ErrAuctionNotEnded)
	}
	if a.SealedWinner == "" {
		return models.Settlement{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNoWinner)
	}

	seller, err := s.vault.Unseal(a.SealedSeller)
	if err != nil {
		utils.Error("Materialize: cannot unseal seller reference", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return models.Settlement{}, fmt.Errorf("service: auction %s has an unreadable seller reference: %w", auctionID, err)
	}
	buyer, err := s.vault.Unseal(a.SealedWinner)
	if err != nil {
		utils.Error("Materialize: cannot unseal winner reference", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return models.Settlement{}, fmt.Errorf("service: auction %s has an unreadable winner reference: %w", auctionID, err)
	}

	sealedSeller, err := s.vault.Seal(seller)
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to seal settlement seller: %w", err)
	}
	sealedBuyer, err := s.vault.Seal(buyer)
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to seal settlement buyer: %w", err)
	}

	finalAmount := a.CurrentBid
	platformCut := finalAmount * commissionRate

	rec := models.Settlement{
		SettlementID:      utils.GenerateID(),
		AuctionRef:        auctionID,
		ListingRef:        a.ListingRef,
		SealedSeller:      sealedSeller,
		SealedBuyer:       sealedBuyer,
		SellerPseudonym:   a.SellerPseudonym,
		BuyerPseudonym:    a.LeadingPseudonym,
		FinalAmount:       finalAmount,
		PlatformCut:       platformCut,
		PayoutAmount:      finalAmount - platformCut,
		EscrowState:       models.EscrowHeld,
		SellerAppointment: models.Appointment{Status: models.AppointmentPending},
		BuyerAppointment:  models.Appointment{Status: models.AppointmentPending},
		MeetingState:      models.MeetingPending,
		CreatedAt:         s.now(),
	}

	if err := s.repo.CreateSettlement(rec); err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to materialize settlement for auction %s: %w", auctionID, err)
	}
	return rec, nil
}

// ConfirmAppointment records one side's meeting date and time. Only the
// matching sealed party, or an administrator, may write that half.
func (s *SettlementService) ConfirmAppointment(settlementID string, side models.Side, date, timeSlot, actorID string, role models.Role) error {
	if settlementID == "" || date == "" || timeSlot == "" {
		return fmt.Errorf("service: %w - missing settlementID, date or time", auctionerrors.ErrInvalidInput)
	}

	rec, err := s.repo.GetSettlement(settlementID)
	if err != nil {
		return fmt.Errorf("service: failed to load settlement %s: %w", settlementID, err)
	}
	if err := s.authorizeParty(rec, side, actorID, role); err != nil {
		return err
	}

	appt := models.Appointment{Date: date, TimeSlot: timeSlot, Status: models.AppointmentConfirmed}
	if err := s.repo.ConfirmAppointment(settlementID, side, appt); err != nil {
		return fmt.Errorf("service: failed to confirm %s appointment on %s: %w", side, settlementID, err)
	}

	// Tell the other party; best effort.
	counterpart, err := s.counterpartOf(rec, side)
	if err == nil && counterpart != "" {
		if err := s.notifier.Send(counterpart, "appointment_confirmed", map[string]any{
			"settlement_id": settlementID,
			"side":          string(side),
			"date":          date,
			"time_slot":     timeSlot,
		}); err != nil {
			utils.Warn("ConfirmAppointment: counterpart notification failed", map[string]any{"settlement_id": settlementID, "error": err.Error()})
		}
	}
	return nil
}

// CompleteAppointment marks one side's meeting done. When both sides are
// done the store releases escrow in the same atomic step; completing an
// already-completed side, or completing after release, is a quiet no-op.
func (s *SettlementService) CompleteAppointment(settlementID string, side models.Side, actorID string, role models.Role) (models.Settlement, error) {
	if settlementID == "" {
		return models.Settlement{}, fmt.Errorf("service: %w - empty settlement ID", auctionerrors.ErrInvalidInput)
	}

	rec, err := s.repo.GetSettlement(settlementID)
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to load settlement %s: %w", settlementID, err)
	}
	if err := s.authorizeParty(rec, side, actorID, role); err != nil {
		return models.Settlement{}, err
	}

	updated, released, err := s.repo.CompleteAppointment(settlementID, side, s.now())
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to complete %s appointment on %s: %w", side, settlementID, err)
	}

	if released {
		s.onReleased(updated)
	}
	return updated, nil
}

// ForceRelease is the audited administrator override of the two-appointment
// rule. It exists for disputes the happy path cannot resolve and every use
// is logged with its reason.
func (s *SettlementService) ForceRelease(settlementID, adminID, reason string) (models.Settlement, error) {
	if settlementID == "" || reason == "" {
		return models.Settlement{}, fmt.Errorf("service: %w - missing settlementID or reason", auctionerrors.ErrInvalidInput)
	}

	updated, err := s.repo.ReleaseEscrow(settlementID, models.EscrowReleased, reason, s.now())
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to force-release settlement %s: %w", settlementID, err)
	}

	utils.Warn("escrow force-released by administrator", map[string]any{
		"settlement_id": settlementID,
		"admin_id":      adminID,
		"reason":        reason,
	})
	s.onReleased(updated)
	return updated, nil
}

// Refund is the audited administrator path that returns held funds to the
// buyer instead of releasing them to the seller.
func (s *SettlementService) Refund(settlementID, adminID, reason string) (models.Settlement, error) {
	if settlementID == "" || reason == "" {
		return models.Settlement{}, fmt.Errorf("service: %w - missing settlementID or reason", auctionerrors.ErrInvalidInput)
	}

	updated, err := s.repo.ReleaseEscrow(settlementID, models.EscrowRefunded, reason, s.now())
	if err != nil {
		return models.Settlement{}, fmt.Errorf("service: failed to refund settlement %s: %w", settlementID, err)
	}

	utils.Warn("escrow refunded by administrator", map[string]any{
		"settlement_id": settlementID,
		"admin_id":      adminID,
		"reason":        reason,
	})
	return updated, nil
}

// onReleased runs the post-release side effects: the auction moves
// ended -> completed and both parties are notified. All best effort.
func (s *SettlementService) onReleased(rec models.Settlement) {
	if err := s.repo.TransitionAuction(rec.AuctionRef, models.AuctionEnded, models.AuctionCompleted, ""); err != nil {
		utils.Warn("onReleased: could not complete auction", map[string]any{"auction_id": rec.AuctionRef, "error": err.Error()})
	}

	data := map[string]any{
		"settlement_id": rec.SettlementID,
		"payout_amount": rec.PayoutAmount,
		"final_amount":  rec.FinalAmount,
	}
	for _, sealed := range []string{rec.SealedSeller, rec.SealedBuyer} {
		party, err := s.vault.Unseal(sealed)
		if err != nil {
			utils.Error("onReleased: unreadable party reference", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
			continue
		}
		if err := s.notifier.Send(party, "escrow_released", data); err != nil {
			utils.Warn("onReleased: release notification failed", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
		}
	}
}

// authorizeParty checks that the actor is the sealed party for the given
// side, or an administrator.
func (s *SettlementService) authorizeParty(rec models.Settlement, side models.Side, actorID string, role models.Role) error {
	if role == models.RoleAdmin {
		return nil
	}
	if actorID == "" {
		return fmt.Errorf("service: %w - anonymous caller", auctionerrors.ErrNotParty)
	}

	var sealed string
	switch side {
	case models.SideSeller:
		sealed = rec.SealedSeller
	case models.SideBuyer:
		sealed = rec.SealedBuyer
	default:
		return fmt.Errorf("service: %w - unknown side %q", auctionerrors.ErrInvalidInput, side)
	}

	party, err := s.vault.Unseal(sealed)
	if err != nil {
		utils.Error("authorizeParty: unreadable party reference", map[string]any{"settlement_id": rec.SettlementID, "error": err.Error()})
		return fmt.Errorf("service: settlement %s has an unreadable %s reference: %w", rec.SettlementID, side, err)
	}
	if actorID != party {
		return fmt.Errorf("service: actor is not the %s on settlement %s: %w", side, rec.SettlementID, auctionerrors.ErrNotParty)
	}
	return nil
}

// counterpartOf returns the unsealed identifier of the other side's party
func (s *SettlementService) counterpartOf(rec models.Settlement, side models.Side) (string, error) {
	switch side {
	case models.SideSeller:
		return s.vault.Unseal(rec.SealedBuyer)
	case models.SideBuyer:
		return s.vault.Unseal(rec.SealedSeller)
	default:
		return "", fmt.Errorf("unknown side %q: %w", side, auctionerrors.ErrInvalidInput)
	}
}

// GetSettlement loads a settlement and projects it for the viewer.
func (s *SettlementService) GetSettlement(settlementID string, role models.Role, viewerID string) (SettlementView, error) {
	if settlementID == "" {
		return SettlementView{}, fmt.Errorf("service: %w - empty settlement ID", auctionerrors.ErrInvalidInput)
	}

	rec, err := s.repo.GetSettlement(settlementID)
	if err != nil {
		return SettlementView{}, fmt.Errorf("service: failed to load settlement %s: %w", settlementID, err)
	}
	return s.Project(rec, role, viewerID)
}
