package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
)

// GormRepo is the Postgres-backed implementation of MarketDB. Conditional
// updates are expressed as guarded UPDATE statements inside transactions, so
// the same compare-and-swap discipline as MemoryRepo holds across processes.
// Pseudonym and per-auction settlement uniqueness ride on unique indexes.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo connects to Postgres and migrates the engine's tables.
func NewGormRepo(dsn string) (*GormRepo, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // surface duplicate keys as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Auction{}, &models.Bid{}, &models.Settlement{}); err != nil {
		return nil, fmt.Errorf("repository: migration failed: %w", err)
	}
	return &GormRepo{db: db}, nil
}

func (r *GormRepo) CreateAuction(a models.Auction) error {
	if err := r.db.Create(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create auction %s: %w", a.AuctionID, auctionerrors.ErrPseudonymTaken)
		}
		return fmt.Errorf("create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

func (r *GormRepo) GetAuction(auctionID string) (models.Auction, error) {
	var a models.Auction
	err := r.db.First(&a, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

func (r *GormRepo) CommitLeadingBid(bid models.Bid, expectedCurrentBid float64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// The guarded UPDATE is the compare-and-swap: zero rows means a
		// concurrent bid moved CurrentBid (or the auction left active).
		res := tx.Model(&models.Auction{}).
			Where("auction_id = ? AND status = ? AND current_bid = ?",
				bid.AuctionRef, models.AuctionActive, expectedCurrentBid).
			Updates(map[string]any{
				"current_bid":           bid.Amount,
				"total_bids":            gorm.Expr("total_bids + 1"),
				"sealed_leading_bidder": bid.SealedBidder,
				"leading_pseudonym":     bid.BidderPseudonym,
				"leading_bid_id":        bid.BidID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return auctionerrors.ErrBidConflict
		}

		if err := tx.Model(&models.Bid{}).
			Where("auction_ref = ? AND is_winning", bid.AuctionRef).
			Update("is_winning", false).Error; err != nil {
			return err
		}

		bid.IsWinning = true
		if err := tx.Create(&bid).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return auctionerrors.ErrPseudonymTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit bid for auction %s: %w", bid.AuctionRef, err)
	}
	return nil
}

func (r *GormRepo) TransitionAuction(auctionID string, from, to models.AuctionStatus, sealedWinner string) error {
	fields := map[string]any{"status": to}
	if to == models.AuctionEnded {
		fields["sealed_winner"] = sealedWinner
	}

	res := r.db.Model(&models.Auction{}).
		Where("auction_id = ? AND status = ?", auctionID, from).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("transition auction %s: %w", auctionID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Auction{}).Where("auction_id = ?", auctionID).Count(&count)
		if count == 0 {
			return fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return fmt.Errorf("transition auction %s from %s to %s: %w", auctionID, from, to, auctionerrors.ErrInvalidTransition)
	}
	return nil
}

func (r *GormRepo) ListBidsForAuction(auctionID string) ([]models.Bid, error) {
	var count int64
	if err := r.db.Model(&models.Auction{}).Where("auction_id = ?", auctionID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	var bids []models.Bid
	if err := r.db.Where("auction_ref = ?", auctionID).Order("created_at asc").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

func (r *GormRepo) ListBids() ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.Order("created_at asc").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

func (r *GormRepo) CreateSettlement(s models.Settlement) error {
	if err := r.db.Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create settlement for auction %s: %w", s.AuctionRef, auctionerrors.ErrSettlementExists)
		}
		return fmt.Errorf("create settlement for auction %s: %w", s.AuctionRef, err)
	}
	return nil
}

func (r *GormRepo) GetSettlement(settlementID string) (models.Settlement, error) {
	var s models.Settlement
	err := r.db.First(&s, "settlement_id = ?", settlementID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settlement{}, fmt.Errorf("get settlement %s: %w", settlementID, auctionerrors.ErrSettlementNotFound)
	}
	if err != nil {
		return models.Settlement{}, fmt.Errorf("get settlement %s: %w", settlementID, err)
	}
	return s, nil
}

func (r *GormRepo) ConfirmAppointment(settlementID string, side models.Side, appt models.Appointment) error {
	prefix, err := apptColumnPrefix(side)
	if err != nil {
		return fmt.Errorf("confirm appointment on %s: %w", settlementID, err)
	}

	res := r.db.Model(&models.Settlement{}).
		Where("settlement_id = ? AND escrow_state = ? AND "+prefix+"_status <> ?",
			settlementID, models.EscrowHeld, models.AppointmentCompleted).
		Updates(map[string]any{
			prefix + "_date":      appt.Date,
			prefix + "_time_slot": appt.TimeSlot,
			prefix + "_status":    models.AppointmentConfirmed,
		})
	if res.Error != nil {
		return fmt.Errorf("confirm appointment on %s: %w", settlementID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetSettlement(settlementID); err != nil {
			return err
		}
		return fmt.Errorf("confirm appointment on %s: side %s: %w", settlementID, side, auctionerrors.ErrInvalidTransition)
	}
	return nil
}

func (r *GormRepo) CompleteAppointment(settlementID string, side models.Side, completedAt time.Time) (models.Settlement, bool, error) {
	prefix, err := apptColumnPrefix(side)
	if err != nil {
		return models.Settlement{}, false, fmt.Errorf("complete appointment on %s: %w", settlementID, err)
	}

	var out models.Settlement
	released := false
	txErr := r.db.Transaction(func(tx *gorm.DB) error {
		var s models.Settlement
		if err := tx.Clauses(forUpdate()).First(&s, "settlement_id = ?", settlementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrSettlementNotFound
			}
			return err
		}

		// Repeated completion after release is a no-op, not an error.
		if s.EscrowState != models.EscrowHeld {
			out = s
			return nil
		}

		half, err := appointmentFor(&s, side)
		if err != nil {
			return err
		}
		if half.Status == models.AppointmentPending {
			return auctionerrors.ErrInvalidTransition
		}

		fields := map[string]any{prefix + "_status": models.AppointmentCompleted}
		half.Status = models.AppointmentCompleted
		switch {
		case s.SellerAppointment.Status == models.AppointmentCompleted && s.BuyerAppointment.Status == models.AppointmentCompleted:
			s.MeetingState = models.MeetingCompleted
			s.EscrowState = models.EscrowReleased
			at := completedAt
			s.CompletedAt = &at
			fields["meeting_state"] = s.MeetingState
			fields["escrow_state"] = s.EscrowState
			fields["completed_at"] = completedAt
			released = true
		case s.SellerAppointment.Status == models.AppointmentCompleted:
			s.MeetingState = models.MeetingSellerCompleted
			fields["meeting_state"] = s.MeetingState
		default:
			s.MeetingState = models.MeetingBuyerCompleted
			fields["meeting_state"] = s.MeetingState
		}

		if err := tx.Model(&models.Settlement{}).
			Where("settlement_id = ?", settlementID).
			Updates(fields).Error; err != nil {
			return err
		}
		out = s
		return nil
	})
	if txErr != nil {
		return models.Settlement{}, false, fmt.Errorf("complete appointment on %s: %w", settlementID, txErr)
	}
	return out, released, nil
}

func (r *GormRepo) ReleaseEscrow(settlementID string, to models.EscrowState, note string, at time.Time) (models.Settlement, error) {
	if to != models.EscrowReleased && to != models.EscrowRefunded {
		return models.Settlement{}, fmt.Errorf("release escrow on %s: %s is not a terminal escrow state: %w", settlementID, to, auctionerrors.ErrInvalidInput)
	}

	res := r.db.Model(&models.Settlement{}).
		Where("settlement_id = ? AND escrow_state = ?", settlementID, models.EscrowHeld).
		Updates(map[string]any{
			"escrow_state": to,
			"release_note": note,
			"completed_at": at,
		})
	if res.Error != nil {
		return models.Settlement{}, fmt.Errorf("release escrow on %s: %w", settlementID, res.Error)
	}
	if res.RowsAffected == 0 {
		s, err := r.GetSettlement(settlementID)
		if err != nil {
			return models.Settlement{}, err
		}
		return models.Settlement{}, fmt.Errorf("release escrow on %s: escrow %s: %w", settlementID, s.EscrowState, auctionerrors.ErrInvalidTransition)
	}
	return r.GetSettlement(settlementID)
}

// forUpdate row-locks the settlement while the release rule is re-evaluated
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// apptColumnPrefix maps a side to its embedded column prefix
func apptColumnPrefix(side models.Side) (string, error) {
	switch side {
	case models.SideSeller:
		return "seller_appt", nil
	case models.SideBuyer:
		return "buyer_appt", nil
	default:
		return "", fmt.Errorf("unknown side %q: %w", side, auctionerrors.ErrInvalidInput)
	}
}
