package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
)

// Helper to create an active auction
func newAuction(auctionID, sellerPseudonym string, startingBid float64) models.Auction {
	return models.Auction{
		AuctionID:       auctionID,
		ListingRef:      fmt.Sprintf("listing-%s", auctionID),
		SealedSeller:    "aa:bb:cc",
		SellerPseudonym: sellerPseudonym,
		StartingBid:     startingBid,
		Status:          models.AuctionActive,
		EndTime:         time.Now().UTC().Add(24 * time.Hour),
		CreatedAt:       time.Now().UTC(),
	}
}

// Helper to create a bid
func newBid(bidID, auctionID, pseudonym string, amount float64) models.Bid {
	return models.Bid{
		BidID:           bidID,
		AuctionRef:      auctionID,
		SealedBidder:    "dd:ee:ff",
		BidderPseudonym: pseudonym,
		Amount:          amount,
		CreatedAt:       time.Now().UTC(),
	}
}

// Helper to create a held settlement with both halves pending
func newSettlement(settlementID, auctionID string) models.Settlement {
	return models.Settlement{
		SettlementID:      settlementID,
		AuctionRef:        auctionID,
		ListingRef:        fmt.Sprintf("listing-%s", auctionID),
		FinalAmount:       200,
		PlatformCut:       10,
		PayoutAmount:      190,
		EscrowState:       models.EscrowHeld,
		SellerAppointment: models.Appointment{Status: models.AppointmentPending},
		BuyerAppointment:  models.Appointment{Status: models.AppointmentPending},
		MeetingState:      models.MeetingPending,
		CreatedAt:         time.Now().UTC(),
	}
}

// Test CreateAuction
func TestMemoryRepo_CreateAuction(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(newAuction("a1", "SELLER_AAAA0001", 100)))

	t.Run("duplicate_auction_id", func(t *testing.T) {
		err := repo.CreateAuction(newAuction("a1", "SELLER_AAAA0002", 100))
		require.Error(t, err)
	})

	t.Run("duplicate_pseudonym", func(t *testing.T) {
		err := repo.CreateAuction(newAuction("a2", "SELLER_AAAA0001", 100))
		require.ErrorIs(t, err, auctionerrors.ErrPseudonymTaken)
	})

	t.Run("stored_record_round_trips", func(t *testing.T) {
		got, err := repo.GetAuction("a1")
		require.NoError(t, err)
		require.Equal(t, "SELLER_AAAA0001", got.SellerPseudonym)
		require.Equal(t, models.AuctionActive, got.Status)
	})
}

// Test GetAuction for a missing record
func TestMemoryRepo_GetAuction_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	_, err := repo.GetAuction("nope")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}

// Test CommitLeadingBid guard behaviour
func TestMemoryRepo_CommitLeadingBid(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(newAuction("a1", "SELLER_AAAA0003", 100)))

	t.Run("first_bid_installs_leader", func(t *testing.T) {
		require.NoError(t, repo.CommitLeadingBid(newBid("b1", "a1", "BIDDER_AAAA0001", 150), 0))

		a, err := repo.GetAuction("a1")
		require.NoError(t, err)
		require.Equal(t, 150.0, a.CurrentBid)
		require.Equal(t, 1, a.TotalBids)
		require.Equal(t, "BIDDER_AAAA0001", a.LeadingPseudonym)
		require.Equal(t, "b1", a.LeadingBidID)
	})

	t.Run("stale_snapshot_conflicts", func(t *testing.T) {
		err := repo.CommitLeadingBid(newBid("b2", "a1", "BIDDER_AAAA0002", 160), 0)
		require.ErrorIs(t, err, auctionerrors.ErrBidConflict)
	})

	t.Run("fresh_snapshot_replaces_leader", func(t *testing.T) {
		require.NoError(t, repo.CommitLeadingBid(newBid("b3", "a1", "BIDDER_AAAA0003", 200), 150))

		bids, err := repo.ListBidsForAuction("a1")
		require.NoError(t, err)
		require.Len(t, bids, 2)

		winners := 0
		for _, b := range bids {
			if b.IsWinning {
				winners++
				require.Equal(t, "b3", b.BidID)
			}
		}
		require.Equal(t, 1, winners)
	})

	t.Run("taken_pseudonym_rejected", func(t *testing.T) {
		err := repo.CommitLeadingBid(newBid("b4", "a1", "BIDDER_AAAA0003", 250), 200)
		require.ErrorIs(t, err, auctionerrors.ErrPseudonymTaken)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		err := repo.CommitLeadingBid(newBid("b5", "nope", "BIDDER_AAAA0004", 100), 0)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("inactive_auction_conflicts", func(t *testing.T) {
		require.NoError(t, repo.TransitionAuction("a1", models.AuctionActive, models.AuctionEnded, "sealed-winner"))
		err := repo.CommitLeadingBid(newBid("b6", "a1", "BIDDER_AAAA0005", 300), 200)
		require.ErrorIs(t, err, auctionerrors.ErrBidConflict)
	})
}

// Under contention exactly one bid per snapshot wins the compare-and-swap
func TestMemoryRepo_CommitLeadingBid_Concurrent(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(newAuction("a1", "SELLER_AAAA0004", 100)))

	const racers = 50
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			bid := newBid(fmt.Sprintf("b%d", i), "a1", fmt.Sprintf("BIDDER_RACE%04d", i), float64(150+i))
			errs[i] = repo.CommitLeadingBid(bid, 0)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, auctionerrors.ErrBidConflict)
		}
	}
	require.Equal(t, 1, succeeded)

	a, err := repo.GetAuction("a1")
	require.NoError(t, err)
	require.Equal(t, 1, a.TotalBids)
}

// Test TransitionAuction
func TestMemoryRepo_TransitionAuction(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(newAuction("a1", "SELLER_AAAA0005", 100)))

	tests := []struct {
		name      string
		auctionID string
		from      models.AuctionStatus
		to        models.AuctionStatus
		wantErr   error
	}{
		{name: "active_to_ended", auctionID: "a1", from: models.AuctionActive, to: models.AuctionEnded},
		{name: "repeat_end_rejected", auctionID: "a1", from: models.AuctionActive, to: models.AuctionEnded, wantErr: auctionerrors.ErrInvalidTransition},
		{name: "ended_to_completed", auctionID: "a1", from: models.AuctionEnded, to: models.AuctionCompleted},
		{name: "unknown_auction", auctionID: "nope", from: models.AuctionActive, to: models.AuctionEnded, wantErr: auctionerrors.ErrAuctionNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.TransitionAuction(tc.auctionID, tc.from, tc.to, "sealed-winner")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}

	t.Run("winner_recorded_on_end", func(t *testing.T) {
		a, err := repo.GetAuction("a1")
		require.NoError(t, err)
		require.Equal(t, "sealed-winner", a.SealedWinner)
	})
}

// Test ListBidsForAuction ordering and scoping
func TestMemoryRepo_ListBids(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(newAuction("a1", "SELLER_AAAA0006", 100)))
	require.NoError(t, repo.CommitLeadingBid(newBid("b1", "a1", "BIDDER_BBBB0001", 110), 0))
	require.NoError(t, repo.CommitLeadingBid(newBid("b2", "a1", "BIDDER_BBBB0002", 140), 110))

	t.Run("submission_order", func(t *testing.T) {
		bids, err := repo.ListBidsForAuction("a1")
		require.NoError(t, err)
		require.Len(t, bids, 2)
		require.Equal(t, "b1", bids[0].BidID)
		require.Equal(t, "b2", bids[1].BidID)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		_, err := repo.ListBidsForAuction("nope")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("list_all", func(t *testing.T) {
		all, err := repo.ListBids()
		require.NoError(t, err)
		require.Len(t, all, 2)
	})
}

// Test CreateSettlement uniqueness per auction
func TestMemoryRepo_CreateSettlement(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateSettlement(newSettlement("s1", "a1")))

	err := repo.CreateSettlement(newSettlement("s2", "a1"))
	require.ErrorIs(t, err, auctionerrors.ErrSettlementExists)

	_, err = repo.GetSettlement("s2")
	require.ErrorIs(t, err, auctionerrors.ErrSettlementNotFound)
}

// Test the appointment lifecycle and the release rule
func TestMemoryRepo_AppointmentLifecycle(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateSettlement(newSettlement("s1", "a1")))
	appt := models.Appointment{Date: "2026-09-01", TimeSlot: "10:00-11:00"}

	t.Run("complete_before_confirm_rejected", func(t *testing.T) {
		_, _, err := repo.CompleteAppointment("s1", models.SideSeller, time.Now().UTC())
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})

	t.Run("confirm_both_sides", func(t *testing.T) {
		require.NoError(t, repo.ConfirmAppointment("s1", models.SideSeller, appt))
		require.NoError(t, repo.ConfirmAppointment("s1", models.SideBuyer, appt))

		s, err := repo.GetSettlement("s1")
		require.NoError(t, err)
		require.Equal(t, models.AppointmentConfirmed, s.SellerAppointment.Status)
		require.Equal(t, models.AppointmentConfirmed, s.BuyerAppointment.Status)
	})

	t.Run("reconfirm_allowed_before_completion", func(t *testing.T) {
		moved := models.Appointment{Date: "2026-09-02", TimeSlot: "14:00-15:00"}
		require.NoError(t, repo.ConfirmAppointment("s1", models.SideSeller, moved))

		s, err := repo.GetSettlement("s1")
		require.NoError(t, err)
		require.Equal(t, "2026-09-02", s.SellerAppointment.Date)
	})

	t.Run("first_completion_holds_escrow", func(t *testing.T) {
		s, released, err := repo.CompleteAppointment("s1", models.SideSeller, time.Now().UTC())
		require.NoError(t, err)
		require.False(t, released)
		require.Equal(t, models.MeetingSellerCompleted, s.MeetingState)
		require.Equal(t, models.EscrowHeld, s.EscrowState)
	})

	t.Run("confirm_after_side_completed_rejected", func(t *testing.T) {
		err := repo.ConfirmAppointment("s1", models.SideSeller, appt)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})

	t.Run("second_completion_releases", func(t *testing.T) {
		s, released, err := repo.CompleteAppointment("s1", models.SideBuyer, time.Now().UTC())
		require.NoError(t, err)
		require.True(t, released)
		require.Equal(t, models.MeetingCompleted, s.MeetingState)
		require.Equal(t, models.EscrowReleased, s.EscrowState)
		require.NotNil(t, s.CompletedAt)
	})

	t.Run("repeat_completion_is_noop", func(t *testing.T) {
		s, released, err := repo.CompleteAppointment("s1", models.SideBuyer, time.Now().UTC())
		require.NoError(t, err)
		require.False(t, released)
		require.Equal(t, models.EscrowReleased, s.EscrowState)
	})
}

// Escrow releases exactly once no matter how the completions interleave
func TestMemoryRepo_CompleteAppointment_ReleasesOnce(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateSettlement(newSettlement("s1", "a1")))
	appt := models.Appointment{Date: "2026-09-01", TimeSlot: "10:00-11:00"}
	require.NoError(t, repo.ConfirmAppointment("s1", models.SideSeller, appt))
	require.NoError(t, repo.ConfirmAppointment("s1", models.SideBuyer, appt))

	const attempts = 20
	var wg sync.WaitGroup
	releases := make([]bool, attempts*2)

	for i := 0; i < attempts; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, released, err := repo.CompleteAppointment("s1", models.SideSeller, time.Now().UTC())
			require.NoError(t, err)
			releases[i*2] = released
		}()
		go func() {
			defer wg.Done()
			_, released, err := repo.CompleteAppointment("s1", models.SideBuyer, time.Now().UTC())
			require.NoError(t, err)
			releases[i*2+1] = released
		}()
	}
	wg.Wait()

	total := 0
	for _, r := range releases {
		if r {
			total++
		}
	}
	require.Equal(t, 1, total)
}

// Test the audited admin escrow path
func TestMemoryRepo_ReleaseEscrow(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateSettlement(newSettlement("s1", "a1")))
	require.NoError(t, repo.CreateSettlement(newSettlement("s2", "a2")))

	t.Run("refund_from_held", func(t *testing.T) {
		s, err := repo.ReleaseEscrow("s1", models.EscrowRefunded, "buyer never showed", time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, models.EscrowRefunded, s.EscrowState)
		require.Equal(t, "buyer never showed", s.ReleaseNote)
		require.NotNil(t, s.CompletedAt)
	})

	t.Run("second_release_rejected", func(t *testing.T) {
		_, err := repo.ReleaseEscrow("s1", models.EscrowReleased, "late change of heart", time.Now().UTC())
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})

	t.Run("held_is_not_a_target", func(t *testing.T) {
		_, err := repo.ReleaseEscrow("s2", models.EscrowHeld, "no-op", time.Now().UTC())
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})

	t.Run("unknown_settlement", func(t *testing.T) {
		_, err := repo.ReleaseEscrow("nope", models.EscrowReleased, "", time.Now().UTC())
		require.ErrorIs(t, err, auctionerrors.ErrSettlementNotFound)
	})
}
