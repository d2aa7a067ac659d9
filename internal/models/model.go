package models

import "time"

// Role is the privilege level of a viewer or actor
type Role string

const (
	RolePublic Role = "public"
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
)

// AuctionStatus is the lifecycle state of an auction.
// Legal transitions: active -> ended -> completed, and active -> cancelled.
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionEnded     AuctionStatus = "ended"
	AuctionCompleted AuctionStatus = "completed"
	AuctionCancelled AuctionStatus = "cancelled"
)

// Auction is one listing under auction. Real identifiers (seller, leading
// bidder, winner) are stored sealed; only pseudonyms are ever displayed to
// non-privileged readers. LeadingBidID is an opaque reference into the bid
// ledger, never an owning pointer to a Bid.
type Auction struct {
	AuctionID           string        `json:"auction_id" gorm:"primaryKey;type:varchar(64)"`
	ListingRef          string        `json:"listing_ref" gorm:"index;type:varchar(64)"`
	SealedSeller        string        `json:"-" gorm:"type:text"`
	SellerPseudonym     string        `json:"seller_pseudonym" gorm:"uniqueIndex;type:varchar(32)"`
	StartingBid         float64       `json:"starting_bid" gorm:"not null"`
	CurrentBid          float64       `json:"current_bid" gorm:"not null;default:0"`
	TotalBids           int           `json:"total_bids" gorm:"not null;default:0"`
	SealedLeadingBidder string        `json:"-" gorm:"type:text"`
	LeadingPseudonym    string        `json:"leading_pseudonym" gorm:"type:varchar(32)"`
	LeadingBidID        string        `json:"-" gorm:"type:varchar(64)"`
	SealedWinner        string        `json:"-" gorm:"type:text"`
	Notes               string        `json:"-" gorm:"type:text"`
	EndTime             time.Time     `json:"end_time" gorm:"not null"`
	Status              AuctionStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt           time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// Bid is one accepted submission in the append-only bid ledger. Immutable
// after creation except for the IsWinning flip, which happens atomically
// with the next accepted bid.
type Bid struct {
	BidID           string    `json:"bid_id" gorm:"primaryKey;type:varchar(64)"`
	AuctionRef      string    `json:"auction_ref" gorm:"index;type:varchar(64);not null"`
	SealedBidder    string    `json:"-" gorm:"type:text;not null"`
	BidderPseudonym string    `json:"bidder_pseudonym" gorm:"uniqueIndex;type:varchar(32)"`
	Amount          float64   `json:"amount" gorm:"not null"`
	IsWinning       bool      `json:"is_winning" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Side selects one half of a settlement.
type Side string

const (
	SideSeller Side = "seller"
	SideBuyer  Side = "buyer"
)

// AppointmentStatus is the state of one party's meeting confirmation.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is one side's confirmation sub-state within a settlement.
type Appointment struct {
	Date     string            `json:"date" gorm:"type:varchar(16)"`
	TimeSlot string            `json:"time_slot" gorm:"type:varchar(16)"`
	Status   AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
}

// EscrowState tracks notionally held funds between settlement creation
// and mutual appointment completion.
type EscrowState string

const (
	EscrowHeld     EscrowState = "held"
	EscrowReleased EscrowState = "released"
	EscrowRefunded EscrowState = "refunded"
)

// MeetingState is the combined view of the two appointment halves.
type MeetingState string

const (
	MeetingPending         MeetingState = "pending"
	MeetingSellerCompleted MeetingState = "seller_completed"
	MeetingBuyerCompleted  MeetingState = "buyer_completed"
	MeetingCompleted       MeetingState = "completed"
)

// Settlement is the post-auction escrow record, created exactly once per
// ended auction with a winner (unique on AuctionRef). Escrow is released
// only when both appointment halves reach completed, exactly once.
type Settlement struct {
	SettlementID      string       `json:"settlement_id" gorm:"primaryKey;type:varchar(64)"`
	AuctionRef        string       `json:"auction_ref" gorm:"uniqueIndex;type:varchar(64);not null"`
	ListingRef        string       `json:"listing_ref" gorm:"type:varchar(64)"`
	SealedSeller      string       `json:"-" gorm:"type:text;not null"`
	SealedBuyer       string       `json:"-" gorm:"type:text;not null"`
	SellerPseudonym   string       `json:"seller_pseudonym" gorm:"type:varchar(32)"`
	BuyerPseudonym    string       `json:"buyer_pseudonym" gorm:"type:varchar(32)"`
	FinalAmount       float64      `json:"final_amount" gorm:"not null"`
	PlatformCut       float64      `json:"platform_cut" gorm:"not null"`
	PayoutAmount      float64      `json:"payout_amount" gorm:"not null"`
	EscrowState       EscrowState  `json:"escrow_state" gorm:"type:varchar(16);not null;default:'held'"`
	SellerAppointment Appointment  `json:"seller_appointment" gorm:"embedded;embeddedPrefix:seller_appt_"`
	BuyerAppointment  Appointment  `json:"buyer_appointment" gorm:"embedded;embeddedPrefix:buyer_appt_"`
	MeetingState      MeetingState `json:"meeting_state" gorm:"type:varchar(24);not null;default:'pending'"`
	ReleaseNote       string       `json:"-" gorm:"type:text"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}
