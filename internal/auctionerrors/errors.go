package auctionerrors

import "errors"

// Validation errors: rejected before touching any state
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Not-found errors
var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrNoBids             = errors.New("no bids found for auction")
)

// Conflict errors: rejected after a state check, safe to retry with corrected input
var (
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionNotEnded   = errors.New("auction has not ended")
	ErrNoWinner          = errors.New("auction ended without a winner")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrSelfBidForbidden  = errors.New("seller cannot bid on own listing")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrSettlementExists  = errors.New("settlement already exists for auction")
	ErrBidConflict       = errors.New("leading bid changed concurrently")
	ErrPseudonymTaken    = errors.New("pseudonym already in use")
)

// Authorization errors: never retried
var (
	ErrNotAuthorized = errors.New("caller is not authorized")
	ErrNotParty      = errors.New("caller is not a party to this settlement")
)

// Integrity errors: fatal to the operation, always logged, never swallowed
var (
	ErrVaultMisconfigured = errors.New("vault key missing or malformed")
	ErrTamperedOrCorrupt  = errors.New("sealed value is tampered or corrupt")
)

// Concurrency errors: transient, safe to retry with backoff
var (
	ErrConcurrencyExhausted = errors.New("too many concurrent update conflicts")
)
