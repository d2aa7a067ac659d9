package helpers

// Request/Response DTOs
type MaterializeRequest struct {
	AuctionID      string   `json:"auction_id" binding:"required"`
	CommissionRate *float64 `json:"commission_rate"` // nil: the platform default applies
}

type ConfirmAppointmentRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

type ReleaseRequest struct {
	Reason string `json:"reason" binding:"required"`
}
