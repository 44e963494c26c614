package model

import (
	"time"

	"peakpath/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldReference           = "reference"
	FieldTourInstanceID      = "tour_instance_id"
	FieldCustomerID          = "customer_id"
	FieldParticipantCount    = "participant_count"
	FieldLeadName            = "lead_name"
	FieldLeadEmail           = "lead_email"
	FieldLeadPhone           = "lead_phone"
	FieldSpecialRequests     = "special_requests"
	FieldDietaryRestrictions = "dietary_restrictions"
	FieldTotalAmount         = "total_amount"
	FieldBookingStatus       = "booking_status"
	FieldPaymentStatus       = "payment_status"
	FieldExpiresAt           = "expires_at"
	FieldCapacityReleased    = "capacity_released"
	FieldCancelledAt         = "cancelled_at"
	FieldCancelledBy         = "cancelled_by"
	FieldCancellationReason  = "cancellation_reason"
	FieldRefundAmount        = "refund_amount"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
	StatusNoShow         = "no_show"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

const ReasonExpired = "expired"

// transitions is the single source of truth for legal status moves.
// completed, cancelled and no_show are terminal.
var transitions = map[string][]string{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether a booking may move from one status to
// another. Every status write goes through this check.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// Booking is one customer's reservation against a tour instance. It holds
// a capacity grant of ParticipantCount spots from creation until the
// single release that happens on cancellation or expiry. Rows are never
// deleted; terminal states are kept for audit.
type Booking struct {
	ID                  string     `db:"id"`
	Reference           string     `db:"reference"`
	TourInstanceID      string     `db:"tour_instance_id"`
	CustomerID          string     `db:"customer_id"`
	ParticipantCount    int        `db:"participant_count"`
	LeadName            string     `db:"lead_name"`
	LeadEmail           string     `db:"lead_email"`
	LeadPhone           string     `db:"lead_phone"`
	SpecialRequests     string     `db:"special_requests"`
	DietaryRestrictions string     `db:"dietary_restrictions"`
	TotalAmount         int64      `db:"total_amount"`
	BookingStatus       string     `db:"booking_status"`
	PaymentStatus       string     `db:"payment_status"`
	ExpiresAt           time.Time  `db:"expires_at"`
	CapacityReleased    bool       `db:"capacity_released"`
	CancelledAt         *time.Time `db:"cancelled_at"`
	CancelledBy         *string    `db:"cancelled_by"`
	CancellationReason  *string    `db:"cancellation_reason"`
	RefundAmount        *int64     `db:"refund_amount"`
	model.Metadata
}

// HoldsGrant reports whether the booking still owns its capacity grant.
// The grant is released exactly once, on the move to cancelled.
func (b *Booking) HoldsGrant() bool {
	return b.BookingStatus != StatusCancelled
}
