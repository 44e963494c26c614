package service

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingNoShow    = "booking.no_show"
)

// BookingEvent is the payload published to the booking lifecycle topic.
type BookingEvent struct {
	Event          string    `json:"event"`
	BookingID      string    `json:"booking_id"`
	Reference      string    `json:"reference"`
	TourInstanceID string    `json:"tour_instance_id"`
	BookingStatus  string    `json:"booking_status"`
	PaymentStatus  string    `json:"payment_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
