package model

import (
	"time"

	"peakpath/shared/model"
)

const (
	TableName  = "tour_instances"
	EntityName = "tour_instance"

	FieldID             = "id"
	FieldTourID         = "tour_id"
	FieldStartsAt       = "starts_at"
	FieldEndsAt         = "ends_at"
	FieldCapacityMax    = "capacity_max"
	FieldCapacityBooked = "capacity_booked"
	FieldStatus         = "status"
	FieldPriceOverride  = "price_override"
)

const (
	StatusScheduled = "scheduled"
	StatusFull      = "full"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// TourInstance is one dated occurrence of a tour. CapacityBooked is
// owned by the capacity controller; nothing else writes it.
type TourInstance struct {
	ID             string    `db:"id"`
	TourID         string    `db:"tour_id"`
	StartsAt       time.Time `db:"starts_at"`
	EndsAt         time.Time `db:"ends_at"`
	CapacityMax    int       `db:"capacity_max"`
	CapacityBooked int       `db:"capacity_booked"`
	Status         string    `db:"status"`
	PriceOverride  *int64    `db:"price_override"`
	model.Metadata
}

// Available returns how many spots remain.
func (t *TourInstance) Available() int {
	return t.CapacityMax - t.CapacityBooked
}

// UnitPrice resolves the per-participant price, preferring the
// instance-level override over the tour's base price.
func (t *TourInstance) UnitPrice(tourBasePrice int64) int64 {
	if t.PriceOverride != nil {
		return *t.PriceOverride
	}

	return tourBasePrice
}

// Bookable reports whether new bookings may be taken against this
// instance.
func (t *TourInstance) Bookable(now time.Time) bool {
	return t.Status == StatusScheduled && t.StartsAt.After(now)
}
