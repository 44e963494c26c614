package dto

import (
	"peakpath/internal/domains/booking/model"
	"peakpath/shared"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/timezone"
)

type CreateBookingRequest struct {
	TourInstanceID      string `json:"tour_instance_id"      validate:"required"`
	ParticipantCount    int    `json:"participant_count"     validate:"required,min=1,max=50"`
	LeadName            string `json:"lead_participant_name" validate:"required,max=100"`
	LeadEmail           string `json:"lead_participant_email" validate:"required,email,max=100"`
	LeadPhone           string `json:"lead_participant_phone" validate:"required,max=20"`
	SpecialRequests     string `json:"special_requests"      validate:"omitempty,max=500"`
	DietaryRestrictions string `json:"dietary_restrictions"  validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	BookingStatus      string `json:"booking_status"      validate:"required,oneof=cancelled"`
	CancellationReason string `json:"cancellation_reason" validate:"omitempty,max=500"`
}

// CreateBookingResponse is the minimal payload the booking endpoint
// returns on 201.
type CreateBookingResponse struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	TotalAmount int64  `json:"totalAmount"`
}

func (r *CreateBookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Reference = model.Reference
	r.TotalAmount = model.TotalAmount
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	Reference           string  `json:"reference"`
	TourInstanceID      string  `json:"tour_instance_id"`
	CustomerID          string  `json:"customer_id"`
	ParticipantCount    int     `json:"participant_count"`
	LeadName            string  `json:"lead_participant_name"`
	LeadEmail           string  `json:"lead_participant_email"`
	LeadPhone           string  `json:"lead_participant_phone"`
	SpecialRequests     string  `json:"special_requests,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	TotalAmount         int64   `json:"total_amount"`
	BookingStatus       string  `json:"booking_status"`
	PaymentStatus       string  `json:"payment_status"`
	ExpiresAt           string  `json:"expires_at"`
	CancelledAt         string  `json:"cancelled_at,omitempty"`
	CancelledBy         string  `json:"cancelled_by,omitempty"`
	CancellationReason  string  `json:"cancellation_reason,omitempty"`
	RefundAmount        *int64  `json:"refund_amount,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Reference = model.Reference
	r.TourInstanceID = model.TourInstanceID
	r.CustomerID = model.CustomerID
	r.ParticipantCount = model.ParticipantCount
	r.LeadName = model.LeadName
	r.LeadEmail = model.LeadEmail
	r.LeadPhone = model.LeadPhone
	r.SpecialRequests = model.SpecialRequests
	r.DietaryRestrictions = model.DietaryRestrictions
	r.TotalAmount = model.TotalAmount
	r.BookingStatus = model.BookingStatus
	r.PaymentStatus = model.PaymentStatus
	r.ExpiresAt = timezone.Format(model.ExpiresAt, constant.DateFormat)

	if model.CancelledAt != nil {
		r.CancelledAt = timezone.Format(*model.CancelledAt, constant.DateFormat)
	}
	if model.CancelledBy != nil {
		r.CancelledBy = *model.CancelledBy
	}
	if model.CancellationReason != nil {
		r.CancellationReason = *model.CancellationReason
	}
	r.RefundAmount = model.RefundAmount

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
