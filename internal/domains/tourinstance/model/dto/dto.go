package dto

import (
	"time"

	"peakpath/internal/domains/tourinstance/model"
	"peakpath/shared"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	gModel "peakpath/shared/model"
	"peakpath/shared/timezone"

	"github.com/google/uuid"
)

type CreateTourInstanceRequest struct {
	TourID        string `json:"tour_id"        validate:"required"`
	StartsAt      string `json:"starts_at"      validate:"required"`
	EndsAt        string `json:"ends_at"        validate:"required"`
	CapacityMax   int    `json:"capacity_max"   validate:"required,min=1,max=500"`
	PriceOverride *int64 `json:"price_override" validate:"omitempty,min=0"`
}

func (c *CreateTourInstanceRequest) ToModel(user string) (model.TourInstance, error) {
	startsAt, err := time.Parse(constant.DateFormat, c.StartsAt)
	if err != nil {
		return model.TourInstance{}, err
	}

	endsAt, err := time.Parse(constant.DateFormat, c.EndsAt)
	if err != nil {
		return model.TourInstance{}, err
	}

	return model.TourInstance{
		ID:             uuid.NewString(),
		TourID:         c.TourID,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		CapacityMax:    c.CapacityMax,
		CapacityBooked: 0,
		Status:         model.StatusScheduled,
		PriceOverride:  c.PriceOverride,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateTourInstanceRequest struct {
	StartsAt      string `json:"starts_at"      validate:"omitempty"`
	EndsAt        string `json:"ends_at"        validate:"omitempty"`
	CapacityMax   *int   `db:"capacity_max"    json:"capacity_max"   validate:"omitempty,min=1,max=500"`
	Status        string `db:"status"          json:"status"         validate:"omitempty,oneof=scheduled full cancelled completed"`
	PriceOverride *int64 `db:"price_override"  json:"price_override" validate:"omitempty,min=0"`
}

type TourInstanceResponse struct {
	ID             string `json:"id"`
	TourID         string `json:"tour_id"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	CapacityMax    int    `json:"capacity_max"`
	CapacityBooked int    `json:"capacity_booked"`
	Available      int    `json:"available"`
	Status         string `json:"status"`
	PriceOverride  *int64 `json:"price_override,omitempty"`
	gDto.Metadata
}

func (r *TourInstanceResponse) FromModel(model model.TourInstance) {
	r.ID = model.ID
	r.TourID = model.TourID
	r.StartsAt = timezone.Format(model.StartsAt, constant.DateFormat)
	r.EndsAt = timezone.Format(model.EndsAt, constant.DateFormat)
	r.CapacityMax = model.CapacityMax
	r.CapacityBooked = model.CapacityBooked
	r.Available = model.Available()
	r.Status = model.Status
	r.PriceOverride = model.PriceOverride
	r.Metadata.FromModel(model.Metadata)
}

type GetTourInstancesResponse struct {
	Instances []TourInstanceResponse `json:"instances"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetTourInstancesResponse) FromModels(models []model.TourInstance, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Instances = make([]TourInstanceResponse, len(models))
	for i, mod := range models {
		r.Instances[i].FromModel(mod)
	}
}
