package dto

import (
	"mime/multipart"

	"peakpath/internal/domains/tour/model"
	"peakpath/shared"
	gDto "peakpath/shared/dto"
	gModel "peakpath/shared/model"
	"peakpath/shared/timezone"

	"github.com/google/uuid"
)

type CreateTourRequest struct {
	Title         string                `json:"title"          validate:"required,max=150"`
	Description   string                `json:"description"    validate:"omitempty"`
	Location      string                `json:"location"       validate:"required,max=150"`
	Difficulty    string                `json:"difficulty"     validate:"required,oneof=easy moderate hard"`
	DurationHours int                   `json:"duration_hours" validate:"required,min=1,max=240"`
	BasePrice     int64                 `json:"base_price"     validate:"required,min=0"`
	Image         *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `json:"active"         validate:"omitempty"`
}

func (c *CreateTourRequest) ToModel(user string, imageURL string) model.Tour {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Tour{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Description:   c.Description,
		Location:      c.Location,
		Difficulty:    c.Difficulty,
		DurationHours: c.DurationHours,
		BasePrice:     c.BasePrice,
		Image:         imageURL,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTourRequest struct {
	Title         string                `db:"title"          json:"title"          validate:"omitempty,max=150"`
	Description   string                `db:"description"    json:"description"    validate:"omitempty"`
	Location      string                `db:"location"       json:"location"       validate:"omitempty,max=150"`
	Difficulty    string                `db:"difficulty"     json:"difficulty"     validate:"omitempty,oneof=easy moderate hard"`
	DurationHours *int                  `db:"duration_hours" json:"duration_hours" validate:"omitempty,min=1,max=240"`
	BasePrice     *int64                `db:"base_price"     json:"base_price"     validate:"omitempty,min=0"`
	Image         *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `db:"active"         json:"active"         validate:"omitempty"`
}

type TourResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Difficulty    string `json:"difficulty"`
	DurationHours int    `json:"duration_hours"`
	BasePrice     int64  `json:"base_price"`
	Image         string `json:"image"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *TourResponse) FromModel(model model.Tour) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Location = model.Location
	r.Difficulty = model.Difficulty
	r.DurationHours = model.DurationHours
	r.BasePrice = model.BasePrice
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetToursResponse struct {
	Tours     []TourResponse `json:"tours"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetToursResponse) FromModels(models []model.Tour, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tours = make([]TourResponse, len(models))
	for i, mod := range models {
		r.Tours[i].FromModel(mod)
	}
}
