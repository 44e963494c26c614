package dto

import (
	"mime/multipart"

	"peakpath/internal/domains/photo/model"
	"peakpath/shared"
	gDto "peakpath/shared/dto"
	gModel "peakpath/shared/model"
	"peakpath/shared/timezone"

	"github.com/google/uuid"
)

type CreateAlbumRequest struct {
	TourID      string   `json:"tour_id" validate:"required"`
	Title       string   `json:"title"   validate:"required,min=3,max=100"`
	Description string   `json:"description"`
	Images      []string `json:"images"  validate:"required,dive,url"`
}

func (c *CreateAlbumRequest) ToModel(user string) model.Album {
	return model.Album{
		ID:          uuid.NewString(),
		TourID:      c.TourID,
		Title:       c.Title,
		Description: c.Description,
		Images:      c.Images,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAlbumRequest struct {
	Title       string   `db:"title"       json:"title"       validate:"omitempty,min=3,max=100"`
	Description string   `db:"description" json:"description" validate:"omitempty"`
	Images      []string `db:"images"      json:"images"      validate:"omitempty,dive,url"`
}

type AlbumResponse struct {
	ID          string   `json:"id"`
	TourID      string   `json:"tour_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	gDto.Metadata
}

func (r *AlbumResponse) FromModel(model model.Album) {
	r.ID = model.ID
	r.TourID = model.TourID
	r.Title = model.Title
	r.Description = model.Description
	r.Images = model.Images
	r.Metadata.FromModel(model.Metadata)
}

type GetAlbumsResponse struct {
	Albums    []AlbumResponse `json:"albums"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAlbumsResponse) FromModels(models []model.Album, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Albums = make([]AlbumResponse, len(models))
	for i, m := range models {
		r.Albums[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
