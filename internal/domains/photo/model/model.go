package model

import "peakpath/shared/model"

const (
	TableName  = "tour_albums"
	EntityName = "album"

	FieldID          = "id"
	FieldTourID      = "tour_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImages      = "images"
)

type Album struct {
	ID          string   `db:"id"`
	TourID      string   `db:"tour_id"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Images      []string `db:"images"`
	model.Metadata
}
