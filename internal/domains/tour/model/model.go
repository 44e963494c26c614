package model

import "peakpath/shared/model"

const (
	TableName  = "tours"
	EntityName = "tour"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldDifficulty    = "difficulty"
	FieldDurationHours = "duration_hours"
	FieldBasePrice     = "base_price"
	FieldImage         = "image"
	FieldActive        = "active"
)

const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// Tour is an operator-managed listing. BasePrice is stored in minor
// currency units.
type Tour struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Location      string `db:"location"`
	Difficulty    string `db:"difficulty"`
	DurationHours int    `db:"duration_hours"`
	BasePrice     int64  `db:"base_price"`
	Image         string `db:"image"`
	Active        bool   `db:"active"`
	model.Metadata
}
