package projects

import "time"

const (
	CategoryMSDClassic  = "MSD Classic"
	CategoryMSDPremium  = "MSD Premium"
	CategoryBaufRenolit = "Bauf & Renolit"
	CategoryOther       = "Інше"

	DateLayout = "2006-01-02"
)

var validCategories = map[string]struct{}{
	CategoryMSDClassic:  {},
	CategoryMSDPremium:  {},
	CategoryBaufRenolit: {},
	CategoryOther:       {},
}

func IsValidCategory(value string) bool {
	_, ok := validCategories[value]
	return ok
}

// Project is a portfolio entry: shown publicly in the gallery, managed
// from the admin panel. Date is kept as an ISO date string because it is
// a calendar date, not an instant; it is the one and only sort key.
type Project struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Date        string    `bson:"date" json:"date"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Images      []string  `bson:"images" json:"images"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"`
	Date        string   `json:"date" validate:"required,date"`
	ImageURL    string   `json:"image_url" validate:"required,url"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

type PublicListFilter struct {
	Category string
}
