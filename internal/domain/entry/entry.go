package entry

import (
	"errors"
	"time"
)

// Category is the closed set of care entry kinds. Stored values that
// fall outside the set are still displayed verbatim, never rejected
// at read time.
type Category string

const (
	CategoryBasicCare    Category = "grundpflege"
	CategoryMedication   Category = "medikamente"
	CategoryVitalSigns   Category = "vitalzeichen"
	CategoryNutrition    Category = "ernaehrung"
	CategoryMobilization Category = "mobilisation"
	CategorySpecial      Category = "besonderheiten"
)

var categoryLabels = map[Category]string{
	CategoryBasicCare:    "Grundpflege",
	CategoryMedication:   "Medikamente",
	CategoryVitalSigns:   "Vitalzeichen",
	CategoryNutrition:    "Ernährung",
	CategoryMobilization: "Mobilisation",
	CategorySpecial:      "Besonderheiten",
}

// Label resolves the display label, falling back to the raw code for
// unknown categories.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}

	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]

	return ok
}

type CareEntry struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	RecordedBy  string    `json:"recordedBy"`
	RecordedAt  time.Time `json:"recordedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("care entry not found")

type CreateEntryRequest struct {
	Category    string `json:"category" binding:"required,oneof=grundpflege medikamente vitalzeichen ernaehrung mobilisation besonderheiten"`
	Description string `json:"description" binding:"required,min=10"`
	RecordedBy  string `json:"recordedBy" binding:"required,max=100"`
	// optional override for backdated entries; defaults to creation time
	RecordedAt *time.Time `json:"recordedAt" binding:"omitempty"`
}
