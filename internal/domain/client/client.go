package client

import (
	"errors"
	"strconv"
	"time"
)

type Client struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Address   string     `json:"address,omitempty"`
	CareLevel *int       `json:"careLevel,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

var ErrNotFound = errors.New("client not found")

// Birth date and care level arrive as strings from the outside
// (date picker / select field); the factory coerces them.
type CreateClientRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	BirthDate string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address" binding:"omitempty,max=255"`
	CareLevel string `json:"careLevel" binding:"omitempty,oneof=1 2 3 4 5"`
	Notes     string `json:"notes" binding:"omitempty"`
}

// a full update payload; every editable field is replaced and
// updated_at is refreshed.
type UpdateClientRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	BirthDate string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address" binding:"omitempty,max=255"`
	CareLevel string `json:"careLevel" binding:"omitempty,oneof=1 2 3 4 5"`
	Notes     string `json:"notes" binding:"omitempty"`
}

// Age returns whole years between the birth date and today, one less
// when the birthday has not been reached this year. Nil when the
// birth date is absent or lies in the future.
func (c Client) Age(today time.Time) *int {
	if c.BirthDate == nil {
		return nil
	}

	b := *c.BirthDate
	years := today.Year() - b.Year()

	if today.Month() < b.Month() || (today.Month() == b.Month() && today.Day() < b.Day()) {
		years--
	}

	if years < 0 {
		return nil
	}

	return &years
}

// ParseCareLevel coerces the external string form to a care level.
// Empty input means "no care level", never zero.
func ParseCareLevel(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)

	if err != nil || n < 1 || n > 5 {
		return nil, errors.New("care level must be between 1 and 5")
	}

	return &n, nil
}

// ParseBirthDate coerces the external "2006-01-02" form. Empty input
// means "no birth date".
func ParseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", s)

	if err != nil {
		return nil, err
	}

	return &t, nil
}
