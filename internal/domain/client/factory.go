package client

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateClientRequest) (Client, error) {
	now := time.Now().UTC()

	birthDate, err := ParseBirthDate(req.BirthDate)

	if err != nil {
		return Client{}, err
	}

	careLevel, err := ParseCareLevel(req.CareLevel)

	if err != nil {
		return Client{}, err
	}

	return Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		BirthDate: birthDate,
		Address:   req.Address,
		CareLevel: careLevel,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
