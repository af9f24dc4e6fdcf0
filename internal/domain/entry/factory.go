package entry

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(clientID string, req CreateEntryRequest) CareEntry {
	now := time.Now().UTC()

	recordedAt := now

	if req.RecordedAt != nil {
		recordedAt = req.RecordedAt.UTC()
	}

	return CareEntry{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Category:    Category(req.Category),
		Description: req.Description,
		RecordedBy:  req.RecordedBy,
		RecordedAt:  recordedAt,
		CreatedAt:   now,
	}
}
