package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

type EntriesStore interface {
	Create(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error)
	Delete(ctx context.Context, id string) error
	ListForClient(ctx context.Context, clientID string, limit int) ([]entry.CareEntry, error)
}

type EntriesHandler struct {
	repo EntriesStore
}

func NewEntriesHandler(repo EntriesStore) *EntriesHandler {
	return &EntriesHandler{repo: repo}
}

type entryView struct {
	entry.CareEntry
	CategoryLabel string `json:"categoryLabel"`
}

func entryViewOf(e entry.CareEntry) entryView {
	return entryView{CareEntry: e, CategoryLabel: e.Category.Label()}
}

func (h *EntriesHandler) CreateEntry(ctx *gin.Context) {
	clientID := ctx.Param("id")

	var req entry.CreateEntryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	e, err := h.repo.Create(cctx, clientID, req)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not create care entry")
		return
	}

	ctx.JSON(http.StatusCreated, entryViewOf(e))
}

// ListEntries returns the full history for one client, newest first.
func (h *EntriesHandler) ListEntries(ctx *gin.Context) {
	clientID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	entries, err := h.repo.ListForClient(cctx, clientID, 0)

	if err != nil {
		RespondInternal(ctx, "Could not list care entries")
		return
	}

	items := make([]entryView, 0, len(entries))

	for _, e := range entries {
		items = append(items, entryViewOf(e))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *EntriesHandler) DeleteEntry(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			RespondNotFound(ctx, "Care entry not found")
			return
		}

		RespondInternal(ctx, "Could not delete care entry")
		return
	}

	ctx.Status(http.StatusNoContent)
}
