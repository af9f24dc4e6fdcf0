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

// number of entries shown on the client detail view
const detailEntryLimit = 20

type ClientsStore interface {
	Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error)
	GetByID(ctx context.Context, id string) (client.Client, error)
	List(ctx context.Context, search string) ([]client.Client, error)
	Update(ctx context.Context, id string, req client.UpdateClientRequest) (client.Client, error)
	Delete(ctx context.Context, id string) error
}

type EntriesLister interface {
	ListForClient(ctx context.Context, clientID string, limit int) ([]entry.CareEntry, error)
}

type ClientsHandler struct {
	repo    ClientsStore
	entries EntriesLister
}

func NewClientsHandler(repo ClientsStore, entries EntriesLister) *ClientsHandler {
	return &ClientsHandler{repo: repo, entries: entries}
}

type clientView struct {
	client.Client
	Age *int `json:"age"`
}

func clientViewOf(c client.Client, now time.Time) clientView {
	return clientView{Client: c, Age: c.Age(now)}
}

func (h *ClientsHandler) CreateClient(ctx *gin.Context) {
	var req client.CreateClientRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create client")
		return
	}

	ctx.JSON(http.StatusCreated, clientViewOf(c, time.Now().UTC()))
}

func (h *ClientsHandler) ListClients(ctx *gin.Context) {
	search := ctx.Query("search")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	clients, err := h.repo.List(cctx, search)

	if err != nil {
		RespondInternal(ctx, "Could not list clients")
		return
	}

	now := time.Now().UTC()
	items := make([]clientView, 0, len(clients))

	for _, c := range clients {
		items = append(items, clientViewOf(c, now))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetClient answers the detail view: the client plus its most recent
// entries, newest first.
func (h *ClientsHandler) GetClient(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not fetch client")
		return
	}

	entries, err := h.entries.ListForClient(cctx, id, detailEntryLimit)

	if err != nil {
		RespondInternal(ctx, "Could not fetch care entries")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"client":  clientViewOf(c, time.Now().UTC()),
		"entries": entries,
	})
}

func (h *ClientsHandler) UpdateClient(ctx *gin.Context) {
	id := ctx.Param("id")

	var req client.UpdateClientRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	c, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not update client")
		return
	}

	ctx.JSON(http.StatusOK, clientViewOf(c, time.Now().UTC()))
}

// DeleteClient cascades to the client's entries; the route is wired
// behind the admin guard.
func (h *ClientsHandler) DeleteClient(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not delete client")
		return
	}

	ctx.Status(http.StatusNoContent)
}
