package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

// number of recent entries shown on the dashboard
const recentEntryLimit = 10

type ClientCounter interface {
	Count(ctx context.Context) (int, error)
}

type EntriesStats interface {
	Recent(ctx context.Context, limit int) ([]entry.CareEntry, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type DashboardHandler struct {
	clients ClientCounter
	entries EntriesStats
}

func NewDashboardHandler(clients ClientCounter, entries EntriesStats) *DashboardHandler {
	return &DashboardHandler{clients: clients, entries: entries}
}

func (h *DashboardHandler) Dashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	clientCount, err := h.clients.Count(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not load dashboard")
		return
	}

	// "today" starts at midnight UTC
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	todayCount, err := h.entries.CountSince(cctx, startOfDay)

	if err != nil {
		RespondInternal(ctx, "Could not load dashboard")
		return
	}

	recent, err := h.entries.Recent(cctx, recentEntryLimit)

	if err != nil {
		RespondInternal(ctx, "Could not load dashboard")
		return
	}

	items := make([]entryView, 0, len(recent))

	for _, e := range recent {
		items = append(items, entryViewOf(e))
	}

	ctx.JSON(200, gin.H{
		"clientCount":   clientCount,
		"entriesToday":  todayCount,
		"recentEntries": items,
	})
}
