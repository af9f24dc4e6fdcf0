package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/observability"
	"github.com/midcare/pflegedoc/internal/render"
	"github.com/midcare/pflegedoc/internal/report"
)

type ClientGetter interface {
	GetByID(ctx context.Context, id string) (client.Client, error)
}

// ReportsHandler drives the export path: load the client and its full
// entry history, compile the document, render it to bytes.
type ReportsHandler struct {
	clients ClientGetter
	entries EntriesLister
	metrics *observability.Prom
}

func NewReportsHandler(clients ClientGetter, entries EntriesLister, metrics *observability.Prom) *ReportsHandler {
	return &ReportsHandler{
		clients: clients,
		entries: entries,
		metrics: metrics,
	}
}

func (h *ReportsHandler) ExportClientReport(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	c, err := h.clients.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not fetch client")
		return
	}

	// unbounded: the export always carries the full history
	entries, err := h.entries.ListForClient(cctx, id, 0)

	if err != nil {
		RespondInternal(ctx, "Could not fetch care entries")
		return
	}

	start := time.Now()
	now := start.UTC()

	doc := report.Compile(c, entries, now)
	body := render.Text(doc)

	if h.metrics != nil {
		h.metrics.ReportsGenerated.Inc()
		h.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+render.Filename(c.Name, now)+`"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
