package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxTracer feeds every query the pool runs into the DB metrics, so
// the repos stay free of instrumentation code.
type PgxTracer struct {
	prom *Prom
}

func NewPgxTracer(prom *Prom) *PgxTracer {
	return &PgxTracer{prom: prom}
}

type queryStartKey struct{}

type queryStart struct {
	begin time.Time
	op    string
}

func (t *PgxTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		begin: time.Now(),
		op:    sqlVerb(data.SQL),
	})
}

func (t *PgxTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qs, ok := ctx.Value(queryStartKey{}).(queryStart)

	if !ok {
		return
	}

	status := "ok"

	if data.Err != nil {
		status = "error"
		t.prom.DbErrorsTotal.WithLabelValues(qs.op, classifyDBErr(data.Err)).Inc()
	}

	t.prom.DbQueryDuration.WithLabelValues(qs.op, status).Observe(time.Since(qs.begin).Seconds())
}

func sqlVerb(sql string) string {
	fields := strings.Fields(sql)

	if len(fields) == 0 {
		return "unknown"
	}

	return strings.ToLower(fields[0])
}

func classifyDBErr(err error) string {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "23503":
			return "fk_violation"
		case "40001":
			return "serialization_failure"
		case "40P01":
			return "deadlock"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
