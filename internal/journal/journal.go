// Package journal defines an append-only audit trail of completed orders.
//
// The store itself is deliberately memory-only; the journal exists purely for
// observability. Each committed checkout appends one immutable row carrying
// the order payload plus the trace/span ids active at commit time, so an
// order row can be joined directly with its distributed trace.
//
// The journal is never read back into the store: a process restart still
// resets catalog, carts, orders and ledger to initial conditions.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Entry is a single journal row for one completed order.
type Entry struct {
	// OrderID is the business identifier of the committed order.
	OrderID string

	// Total is the order total after discount, formatted as a decimal string.
	Total string

	// DiscountCode is the redeemed code, empty when none was applied.
	DiscountCode string

	// ItemCount is the total number of units across all lines.
	ItemCount int

	// Payload is the JSON-serialised order as returned to the caller.
	Payload string

	// TraceID is the W3C trace ID of the span active when the order was
	// committed; empty when no span was recording.
	TraceID string

	// SpanID pinpoints the request span within that trace.
	SpanID string

	// CreatedAt is the order's creation time.
	CreatedAt time.Time
}

// Repository is the port for persisting journal entries. The HTTP layer
// depends on this abstraction, not on SQLite directly, and treats a nil
// repository as "journaling disabled".
type Repository interface {
	// Save appends one row. The table is an append-only log, not an upsert.
	Save(ctx context.Context, entry *Entry) error
}

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both fields are empty when
// the context carries no valid span, e.g. in unit tests.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds a journal entry for an order, extracting trace info from
// ctx and serialising payload to JSON.
func NewEntry(ctx context.Context, orderID, total, discountCode string, itemCount int, payload any, createdAt time.Time) *Entry {
	ti := ExtractTraceInfo(ctx)

	body := ""
	if b, err := json.Marshal(payload); err == nil {
		body = string(b)
	}

	return &Entry{
		OrderID:      orderID,
		Total:        total,
		DiscountCode: discountCode,
		ItemCount:    itemCount,
		Payload:      body,
		TraceID:      ti.TraceID,
		SpanID:       ti.SpanID,
		CreatedAt:    createdAt,
	}
}
