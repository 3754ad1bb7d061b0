// Package sqlite provides a SQLite-backed implementation of
// journal.Repository.
//
// WAL mode is enabled on Open so readers never block the writer — the
// checkout handler writes while admin tooling may be querying the file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopx/nthcart/internal/journal"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO so
	// the binary cross-compiles and runs on Alpine images without gcc.
	_ "modernc.org/sqlite"
)

// schema is applied once on Open. The table is append-only: one immutable row
// per committed order.
const schema = `
CREATE TABLE IF NOT EXISTS order_journal (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier of the committed order.
    order_id       TEXT NOT NULL,

    -- Order total after discount, stored as a decimal string.
    total          TEXT NOT NULL,

    -- Redeemed discount code, '' when the order had none.
    discount_code  TEXT NOT NULL DEFAULT '',

    -- Units across all lines.
    item_count     INTEGER NOT NULL,

    -- Full order as JSON, exactly as returned to the caller.
    payload        TEXT,

    -- W3C trace/span ids of the request that committed the order.
    trace_id       TEXT NOT NULL DEFAULT '',
    span_id        TEXT NOT NULL DEFAULT '',

    -- RFC3339 order creation time (SQLite has no datetime type).
    created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_journal_order_id ON order_journal(order_id);
CREATE INDEX IF NOT EXISTS idx_order_journal_trace_id ON order_journal(trace_id);
`

// Repository is the SQLite implementation of journal.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path and applies the
// schema.
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes pragmas as DSN parameters. busy_timeout waits
	// for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Defer it in main.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends one journal row. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *journal.Entry) error {
	const q = `
		INSERT INTO order_journal
			(order_id, total, discount_code, item_count, payload, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.Total,
		entry.DiscountCode,
		entry.ItemCount,
		nullableString(entry.Payload),
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save journal entry for %q: %w", entry.OrderID, err)
	}
	return nil
}

// GetByOrderID returns the journal row for one order, for admin tooling and
// tests.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*journal.Entry, error) {
	const q = `
		SELECT order_id, total, discount_code, item_count, COALESCE(payload,''),
		       trace_id, span_id, created_at
		FROM   order_journal
		WHERE  order_id = ?
		ORDER  BY id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var entry journal.Entry
	var createdAt string
	err := row.Scan(
		&entry.OrderID,
		&entry.Total,
		&entry.DiscountCode,
		&entry.ItemCount,
		&entry.Payload,
		&entry.TraceID,
		&entry.SpanID,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: order %q not journaled", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get journal entry for %q: %w", orderID, err)
	}

	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse time %q: %w", createdAt, err)
	}

	return &entry, nil
}

// nullableString maps empty strings to NULL so the payload column stays clean
// when serialisation was skipped.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
