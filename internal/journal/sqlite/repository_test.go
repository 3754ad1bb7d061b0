package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopx/nthcart/internal/journal"
	"github.com/shopx/nthcart/internal/journal/sqlite"
)

func openRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndGetByOrderID(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	entry := &journal.Entry{
		OrderID:      "order-1",
		Total:        "180",
		DiscountCode: "SAVE10AAAA12",
		ItemCount:    2,
		Payload:      `{"id":"order-1"}`,
		CreatedAt:    created,
	}
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.GetByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, "180", got.Total)
	assert.Equal(t, "SAVE10AAAA12", got.DiscountCode)
	assert.Equal(t, 2, got.ItemCount)
	assert.Equal(t, `{"id":"order-1"}`, got.Payload)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestGetByOrderIDMissing(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.GetByOrderID(context.Background(), "nope")
	assert.Error(t, err)
}

func TestEmptyPayloadStoredAsNull(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	entry := &journal.Entry{
		OrderID:   "order-2",
		Total:     "0",
		ItemCount: 0,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.GetByOrderID(ctx, "order-2")
	require.NoError(t, err)
	assert.Empty(t, got.Payload)
}

func TestNewEntryExtractsNothingWithoutSpan(t *testing.T) {
	entry := journal.NewEntry(context.Background(), "order-3", "42", "", 1, map[string]string{"id": "order-3"}, time.Now())
	assert.Empty(t, entry.TraceID)
	assert.Empty(t, entry.SpanID)
	assert.JSONEq(t, `{"id":"order-3"}`, entry.Payload)
}
