package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"MarketScout/internal/model"
)

func record(symbol, price string) model.SymbolRecord {
	return model.SymbolRecord{Symbol: symbol, Price: decimal.RequireFromString(price)}
}

func TestSQLiteRecorder_HistoryOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scout.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)

	t0 := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	require.NoError(t, r.RecordObservation(ctx, "run-1", record("AAPL", "100"), t0))
	require.NoError(t, r.RecordObservation(ctx, "run-1", record("GOOGL", "150.0"), t0))
	require.NoError(t, r.RecordObservation(ctx, "run-2", record("AAPL", "101.25"), t0.Add(time.Minute)))
	require.NoError(t, r.RecordObservation(ctx, "run-3", record("AAPL", "106"), t0.Add(2*time.Minute)))

	all, err := r.PriceHistory(ctx, "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, all[0].Price.Equal(decimal.NewFromInt(100)))
	require.True(t, all[2].Price.Equal(decimal.NewFromInt(106)))
	require.Equal(t, t0, all[0].ObservedAt)

	recent, err := r.PriceHistory(ctx, "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.True(t, recent[0].Price.Equal(decimal.RequireFromString("101.25")))
	require.True(t, recent[1].Price.Equal(decimal.NewFromInt(106)))

	none, err := r.PriceHistory(ctx, "MSFT", 10)
	require.NoError(t, err)
	require.Empty(t, none)

	require.NoError(t, r.Close())
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scout.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordObservation(ctx, "run-1", record("AAPL", "99.9"), time.Now()))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	hist, err := r.PriceHistory(ctx, "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, hist, 1)
}

func TestOpen(t *testing.T) {
	r, err := Open("none", "", "")
	require.NoError(t, err)
	require.IsType(t, &NoopRecorder{}, r)

	hist, err := r.PriceHistory(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	require.Nil(t, hist)

	r, err = Open("sqlite", filepath.Join(t.TempDir(), "x.db"), "")
	require.NoError(t, err)
	require.IsType(t, &SQLiteRecorder{}, r)
	require.NoError(t, r.Close())

	_, err = Open("mysql", "", "")
	require.ErrorContains(t, err, "unsupported")
}
