package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quantmon/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "bars.db"))
	require.NoError(t, err)
	return store
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return d
}

func TestStoreSaveAndQueryRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	series := market.Series{
		{Date: day(t, "2023-01-03"), Open: 7.29, High: 7.35, Low: 7.25, Close: 7.30, Volume: 240000, Amount: 1.75e6,
			Extra: map[string]float64{"pct_chg": 0.14}},
		{Date: day(t, "2023-01-04"), Open: 7.30, High: 7.40, Low: 7.28, Close: 7.34, Volume: 250000, Amount: 1.83e6},
	}
	n, err := store.SaveSeries(ctx, "600000", "qfq", series)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := store.QuerySeries(ctx, "600000", "qfq", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day(t, "2023-01-03"), got[0].Date)
	assert.InDelta(t, 7.30, got[0].Close, 1e-9)
	assert.InDelta(t, 0.14, got[0].Extra["pct_chg"], 1e-9)
	assert.Nil(t, got[1].Extra)
}

func TestStoreSaveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	series := market.Series{
		{Date: day(t, "2023-01-03"), Close: 7.30},
	}
	_, err := store.SaveSeries(ctx, "600000", "qfq", series)
	require.NoError(t, err)

	// 同键重复写入走 upsert，取最新值
	series[0].Close = 7.55
	_, err = store.SaveSeries(ctx, "600000", "qfq", series)
	require.NoError(t, err)

	got, err := store.QuerySeries(ctx, "600000", "qfq", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 7.55, got[0].Close, 1e-9)
}

func TestStoreQueryFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var series market.Series
	for _, d := range []string{"2023-01-03", "2023-01-04", "2023-01-05", "2023-01-06"} {
		series = append(series, market.Bar{Date: day(t, d), Close: 7})
	}
	_, err := store.SaveSeries(ctx, "600000", "qfq", series)
	require.NoError(t, err)

	got, err := store.QuerySeries(ctx, "600000", "qfq", day(t, "2023-01-04"), day(t, "2023-01-05"), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day(t, "2023-01-04"), got[0].Date)

	got, err = store.QuerySeries(ctx, "600000", "qfq", time.Time{}, time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// 复权口径不同视为不同序列
	got, err = store.QuerySeries(ctx, "600000", "hfq", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestStoreSaveEmptySeries(t *testing.T) {
	store := newTestStore(t)
	n, err := store.SaveSeries(context.Background(), "600000", "qfq", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	assert.Error(t, err)
}
