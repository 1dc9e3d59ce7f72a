package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlmm-backtest/internal/model"
)

func TestLoadSeriesJSON(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrapped.json")
	require.NoError(t, SaveSeriesJSON(wrapped, &SeriesFile{
		TokenPair: "SOL/USDC",
		Data:      []model.PricePoint{{Timestamp: "2025-06-01", Price: 50, Volume: 2e6}},
	}))
	f, err := LoadSeriesJSON(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "SOL/USDC", f.TokenPair)
	assert.Len(t, f.Data, 1)

	bare := filepath.Join(dir, "bare.json")
	require.NoError(t, os.WriteFile(bare, []byte(`[{"timestamp":"2025-06-01","price":50,"volume":1}]`), 0644))
	f, err = LoadSeriesJSON(bare)
	require.NoError(t, err)
	assert.Equal(t, 50.0, f.Data[0].Price)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"data":[]}`), 0644))
	_, err = LoadSeriesJSON(empty)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPoolRegistry(t *testing.T) {
	def, err := LoadPoolRegistry("")
	require.NoError(t, err)
	info, ok := def.Lookup(" sol/usdc ")
	require.True(t, ok)
	assert.Equal(t, "8vZHTVMdYvcPFUoHBEbcFyfSKnjWtvbNgYpXg1aiC2uS", info.Address)
	_, ok = def.Lookup("FOO/BAR")
	assert.False(t, ok)

	path := filepath.Join(t.TempDir(), "nested", "pools.json")
	active := true
	reg := &PoolRegistry{Pools: []PoolInfo{
		{Pair: "B/USDC", Address: "addr-b", LiquidityUSD: 1234.5, Active: &active},
		{Pair: "A/USDC", Address: "addr-a"},
	}}
	reg.Touch(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, SavePoolRegistry(reg, path))

	loaded, err := LoadPoolRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:00:00Z", loaded.UpdatedAt)
	assert.Equal(t, []string{"A/USDC", "B/USDC"}, loaded.Pairs())
	assert.Equal(t, "B", loaded.Pools[0].Base, "base/quote derived from pair")
	assert.Equal(t, "USDC", loaded.Pools[0].Quote)
	require.NotNil(t, loaded.Pools[0].Active)
	assert.True(t, *loaded.Pools[0].Active)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"pools":[{"pair":"X/Y"}]}`), 0644))
	_, err = LoadPoolRegistry(bad)
	assert.Error(t, err)
}
