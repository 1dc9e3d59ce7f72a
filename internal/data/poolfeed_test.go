package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolClient_PoolSnapshot(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/pools/8vZHTVMdYvcPFUoHBEbcFyfSKnjWtvbNgYpXg1aiC2uS", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"address": "8vZHTVMdYvcPFUoHBEbcFyfSKnjWtvbNgYpXg1aiC2uS",
			"base_reserve": "10000000000000",
			"quote_reserve": "1500000000000",
			"base_decimals": 9,
			"quote_decimals": 6,
			"base_factor": 2500,
			"bin_step": 20,
			"active_id": 8388608
		}`))
	}))
	defer srv.Close()

	c := NewPoolClient(PoolClientConfig{BaseURL: srv.URL, CacheTTL: time.Minute}, DefaultPools())
	snap, err := c.PoolSnapshot(context.Background(), "sol/usdc")
	require.NoError(t, err)

	// 1.5M USDC on the quote side, doubled.
	assert.InDelta(t, 3_000_000, snap.TotalLiquidity, 1e-6)
	assert.InDelta(t, 0.0025, snap.FeeRate, 1e-12)
	assert.Equal(t, 20, snap.BinStep)
	assert.True(t, snap.IsActive())

	_, err = c.PoolSnapshot(context.Background(), "SOL/USDC")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second lookup should hit the cache")
}

func TestPoolClient_LiquidityValuation(t *testing.T) {
	c := NewPoolClient(PoolClientConfig{BaseURL: "http://unused"}, DefaultPools())

	cases := []struct {
		info        PoolInfo
		base, quote float64
		want        float64
	}{
		{PoolInfo{Base: "SOL", Quote: "USDC"}, 10, 1500, 3000},
		{PoolInfo{Base: "USDC", Quote: "XYZ"}, 700, 5, 1400},
		{PoolInfo{Base: "DZSOL", Quote: "SOL"}, 100, 100, 100 * 150 * 2},
		{PoolInfo{Base: "UNIBTC", Quote: "XBTC"}, 2, 2, 2 * 65000 * 2},
		{PoolInfo{Base: "FOO", Quote: "BAR"}, 1000, 5000, 5000 * 0.01 * 2},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, c.liquidityUSD(tc.info, tc.base, tc.quote), 1e-9, "%s/%s", tc.info.Base, tc.info.Quote)
	}
}

func TestPoolClient_Failures(t *testing.T) {
	_, err := (*PoolClient)(nil).PoolSnapshot(context.Background(), "SOL/USDC")
	assert.Error(t, err)

	c := NewPoolClient(PoolClientConfig{BaseURL: "http://unused"}, DefaultPools())
	_, err = c.PoolSnapshot(context.Background(), "DOGE/USDC")
	assert.True(t, errors.Is(err, ErrUnknownPair))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	c = NewPoolClient(PoolClientConfig{BaseURL: srv.URL}, DefaultPools())
	_, err = c.PoolSnapshot(context.Background(), "SOL/USDC")
	var fe *FeedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "NOT_FOUND", fe.Code)
}

func TestPoolRegistry_RoundTrip(t *testing.T) {
	reg := DefaultPools()
	info, ok := reg.Lookup("SOL/USDC")
	require.True(t, ok)
	assert.Equal(t, "8vZHTVMdYvcPFUoHBEbcFyfSKnjWtvbNgYpXg1aiC2uS", info.Address)

	path := filepath.Join(t.TempDir(), "nested", "pools.json")
	reg.Touch(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, SavePoolRegistry(reg, path))

	loaded, err := LoadPoolRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:00:00Z", loaded.UpdatedAt)
	assert.Equal(t, reg.Pairs(), loaded.Pairs())

	def, err := LoadPoolRegistry("")
	require.NoError(t, err)
	assert.Len(t, def.Pools, len(DefaultPools().Pools))
}

func TestLoadPoolRegistry_FillsTickers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pools":[{"pair":"ABC/USDC","address":"addr1"}]}`), 0644))

	reg, err := LoadPoolRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC", reg.Pools[0].Base)
	assert.Equal(t, "USDC", reg.Pools[0].Quote)

	require.NoError(t, os.WriteFile(path, []byte(`{"pools":[{"pair":"ABC/USDC"}]}`), 0644))
	_, err = LoadPoolRegistry(path)
	assert.Error(t, err)
}
