package data

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

// Reference USD prices used to value reserves of non-stable pools. These are
// deliberately rough; pool liquidity only feeds share estimates.
var defaultReferencePrices = map[string]float64{
	"SOL":   150,
	"BTC":   65000,
	"SAROS": 0.50,
}

// fallbackDecimals covers pools whose stats omit token decimals.
var fallbackDecimals = map[string]int32{
	"SOL":  9,
	"USDC": 6,
	"USDT": 6,
	"USDS": 6,
	"USD1": 6,
}

const unknownTokenPrice = 0.01

type PoolClientConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
	CacheTTL          time.Duration
}

// PoolClient reads live pool state from a pool-stats HTTP service and turns
// raw reserves into a model.PoolSnapshot.
type PoolClient struct {
	BaseURL         string
	Registry        *PoolRegistry
	ReferencePrices map[string]float64

	feed  httpFeed
	cache *TTLCache[string, model.PoolSnapshot]
}

func NewPoolClient(cfg PoolClientConfig, registry *PoolRegistry) *PoolClient {
	return &PoolClient{
		BaseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		Registry:        registry,
		ReferencePrices: defaultReferencePrices,
		feed:            newHTTPFeed("pool feed", cfg.Timeout, cfg.RequestsPerSecond, logger.GetForComponent("pool_feed")),
		cache:           NewTTLCache[string, model.PoolSnapshot](cfg.CacheTTL),
	}
}

// poolStats is the pool-stats wire format. Reserves are raw integer amounts
// in the token's smallest unit.
type poolStats struct {
	Address       string `json:"address"`
	BaseReserve   string `json:"base_reserve"`
	QuoteReserve  string `json:"quote_reserve"`
	BaseDecimals  *int32 `json:"base_decimals"`
	QuoteDecimals *int32 `json:"quote_decimals"`
	BaseFactor    int64  `json:"base_factor"`
	BinStep       int    `json:"bin_step"`
	ActiveID      int    `json:"active_id"`
}

// PoolSnapshot returns the current state of the registered pool for pair.
func (c *PoolClient) PoolSnapshot(ctx context.Context, pair string) (model.PoolSnapshot, error) {
	if c == nil || c.BaseURL == "" {
		return model.PoolSnapshot{}, &FeedError{Code: "NOT_CONFIGURED", Message: "pool feed is not configured"}
	}
	info, ok := c.Registry.Lookup(pair)
	if !ok {
		return model.PoolSnapshot{}, fmt.Errorf("%w: no pool registered for %s", ErrUnknownPair, pair)
	}
	if snap, ok := c.cache.Get(info.Address); ok {
		return snap, nil
	}

	var stats poolStats
	if err := c.feed.getJSON(ctx, c.BaseURL+"/pools/"+url.PathEscape(info.Address), &stats); err != nil {
		return model.PoolSnapshot{}, err
	}

	snap, err := c.snapshotFrom(info, stats)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	c.feed.log.Debug().
		Str("pair", info.Pair).
		Float64("liquidity_usd", snap.TotalLiquidity).
		Float64("fee_rate", snap.FeeRate).
		Msg("pool snapshot")
	c.cache.Set(info.Address, snap)
	return snap, nil
}

func (c *PoolClient) snapshotFrom(info PoolInfo, s poolStats) (model.PoolSnapshot, error) {
	baseAmt, err := reserveAmount(s.BaseReserve, s.BaseDecimals, info.Base)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	quoteAmt, err := reserveAmount(s.QuoteReserve, s.QuoteDecimals, info.Quote)
	if err != nil {
		return model.PoolSnapshot{}, err
	}

	address := s.Address
	if address == "" {
		address = info.Address
	}
	return model.PoolSnapshot{
		Pair:           info.Pair,
		Address:        address,
		TotalLiquidity: c.liquidityUSD(info, baseAmt, quoteAmt),
		FeeRate:        float64(s.BaseFactor) / 1e6,
		BinStep:        s.BinStep,
		ActiveID:       s.ActiveID,
	}, nil
}

func reserveAmount(raw string, decimals *int32, ticker string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, &FeedError{Code: "DECODE_ERROR", Message: fmt.Sprintf("bad %s reserve %q: %v", ticker, raw, err)}
	}
	exp, ok := int32(6), false
	if decimals != nil {
		exp, ok = *decimals, true
	}
	if !ok {
		if fd, found := fallbackDecimals[strings.ToUpper(ticker)]; found {
			exp = fd
		}
	}
	return d.Shift(-exp).InexactFloat64(), nil
}

// liquidityUSD values both sides of the pool from whichever side has a known
// USD price, doubling it as a stand-in for the other side.
func (c *PoolClient) liquidityUSD(info PoolInfo, base, quote float64) float64 {
	b, q := strings.ToUpper(info.Base), strings.ToUpper(info.Quote)
	switch {
	case usdQuotes[q]:
		return quote * 2
	case usdQuotes[b]:
		return base * 2
	}
	for _, side := range []struct {
		ticker string
		amount float64
	}{{b, base}, {q, quote}} {
		if price, ok := c.referencePrice(side.ticker); ok {
			return side.amount * price * 2
		}
	}
	return max(base, quote) * unknownTokenPrice * 2
}

func (c *PoolClient) referencePrice(ticker string) (float64, bool) {
	if p, ok := c.ReferencePrices[ticker]; ok {
		return p, true
	}
	if strings.Contains(ticker, "BTC") {
		p, ok := c.ReferencePrices["BTC"]
		return p, ok
	}
	return 0, false
}
