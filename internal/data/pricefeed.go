package data

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

const defaultPriceBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps base tickers to the feed's coin identifiers.
var coinIDs = map[string]string{
	"SOL":  "solana",
	"RAY":  "raydium",
	"USDC": "usd-coin",
	"BONK": "bonk",
	"JUP":  "jupiter-exchange-solana",
}

// usdQuotes are quote tickers priced as plain USD.
var usdQuotes = map[string]bool{"USD": true, "USDC": true, "USDT": true, "USDS": true, "USD1": true}

type PriceClientConfig struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64
	Timeout           time.Duration
	CacheTTL          time.Duration
}

// PriceClient fetches daily price/volume history from a CoinGecko-style
// market_chart endpoint.
type PriceClient struct {
	BaseURL string

	feed  httpFeed
	cache *TTLCache[string, []model.PricePoint]
}

func NewPriceClient(cfg PriceClientConfig) *PriceClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultPriceBaseURL
	}
	feed := newHTTPFeed("price feed", cfg.Timeout, cfg.RequestsPerSecond, logger.GetForComponent("price_feed"))
	if cfg.APIKey != "" {
		feed.headers["x-cg-demo-api-key"] = cfg.APIKey
	}
	return &PriceClient{
		BaseURL: base,
		feed:    feed,
		cache:   NewTTLCache[string, []model.PricePoint](cfg.CacheTTL),
	}
}

type marketChartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// FetchSeries returns one point per day for pair ("BASE/QUOTE") over period,
// oldest first. The result is not validated; callers hand it to the
// simulator, which does.
func (c *PriceClient) FetchSeries(ctx context.Context, pair string, period LookbackPeriod) ([]model.PricePoint, error) {
	days := period.Days()
	if days == 0 {
		return nil, fmt.Errorf("unsupported time period %q", period)
	}
	coinID, vs, err := resolvePair(pair)
	if err != nil {
		return nil, err
	}

	key := cacheKey(coinID, vs, string(period))
	if cached, ok := c.cache.Get(key); ok {
		c.feed.log.Debug().Str("pair", pair).Str("period", string(period)).Msg("cache hit")
		return append([]model.PricePoint(nil), cached...), nil
	}

	u, err := url.Parse(c.BaseURL + "/coins/" + url.PathEscape(coinID) + "/market_chart")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("vs_currency", vs)
	q.Set("days", strconv.Itoa(days))
	q.Set("interval", "daily")
	u.RawQuery = q.Encode()

	var body marketChartResponse
	if err := c.feed.getJSON(ctx, u.String(), &body); err != nil {
		return nil, err
	}

	series, err := toDailySeries(body)
	if err != nil {
		return nil, err
	}
	c.feed.log.Info().Str("pair", pair).Str("period", string(period)).Int("points", len(series)).Msg("fetched price history")

	c.cache.Set(key, series)
	return append([]model.PricePoint(nil), series...), nil
}

func resolvePair(pair string) (coinID, vsCurrency string, err error) {
	base, quote, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(pair)), "/")
	if !ok || base == "" || quote == "" {
		return "", "", fmt.Errorf("%w: %q (want BASE/QUOTE)", ErrUnknownPair, pair)
	}
	coinID, ok = coinIDs[base]
	if !ok {
		return "", "", fmt.Errorf("%w: no price feed id for %s", ErrUnknownPair, base)
	}
	vsCurrency = strings.ToLower(quote)
	if usdQuotes[quote] {
		vsCurrency = "usd"
	}
	return coinID, vsCurrency, nil
}

// toDailySeries pairs prices with volumes by index and collapses samples
// that fall on the same UTC date, keeping the latest.
func toDailySeries(body marketChartResponse) ([]model.PricePoint, error) {
	if len(body.Prices) == 0 {
		return nil, ErrNoData
	}
	if len(body.TotalVolumes) < len(body.Prices) {
		return nil, &FeedError{
			Code:    "MISSING_VOLUME",
			Message: fmt.Sprintf("price feed returned %d prices but %d volumes", len(body.Prices), len(body.TotalVolumes)),
		}
	}

	out := make([]model.PricePoint, 0, len(body.Prices))
	for i, p := range body.Prices {
		date := time.UnixMilli(int64(p[0])).UTC().Format("2006-01-02")
		point := model.PricePoint{Timestamp: date, Price: p[1], Volume: body.TotalVolumes[i][1]}
		if n := len(out); n > 0 && out[n-1].Timestamp == date {
			out[n-1] = point
			continue
		}
		out = append(out, point)
	}
	return out, nil
}
