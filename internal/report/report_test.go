package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/model"
)

func TestUSD(t *testing.T) {
	assert.Equal(t, "$12.35", usd(12.345))
	assert.Equal(t, "-$3.10", usd(-3.1))
	assert.Equal(t, "$0.00", usd(0))
}

func TestComparison_FailedLast(t *testing.T) {
	series := []model.PricePoint{
		{Timestamp: "2025-06-01", Price: 50, Volume: 2e6},
		{Timestamp: "2025-06-02", Price: 51, Volume: 2e6},
	}
	wide, err := backtest.New().Run(model.StrategyConfig{InvestmentAmount: 1000, Kind: model.Wide, TokenPairID: "SOL/USDC"}, series)
	require.NoError(t, err)

	var buf bytes.Buffer
	Comparison(&buf, []backtest.Outcome{
		{Kind: model.Concentrated, Err: errors.New("range rejected")},
		{Kind: model.Wide, Result: wide},
	})

	out := buf.String()
	assert.Contains(t, out, "range rejected")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Wide")), bytes.Index(buf.Bytes(), []byte("range rejected")))
}

func TestResultAndStats(t *testing.T) {
	series := []model.PricePoint{
		{Timestamp: "2025-06-01", Price: 50, Volume: 2e6},
		{Timestamp: "2025-06-02", Price: 60, Volume: 2e6},
	}
	res, err := backtest.New().Run(model.StrategyConfig{
		InvestmentAmount: 1000, Kind: model.ActiveRebalancing, TokenPairID: "SOL/USDC", RebalanceThreshold: 0.05,
	}, series)
	require.NoError(t, err)

	var buf bytes.Buffer
	Result(&buf, res)
	assert.Contains(t, buf.String(), "Rebalances")
	assert.Contains(t, buf.String(), "$1000.00")

	buf.Reset()
	Stats(&buf, analysis.ComputeSeriesStats(series))
	assert.Contains(t, buf.String(), "2025-06-01 .. 2025-06-02 (2 days)")
}
