package backtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlmm-backtest/internal/model"
)

func TestCompare_OrderAndIndependence(t *testing.T) {
	data := randomWalk(3, 45, 80, 0.05)
	req := CompareRequest{InvestmentAmount: 5000, TokenPairID: "SOL/USDC", RebalanceThreshold: 0.05}

	e := New()
	e.Workers = 2
	outcomes := e.Compare(context.Background(), req, data)

	require.Len(t, outcomes, 3)
	for i, kind := range model.AllKinds {
		assert.Equal(t, kind, outcomes[i].Kind)
		require.NoError(t, outcomes[i].Err)
		require.NotNil(t, outcomes[i].Result)
		assert.Equal(t, kind, outcomes[i].Result.Strategy)

		solo, err := New().Run(req.Config(kind), data)
		require.NoError(t, err)
		assert.Equal(t, solo, outcomes[i].Result, "comparison must match a standalone run")
	}
}

func TestCompare_PerStrategyError(t *testing.T) {
	req := CompareRequest{
		InvestmentAmount: 1000,
		InitialRange:     &model.PriceRange{Min: 10, Max: 20},
		StrictRange:      true,
	}
	outcomes := New().Compare(context.Background(), req, series(50, 51, 52))

	require.Len(t, outcomes, 3)
	assert.ErrorIs(t, outcomes[0].Err, model.ErrInvalidRange)
	assert.Nil(t, outcomes[0].Result)
	assert.NoError(t, outcomes[1].Err)
	assert.NoError(t, outcomes[2].Err)
	assert.Len(t, Succeeded(outcomes), 2)
}

func TestCompare_BadSeriesFailsEverySlot(t *testing.T) {
	outcomes := New().Compare(context.Background(), CompareRequest{InvestmentAmount: 1000}, nil)
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, model.ErrInvalidPriceData)
	}
}

func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := New().Compare(ctx, CompareRequest{InvestmentAmount: 1000}, series(50, 51))
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.True(t, errors.Is(o.Err, context.Canceled))
	}
}
