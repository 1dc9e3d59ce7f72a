package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlmm-backtest/internal/model"
)

func TestAggregate_Empty(t *testing.T) {
	_, err := Aggregate(cfgFor(model.Wide), nil)
	assert.ErrorIs(t, err, model.ErrEmptyBreakdown)
}

func TestAggregate_Totals(t *testing.T) {
	breakdown := []DailyResult{
		{InRange: true, DailyFees: 2, CumulativeFees: 2, ImpermanentLoss: 1, NetPL: 1},
		{InRange: false, DailyFees: 0, CumulativeFees: 2, ImpermanentLoss: 5, NetPL: -3},
		{InRange: true, Rebalanced: true, DailyFees: 4, CumulativeFees: 6, ImpermanentLoss: 2, CumulativeGasCost: 0.01, NetPL: 3.99},
		{InRange: true, DailyFees: 1, CumulativeFees: 7, ImpermanentLoss: 3, CumulativeGasCost: 0.01, NetPL: 3.99},
	}

	res, err := Aggregate(cfgFor(model.ActiveRebalancing), breakdown)
	require.NoError(t, err)

	assert.Equal(t, 7.0, res.TotalFees)
	assert.Equal(t, 3.0, res.ImpermanentLoss)
	assert.Equal(t, 3.99, res.NetProfit)
	assert.InDelta(t, 0.399, res.ROI, 1e-12)
	assert.Equal(t, 75.0, res.TimeInRange)
	assert.Equal(t, 4.0, res.Summary.BestDay)
	assert.Equal(t, 0.0, res.Summary.WorstDay)
	assert.Equal(t, 1.75, res.Summary.AvgDailyFees)
	require.NotNil(t, res.Summary.RebalanceCount)
	assert.Equal(t, 1, *res.Summary.RebalanceCount)
	assert.Equal(t, 0.01, *res.Summary.TotalGasCosts)
}

func TestAggregate_ZeroRebalancesIsNotNil(t *testing.T) {
	res, err := Aggregate(cfgFor(model.ActiveRebalancing), []DailyResult{{InRange: true, DailyFees: 1, CumulativeFees: 1, NetPL: 1}})
	require.NoError(t, err)
	require.NotNil(t, res.Summary.RebalanceCount)
	assert.Equal(t, 0, *res.Summary.RebalanceCount)
}
