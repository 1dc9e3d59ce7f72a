package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeries(t *testing.T) {
	good := []PricePoint{
		{Timestamp: "2025-06-01", Price: 50, Volume: 2_000_000},
		{Timestamp: "2025-06-02", Price: 51.5, Volume: 0},
	}
	require.NoError(t, ValidateSeries(good))

	assert.ErrorIs(t, ValidateSeries(nil), ErrInvalidPriceData)

	cases := []struct {
		name string
		p    PricePoint
		want error
	}{
		{"zero price", PricePoint{Price: 0, Volume: 1}, ErrInvalidPriceData},
		{"nan price", PricePoint{Price: math.NaN(), Volume: 1}, ErrInvalidPriceData},
		{"inf price", PricePoint{Price: math.Inf(1), Volume: 1}, ErrInvalidPriceData},
		{"negative volume", PricePoint{Price: 10, Volume: -1}, ErrInvalidVolume},
		{"nan volume", PricePoint{Price: 10, Volume: math.NaN()}, ErrInvalidVolume},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			series := append([]PricePoint{}, good...)
			series = append(series, tc.p)
			err := ValidateSeries(series)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "day 2")
		})
	}
}

func TestPriceRange(t *testing.T) {
	r := PriceRange{Min: 48, Max: 52}
	require.NoError(t, r.Validate())

	assert.True(t, r.Contains(48), "min is inclusive")
	assert.True(t, r.Contains(52), "max is inclusive")
	assert.True(t, r.Contains(50))
	assert.False(t, r.Contains(47.999))
	assert.False(t, r.Contains(52.001))
	assert.InDelta(t, 4, r.Width(), 1e-12)

	for _, bad := range []PriceRange{{52, 48}, {50, 50}, {0, 10}, {-1, 10}, {1, math.Inf(1)}} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidRange, "%v", bad)
	}

	band := BandAround(50, 0.04)
	assert.InDelta(t, 48, band.Min, 1e-12)
	assert.InDelta(t, 52, band.Max, 1e-12)
}

func TestStrategyConfig_Validate(t *testing.T) {
	ok := StrategyConfig{InvestmentAmount: 1000, Kind: Concentrated}
	require.NoError(t, ok.Validate())

	cases := []struct {
		name string
		cfg  StrategyConfig
		want error
	}{
		{"zero investment", StrategyConfig{Kind: Wide}, ErrInvalidConfig},
		{"unknown kind", StrategyConfig{InvestmentAmount: 1, Kind: "yolo"}, ErrInvalidConfig},
		{"threshold above one", StrategyConfig{InvestmentAmount: 1, Kind: ActiveRebalancing, RebalanceThreshold: 1.5}, ErrInvalidConfig},
		{"negative threshold", StrategyConfig{InvestmentAmount: 1, Kind: ActiveRebalancing, RebalanceThreshold: -0.1}, ErrInvalidConfig},
		{"strict without range", StrategyConfig{InvestmentAmount: 1, Kind: Concentrated, StrictRange: true}, ErrInvalidRange},
		{"strict inverted range", StrategyConfig{InvestmentAmount: 1, Kind: Concentrated, StrictRange: true, InitialRange: &PriceRange{Min: 5, Max: 4}}, ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), tc.want)
		})
	}
}

func TestParseStrategyKind(t *testing.T) {
	k, err := ParseStrategyKind(" Active_Rebalancing ")
	require.NoError(t, err)
	assert.Equal(t, ActiveRebalancing, k)

	k, err = ParseStrategyKind("wide")
	require.NoError(t, err)
	assert.Equal(t, Wide, k)
	assert.False(t, k.Rebalances())

	_, err = ParseStrategyKind("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
