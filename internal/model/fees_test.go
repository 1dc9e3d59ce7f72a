package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeModel_DailyFee_Default(t *testing.T) {
	f := DefaultFeeModel()

	// pool = 2M * 0.1 = 200k, share = 1000/200k = 0.5%
	fee, err := f.DailyFee(1000, 2_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 25, fee, 1e-9)
}

func TestFeeModel_ShareCap(t *testing.T) {
	f := DefaultFeeModel()

	// Uncapped share would be 1M / 100k = 1000%.
	assert.InDelta(t, 0.05, f.LiquidityShare(1_000_000, 1_000_000), 1e-12)

	fee, err := f.DailyFee(1_000_000, 1_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 1_000_000*0.0025*0.05, fee, 1e-9)
}

func TestFeeModel_ZeroVolume(t *testing.T) {
	fee, err := DefaultFeeModel().DailyFee(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)
}

func TestFeeModel_InvalidVolume(t *testing.T) {
	f := DefaultFeeModel()
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := f.DailyFee(1000, v)
		assert.ErrorIs(t, err, ErrInvalidVolume, "volume %v", v)
	}
}

func TestFeeModel_ShareFactor(t *testing.T) {
	base := DefaultFeeModel()
	half := base.WithShareFactor(0.5)

	full, err := base.DailyFee(1000, 2_000_000)
	require.NoError(t, err)
	halved, err := half.DailyFee(1000, 2_000_000)
	require.NoError(t, err)
	assert.InDelta(t, full/2, halved, 1e-9)
	assert.Equal(t, 1.0, base.ShareFactor, "WithShareFactor must not mutate the receiver")
}

func TestFeeModel_Observed(t *testing.T) {
	f := DefaultFeeModel()
	f.PoolLiquidity = 2_000_000
	require.True(t, f.Observed())

	fee, err := f.DailyFee(1000, 1_000_000)
	require.NoError(t, err)

	share := 1000.0 / (2_000_000 + 1000)
	want := 1_000_000 * 0.005 * 0.0025 * share
	assert.InDelta(t, want, fee, 1e-12)
}

func TestFeeModel_ObservedDeadPool(t *testing.T) {
	f := DefaultFeeModel()
	f.PoolLiquidity = 500

	fee, err := f.DailyFee(1000, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)
}

func TestPoolVolumeShare(t *testing.T) {
	cases := []struct {
		liquidity float64
		want      float64
	}{
		{10_000_000, 0.01},
		{5_000_000, 0.005},
		{2_000_000, 0.005},
		{500_000, 0.001},
		{100_000, 0.0005},
		{10, 0.0005},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PoolVolumeShare(tc.liquidity), "liquidity %v", tc.liquidity)
	}
}

func TestFeeModel_Validate(t *testing.T) {
	require.NoError(t, DefaultFeeModel().Validate())

	bad := DefaultFeeModel()
	bad.ShareCap = 2
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultFeeModel()
	bad.DailyFeeRate = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultFeeModel()
	bad.PoolLiquidity = -5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestPoolSnapshot_Warning(t *testing.T) {
	cases := []struct {
		name      string
		liquidity float64
		invest    float64
		contains  string
	}{
		{"dead", 500, 1000, "Extremely low liquidity"},
		{"thin", 50_000, 1000, "Low liquidity pool"},
		{"dominant", 500_000, 100_000, "results may be unrealistic"},
		{"large", 1_000_000, 70_000, "Large position"},
		{"healthy", 10_000_000, 1000, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := PoolSnapshot{TotalLiquidity: tc.liquidity}.Warning(tc.invest)
			if tc.contains == "" {
				assert.Empty(t, w)
				return
			}
			assert.Contains(t, w, tc.contains)
		})
	}
}
