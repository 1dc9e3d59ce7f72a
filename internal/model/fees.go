package model

import (
	"fmt"
	"math"
)

// Default fee accrual constants. These are tunable estimates, not a
// calibrated market model.
const (
	DefaultDailyFeeRate          = 0.0025 // share of daily volume paid to LPs
	DefaultPoolSizeToVolumeRatio = 0.1    // assumed pool TVL as a fraction of daily volume
	DefaultShareCap              = 0.05   // max share of the pool attributed to the position

	// Below this observed liquidity a pool is considered dead and pays nothing.
	MinActivePoolLiquidity = 1000.0
)

// FeeModel estimates a day's fee income for an in-range position.
//
// In the default mode the pool size is inferred from the day's volume. When
// PoolLiquidity is set (observed from a live pool feed) the position's share
// is taken against that liquidity instead and market volume is scaled down by
// PoolVolumeShare.
type FeeModel struct {
	DailyFeeRate          float64
	PoolSizeToVolumeRatio float64
	ShareCap              float64

	// ShareFactor scales the liquidity share; 1 leaves the formula unchanged.
	ShareFactor float64

	// PoolLiquidity is the observed USD liquidity, 0 when unknown.
	PoolLiquidity float64
}

func DefaultFeeModel() FeeModel {
	return FeeModel{
		DailyFeeRate:          DefaultDailyFeeRate,
		PoolSizeToVolumeRatio: DefaultPoolSizeToVolumeRatio,
		ShareCap:              DefaultShareCap,
		ShareFactor:           1,
	}
}

// Observed reports whether the model runs on live pool data.
func (f FeeModel) Observed() bool { return f.PoolLiquidity > 0 }

// WithShareFactor returns a copy with ShareFactor replaced.
func (f FeeModel) WithShareFactor(factor float64) FeeModel {
	f.ShareFactor = factor
	return f
}

func (f FeeModel) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"daily fee rate", f.DailyFeeRate},
		{"pool size to volume ratio", f.PoolSizeToVolumeRatio},
		{"share cap", f.ShareCap},
		{"share factor", f.ShareFactor},
	}
	for _, c := range checks {
		if !isPositiveFinite(c.value) {
			return fmt.Errorf("%w: fee model %s must be positive, got %v", ErrInvalidConfig, c.name, c.value)
		}
	}
	if f.ShareCap > 1 {
		return fmt.Errorf("%w: share cap must be <= 1, got %v", ErrInvalidConfig, f.ShareCap)
	}
	if math.IsNaN(f.PoolLiquidity) || math.IsInf(f.PoolLiquidity, 0) || f.PoolLiquidity < 0 {
		return fmt.Errorf("%w: pool liquidity %v", ErrInvalidConfig, f.PoolLiquidity)
	}
	return nil
}

// LiquidityShare is min(investment/estimatedPoolSize, ShareCap) scaled by
// ShareFactor. The cap keeps a large position against thin volume from
// claiming an implausible share of the pool.
func (f FeeModel) LiquidityShare(investment, dayVolume float64) float64 {
	var share float64
	if f.Observed() {
		share = investment / (f.PoolLiquidity + investment)
	} else {
		poolSize := dayVolume * f.PoolSizeToVolumeRatio
		if poolSize <= 0 {
			share = f.ShareCap
		} else {
			share = investment / poolSize
		}
	}
	return math.Min(share, f.ShareCap) * f.ShareFactor
}

// DailyFee returns the fee income for one in-range day. Callers pass only
// in-range days; out-of-range days earn exactly zero.
func (f FeeModel) DailyFee(investment, dayVolume float64) (float64, error) {
	if math.IsNaN(dayVolume) || math.IsInf(dayVolume, 0) || dayVolume < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidVolume, dayVolume)
	}
	if dayVolume == 0 {
		return 0, nil
	}
	volume := dayVolume
	if f.Observed() {
		if f.PoolLiquidity < MinActivePoolLiquidity {
			return 0, nil
		}
		volume = dayVolume * PoolVolumeShare(f.PoolLiquidity)
	}
	fee := volume * f.DailyFeeRate * f.LiquidityShare(investment, dayVolume)
	return math.Max(fee, 0), nil
}

// PoolVolumeShare is the fraction of market-wide volume assumed to route
// through a pool of the given USD liquidity.
func PoolVolumeShare(liquidity float64) float64 {
	switch {
	case liquidity > 5_000_000:
		return 0.01
	case liquidity > 1_000_000:
		return 0.005
	case liquidity > 100_000:
		return 0.001
	default:
		return 0.0005
	}
}
