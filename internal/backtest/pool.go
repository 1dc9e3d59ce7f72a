package backtest

import (
	"context"
	"fmt"
	"math"

	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

// PoolSource supplies live pool state for a token pair.
type PoolSource interface {
	PoolSnapshot(ctx context.Context, pair string) (model.PoolSnapshot, error)
}

// ResolveFeeModel switches base to observed pool data when src has a usable
// snapshot for pair. Any failure falls back to base unchanged and returns a
// nil PoolHealth; the fallback is logged, never returned as an error.
//
// marketVolume is the typical daily market volume of the series, used only
// for the PoolHealth volume estimate.
func ResolveFeeModel(ctx context.Context, src PoolSource, pair string, investment, marketVolume float64, base model.FeeModel) (model.FeeModel, *model.PoolHealth) {
	log := logger.GetForComponent("backtest")
	if src == nil {
		return base, nil
	}

	snap, err := src.PoolSnapshot(ctx, pair)
	if err == nil {
		err = usableSnapshot(snap)
	}
	if err != nil {
		log.Warn().Err(err).Str("pair", pair).Msg("pool data unavailable, using default fee constants")
		return base, nil
	}

	observed := base
	observed.PoolLiquidity = snap.TotalLiquidity
	observed.DailyFeeRate = snap.FeeRate

	health := &model.PoolHealth{
		TotalLiquidity: snap.TotalLiquidity,
		Volume24h:      marketVolume * model.PoolVolumeShare(snap.TotalLiquidity),
		IsActive:       snap.IsActive(),
		PoolAddress:    snap.Address,
		Warning:        snap.Warning(investment),
	}
	log.Debug().
		Str("pair", pair).
		Float64("liquidity", snap.TotalLiquidity).
		Float64("fee_rate", snap.FeeRate).
		Msg("using observed pool data")
	return observed, health
}

func usableSnapshot(s model.PoolSnapshot) error {
	if !(s.TotalLiquidity > 0) || math.IsInf(s.TotalLiquidity, 0) {
		return fmt.Errorf("pool %s: non-positive liquidity %v", s.Address, s.TotalLiquidity)
	}
	if !(s.FeeRate > 0) || s.FeeRate >= 1 {
		return fmt.Errorf("pool %s: fee rate %v out of range", s.Address, s.FeeRate)
	}
	return nil
}

// MeanVolume is the average daily volume of series, 0 when empty.
func MeanVolume(series []model.PricePoint) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range series {
		sum += p.Volume
	}
	return sum / float64(len(series))
}

// RunWithPool is Run with the fee model resolved against src first.
func (e *Engine) RunWithPool(ctx context.Context, src PoolSource, cfg model.StrategyConfig, series []model.PricePoint) (*Result, error) {
	fees, health := ResolveFeeModel(ctx, src, cfg.TokenPairID, cfg.InvestmentAmount, MeanVolume(series), e.Fees)
	run := *e
	run.Fees = fees
	res, err := run.Run(cfg, series)
	if err != nil {
		return nil, err
	}
	res.PoolHealth = health
	return res, nil
}
