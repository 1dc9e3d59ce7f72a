package strategy

import (
	"math"

	"dlmm-backtest/internal/model"
)

// RebalancePolicy re-centers a ±Band band on the day's price whenever the
// price has moved more than Threshold away from the current center. Each
// re-center costs GasCost.
//
// The re-center happens before that day's in-range check, so a rebalance day
// is always in range.
type RebalancePolicy struct {
	Threshold float64
	Band      float64
	GasCost   float64
}

func (r *RebalancePolicy) Kind() model.StrategyKind { return model.ActiveRebalancing }

func (r *RebalancePolicy) Init(first model.PricePoint) (RangeState, error) {
	if err := checkFirstPrice(first); err != nil {
		return RangeState{}, err
	}
	return RangeState{Band: model.BandAround(first.Price, r.Band), Center: first.Price}, nil
}

func (r *RebalancePolicy) Advance(state RangeState, ctx Context) RangeState {
	price := ctx.Point.Price
	deviation := math.Abs(price-state.Center) / state.Center

	state.Rebalanced = false
	if deviation > r.Threshold {
		state.Center = price
		state.Band = model.BandAround(price, r.Band)
		state.RebalanceCount++
		state.GasCost += r.GasCost
		state.Rebalanced = true
	}
	return state
}
