package strategy

import "dlmm-backtest/internal/model"

// WidePolicy fixes a ±Band band around the first price.
type WidePolicy struct {
	Band float64
}

func (w *WidePolicy) Kind() model.StrategyKind { return model.Wide }

func (w *WidePolicy) Init(first model.PricePoint) (RangeState, error) {
	if err := checkFirstPrice(first); err != nil {
		return RangeState{}, err
	}
	return RangeState{Band: model.BandAround(first.Price, w.Band), Center: first.Price}, nil
}

func (w *WidePolicy) Advance(state RangeState, _ Context) RangeState {
	state.Rebalanced = false
	return state
}
