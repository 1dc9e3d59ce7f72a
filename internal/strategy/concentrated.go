package strategy

import (
	"fmt"

	"dlmm-backtest/internal/model"
)

// ConcentratedPolicy holds one band for the whole run.
//
// The caller's range is used as-is when it is well formed and contains the
// first day's price. Otherwise it is replaced by a DefaultBand band around
// that price, unless Strict is set, in which case Init fails.
type ConcentratedPolicy struct {
	Requested   *model.PriceRange
	Strict      bool
	DefaultBand float64
}

func (c *ConcentratedPolicy) Kind() model.StrategyKind { return model.Concentrated }

func (c *ConcentratedPolicy) Init(first model.PricePoint) (RangeState, error) {
	if err := checkFirstPrice(first); err != nil {
		return RangeState{}, err
	}
	p0 := first.Price
	fallback := RangeState{Band: model.BandAround(p0, c.DefaultBand), Center: p0}

	if c.Requested == nil {
		if c.Strict {
			return RangeState{}, fmt.Errorf("%w: strict mode requires a range", model.ErrInvalidRange)
		}
		return fallback, nil
	}

	r := *c.Requested
	err := r.Validate()
	if err == nil && !r.Contains(p0) {
		err = fmt.Errorf("%w: first price %v outside [%v, %v]", model.ErrInvalidRange, p0, r.Min, r.Max)
	}
	if err != nil {
		if c.Strict {
			return RangeState{}, err
		}
		fallback.AutoCorrected = true
		return fallback, nil
	}
	return RangeState{Band: r, Center: (r.Min + r.Max) / 2}, nil
}

func (c *ConcentratedPolicy) Advance(state RangeState, _ Context) RangeState {
	state.Rebalanced = false
	return state
}
