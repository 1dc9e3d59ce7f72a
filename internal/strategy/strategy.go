package strategy

import (
	"fmt"

	"dlmm-backtest/internal/model"
)

// Context is what a policy sees for one day.
type Context struct {
	Index int
	Point model.PricePoint
}

// RangeState is the policy-owned part of the simulation state. Policies never
// mutate a state they are given; Advance returns the next one.
type RangeState struct {
	Band   model.PriceRange
	Center float64

	RebalanceCount int
	GasCost        float64 // cumulative

	// Rebalanced is true only on the day a re-center happened.
	Rebalanced bool

	// AutoCorrected is set by Concentrated when the caller's range was
	// replaced by the default band.
	AutoCorrected bool
}

// Policy decides the active band of a run. One policy is selected per run.
type Policy interface {
	Kind() model.StrategyKind
	Init(first model.PricePoint) (RangeState, error)
	Advance(state RangeState, ctx Context) RangeState
}

// Params are the band widths and costs shared by all policies. Band values are
// half-widths as fractions of the center price.
type Params struct {
	ConcentratedBand          float64
	WideBand                  float64
	RebalanceBand             float64
	DefaultRebalanceThreshold float64
	GasCostPerRebalance       float64 // USD
}

func DefaultParams() Params {
	return Params{
		ConcentratedBand:          0.04,
		WideBand:                  0.20,
		RebalanceBand:             0.04,
		DefaultRebalanceThreshold: 0.05,
		GasCostPerRebalance:       0.01,
	}
}

func (p Params) Validate() error {
	bands := []struct {
		name  string
		value float64
	}{
		{"concentrated band", p.ConcentratedBand},
		{"wide band", p.WideBand},
		{"rebalance band", p.RebalanceBand},
	}
	for _, b := range bands {
		if b.value <= 0 || b.value >= 1 {
			return fmt.Errorf("%w: %s must be in (0, 1), got %v", model.ErrInvalidConfig, b.name, b.value)
		}
	}
	if p.DefaultRebalanceThreshold <= 0 || p.DefaultRebalanceThreshold > 1 {
		return fmt.Errorf("%w: default rebalance threshold must be in (0, 1], got %v", model.ErrInvalidConfig, p.DefaultRebalanceThreshold)
	}
	if p.GasCostPerRebalance < 0 {
		return fmt.Errorf("%w: gas cost must be >= 0, got %v", model.ErrInvalidConfig, p.GasCostPerRebalance)
	}
	return nil
}

// New builds the policy for cfg.Kind.
func New(cfg model.StrategyConfig, p Params) (Policy, error) {
	switch cfg.Kind {
	case model.Concentrated:
		return &ConcentratedPolicy{Requested: cfg.InitialRange, Strict: cfg.StrictRange, DefaultBand: p.ConcentratedBand}, nil
	case model.Wide:
		return &WidePolicy{Band: p.WideBand}, nil
	case model.ActiveRebalancing:
		threshold := cfg.RebalanceThreshold
		if threshold == 0 {
			threshold = p.DefaultRebalanceThreshold
		}
		return &RebalancePolicy{Threshold: threshold, Band: p.RebalanceBand, GasCost: p.GasCostPerRebalance}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", model.ErrInvalidConfig, cfg.Kind)
	}
}

func checkFirstPrice(first model.PricePoint) error {
	if err := first.Validate(); err != nil {
		return fmt.Errorf("first price point: %w", err)
	}
	return nil
}
