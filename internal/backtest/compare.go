package backtest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

// CompareRequest carries the inputs shared by every strategy in a
// comparison plus the per-kind knobs.
type CompareRequest struct {
	InvestmentAmount   float64
	TokenPairID        string
	InitialRange       *model.PriceRange // Concentrated only
	RebalanceThreshold float64           // ActiveRebalancing only
	StrictRange        bool
}

// Config returns the single-run config for kind.
func (r CompareRequest) Config(kind model.StrategyKind) model.StrategyConfig {
	cfg := model.StrategyConfig{
		InvestmentAmount: r.InvestmentAmount,
		Kind:             kind,
		TokenPairID:      r.TokenPairID,
	}
	switch kind {
	case model.Concentrated:
		cfg.InitialRange = r.InitialRange
		cfg.StrictRange = r.StrictRange
	case model.ActiveRebalancing:
		cfg.RebalanceThreshold = r.RebalanceThreshold
	}
	return cfg
}

// Outcome is one strategy's slot in a comparison. Exactly one of Result and
// Err is set.
type Outcome struct {
	Kind   model.StrategyKind
	Result *Result
	Err    error
}

// Compare runs every strategy kind against the same series. The returned
// slice always has one entry per model.AllKinds, in that order; a failed run
// keeps its slot and carries its error.
//
// A cancelled ctx marks runs that had not started yet with ctx.Err().
func (e *Engine) Compare(ctx context.Context, req CompareRequest, series []model.PricePoint) []Outcome {
	log := logger.GetForComponent("backtest")

	outcomes := make([]Outcome, len(model.AllKinds))
	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}

	for i, kind := range model.AllKinds {
		i, kind := i, kind
		outcomes[i].Kind = kind
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			res, err := e.Run(req.Config(kind), series)
			if err != nil {
				log.Debug().Err(err).Str("strategy", string(kind)).Msg("strategy run failed")
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Succeeded returns the successful results in comparison order.
func Succeeded(outcomes []Outcome) []*Result {
	out := make([]*Result, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil && o.Result != nil {
			out = append(out, o.Result)
		}
	}
	return out
}
