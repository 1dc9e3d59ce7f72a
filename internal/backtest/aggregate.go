package backtest

import (
	"fmt"

	"dlmm-backtest/internal/model"
)

// Aggregate derives the run totals from the daily breakdown. Everything is
// read from the rows; nothing is recomputed.
func Aggregate(cfg model.StrategyConfig, breakdown []DailyResult) (*Result, error) {
	if len(breakdown) == 0 {
		return nil, model.ErrEmptyBreakdown
	}
	if cfg.InvestmentAmount <= 0 {
		return nil, fmt.Errorf("%w: investment amount must be positive, got %v", model.ErrInvalidConfig, cfg.InvestmentAmount)
	}

	last := breakdown[len(breakdown)-1]
	days := float64(len(breakdown))

	inRange := 0
	rebalances := 0
	best, worst := breakdown[0].DailyFees, breakdown[0].DailyFees
	for _, d := range breakdown {
		if d.InRange {
			inRange++
		}
		if d.Rebalanced {
			rebalances++
		}
		if d.DailyFees > best {
			best = d.DailyFees
		}
		if d.DailyFees < worst {
			worst = d.DailyFees
		}
	}

	res := &Result{
		Strategy:  cfg.Kind,
		TokenPair: cfg.TokenPairID,

		TotalInvestment: cfg.InvestmentAmount,
		TotalFees:       last.CumulativeFees,
		ImpermanentLoss: last.ImpermanentLoss,
		NetProfit:       last.NetPL,
		ROI:             last.NetPL / cfg.InvestmentAmount * 100,
		TimeInRange:     float64(inRange) / days * 100,

		DailyBreakdown: breakdown,
		Summary: Summary{
			BestDay:      best,
			WorstDay:     worst,
			AvgDailyFees: last.CumulativeFees / days,
		},
	}

	if cfg.Kind.Rebalances() {
		gas := last.CumulativeGasCost
		res.Summary.RebalanceCount = &rebalances
		res.Summary.TotalGasCosts = &gas
	}
	return res, nil
}
