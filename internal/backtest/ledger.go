package backtest

import "dlmm-backtest/internal/model"

// DailyResult is one row of per-day output.
// This is the primary artifact for "what happened" in a backtest.
type DailyResult struct {
	Index int
	Date  string

	Price  float64
	Volume float64

	Band       model.PriceRange
	InRange    bool
	Rebalanced bool

	DailyFees      float64
	CumulativeFees float64

	ImpermanentLoss   float64
	CumulativeGasCost float64

	// NetPL = CumulativeFees - ImpermanentLoss - CumulativeGasCost.
	NetPL float64
}

// Summary holds the per-day extremes. RebalanceCount and TotalGasCosts are
// nil for strategies that never rebalance; a zero value means the strategy
// could have rebalanced but did not.
type Summary struct {
	BestDay      float64
	WorstDay     float64
	AvgDailyFees float64

	RebalanceCount *int
	TotalGasCosts  *float64
}

type Result struct {
	Strategy  model.StrategyKind
	TokenPair string

	TotalInvestment float64
	TotalFees       float64
	ImpermanentLoss float64
	NetProfit       float64
	ROI             float64 // percent
	TimeInRange     float64 // percent

	// RequestedRange is the caller's range, nil when none was given.
	// AppliedRange is the band the run started with.
	RequestedRange     *model.PriceRange
	AppliedRange       model.PriceRange
	RangeAutoCorrected bool

	// PoolHealth is set when observed pool data replaced the default fee
	// constants.
	PoolHealth *model.PoolHealth

	DailyBreakdown []DailyResult
	Summary        Summary
}
