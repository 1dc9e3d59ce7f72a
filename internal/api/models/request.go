package models

import "dlmm-backtest/internal/model"

// BacktestRequest represents the request body for running a backtest.
// Either PriceData or TimePeriod must be given; PriceData wins when both are.
type BacktestRequest struct {
	TokenPair  string             `json:"token_pair" binding:"required"` // e.g. "SOL/USDC"
	TimePeriod string             `json:"time_period,omitempty"`         // 7d | 30d | 90d | 180d | 1y
	PriceData  []model.PricePoint `json:"price_data,omitempty"`
	Config     BacktestConfig     `json:"config" binding:"required"`
	Options    BacktestOptions    `json:"options,omitempty"`
}

// BacktestConfig is the strategy configuration of one run
type BacktestConfig struct {
	InvestmentAmount   float64     `json:"investment_amount" binding:"required,gt=0"`
	Strategy           string      `json:"strategy" binding:"required"` // concentrated | wide | active
	Range              *RangeInput `json:"range,omitempty"`
	RebalanceThreshold float64     `json:"rebalance_threshold,omitempty"`
	StrictRange        bool        `json:"strict_range,omitempty"`
}

type RangeInput struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	IncludeBreakdown bool `json:"include_breakdown,omitempty"` // default: false
	UsePoolData      bool `json:"use_pool_data,omitempty"`     // enrich with live pool stats when configured
}

// CompareBacktestRequest runs every strategy against one series.
type CompareBacktestRequest struct {
	TokenPair          string             `json:"token_pair" binding:"required"`
	TimePeriod         string             `json:"time_period,omitempty"`
	PriceData          []model.PricePoint `json:"price_data,omitempty"`
	InvestmentAmount   float64            `json:"investment_amount" binding:"required,gt=0"`
	Range              *RangeInput        `json:"range,omitempty"`
	RebalanceThreshold float64            `json:"rebalance_threshold,omitempty"`
	StrictRange        bool               `json:"strict_range,omitempty"`
	Options            BacktestOptions    `json:"options,omitempty"`
}

// PriceDataQuery is the query string of GET /api/v1/price-data
type PriceDataQuery struct {
	TokenPair  string `form:"tokenPair"`
	TimePeriod string `form:"timePeriod"`
}
