package models

import "dlmm-backtest/internal/model"

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status"`
	Result BacktestResult `json:"result"`
}

// BacktestResult contains aggregated backtest results
type BacktestResult struct {
	Strategy           string            `json:"strategy"`
	StrategyName       string            `json:"strategy_name"`
	TokenPair          string            `json:"token_pair"`
	TotalInvestment    float64           `json:"total_investment"`
	TotalFees          float64           `json:"total_fees"`
	ImpermanentLoss    float64           `json:"impermanent_loss"`
	NetProfit          float64           `json:"net_profit"`
	ROI                float64           `json:"roi"`           // percent
	TimeInRange        float64           `json:"time_in_range"` // percent
	RequestedRange     *model.PriceRange `json:"requested_range,omitempty"`
	AppliedRange       model.PriceRange  `json:"applied_range"`
	RangeAutoCorrected bool              `json:"range_auto_corrected"`
	PoolHealth         *PoolHealth       `json:"pool_health,omitempty"`
	Summary            BacktestSummary   `json:"summary"`
	Days               int               `json:"days"`
	DailyBreakdown     []DailyResult     `json:"daily_breakdown,omitempty"`
}

// BacktestSummary holds per-day extremes. rebalance_count and
// total_gas_costs are absent for strategies that never rebalance.
type BacktestSummary struct {
	BestDay        float64  `json:"best_day"`
	WorstDay       float64  `json:"worst_day"`
	AvgDailyFees   float64  `json:"avg_daily_fees"`
	RebalanceCount *int     `json:"rebalance_count,omitempty"`
	TotalGasCosts  *float64 `json:"total_gas_costs,omitempty"`
}

type PoolHealth struct {
	TotalLiquidity float64 `json:"total_liquidity"`
	Volume24h      float64 `json:"volume_24h"`
	IsActive       bool    `json:"is_active"`
	PoolAddress    string  `json:"pool_address"`
	Warning        string  `json:"warning,omitempty"`
}

// DailyResult represents one day of the breakdown
type DailyResult struct {
	Index             int              `json:"index"`
	Date              string           `json:"date"`
	Price             float64          `json:"price"`
	Volume            float64          `json:"volume"`
	Band              model.PriceRange `json:"band"`
	InRange           bool             `json:"in_range"`
	Rebalanced        bool             `json:"rebalanced,omitempty"`
	DailyFees         float64          `json:"daily_fees"`
	CumulativeFees    float64          `json:"cumulative_fees"`
	ImpermanentLoss   float64          `json:"impermanent_loss"`
	CumulativeGasCost float64          `json:"cumulative_gas_cost,omitempty"`
	NetPL             float64          `json:"net_pl"`
}

// BreakdownResponse is the stored breakdown of a previous run
type BreakdownResponse struct {
	ID             string        `json:"id"`
	Strategy       string        `json:"strategy"`
	TokenPair      string        `json:"token_pair"`
	DailyBreakdown []DailyResult `json:"daily_breakdown"`
}

// CompareBacktestResponse represents the response from a comparison.
// Comparison always has one entry per strategy, in a fixed order.
type CompareBacktestResponse struct {
	TokenPair   string             `json:"token_pair"`
	TimePeriod  string             `json:"time_period,omitempty"`
	Comparison  []ComparisonResult `json:"comparison"`
	Ranking     []Ranking          `json:"ranking"`
	SeriesStats SeriesStats        `json:"series_stats"`
}

// ComparisonResult carries either a result or an error for one strategy
type ComparisonResult struct {
	Strategy string          `json:"strategy"`
	ID       string          `json:"id,omitempty"`
	Result   *BacktestResult `json:"result,omitempty"`
	Error    *ErrorDetail    `json:"error,omitempty"`
}

// Ranking represents one ranked strategy
type Ranking struct {
	Rank        int     `json:"rank"`
	Strategy    string  `json:"strategy"`
	ROI         float64 `json:"roi"`
	NetProfit   float64 `json:"net_profit"`
	TimeInRange float64 `json:"time_in_range"`
	Failed      bool    `json:"failed,omitempty"`
}

type SeriesStats struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Count          int     `json:"count"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
	MeanPrice      float64 `json:"mean_price"`
	P05Price       float64 `json:"p05_price"`
	P95Price       float64 `json:"p95_price"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volatility     float64 `json:"volatility"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	MeanVolume     float64 `json:"mean_volume"`
}

// PriceDataResponse is the body of GET /api/v1/price-data
type PriceDataResponse struct {
	Success    bool               `json:"success"`
	Data       []model.PricePoint `json:"data"`
	Count      int                `json:"count"`
	TokenPair  string             `json:"token_pair"`
	TimePeriod string             `json:"time_period"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "bool", "range"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// PoolInfo represents a registered pool
type PoolInfo struct {
	Pair         string  `json:"pair"`
	Address      string  `json:"address"`
	Base         string  `json:"base"`
	Quote        string  `json:"quote"`
	LiquidityUSD float64 `json:"liquidity_usd,omitempty"`
	FeeRate      float64 `json:"fee_rate,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
