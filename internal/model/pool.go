package model

import "fmt"

// PoolSnapshot is what the live pool feed reports for a pair.
type PoolSnapshot struct {
	Pair           string
	Address        string
	TotalLiquidity float64 // USD
	FeeRate        float64 // fraction of volume, e.g. 0.0025
	BinStep        int
	ActiveID       int
}

// IsActive reports whether the pool has enough liquidity to trade.
func (s PoolSnapshot) IsActive() bool { return s.TotalLiquidity > MinActivePoolLiquidity }

// PoolHealth is the snapshot summary attached to results that used live data.
type PoolHealth struct {
	TotalLiquidity float64
	Volume24h      float64
	IsActive       bool
	PoolAddress    string
	Warning        string
}

// Warning describes why results against this pool may be unreliable for a
// position of the given size. Empty when nothing stands out.
func (s PoolSnapshot) Warning(investment float64) string {
	if s.TotalLiquidity < MinActivePoolLiquidity {
		return fmt.Sprintf("Extremely low liquidity ($%.2f) - returns will be near zero", s.TotalLiquidity)
	}
	if s.TotalLiquidity < 100_000 {
		return fmt.Sprintf("Low liquidity pool ($%.0f) - limited trading activity expected", s.TotalLiquidity)
	}
	share := investment / (s.TotalLiquidity + investment)
	if share > 0.1 {
		return fmt.Sprintf("Your $%.0f investment is %.1f%% of pool - results may be unrealistic", investment, share*100)
	}
	if share > 0.05 {
		return fmt.Sprintf("Large position (%.1f%% of pool) - consider smaller test amount first", share*100)
	}
	return ""
}
