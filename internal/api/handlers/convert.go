package handlers

import (
	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/backtest"
)

func toResultModel(r *backtest.Result, includeBreakdown bool) models.BacktestResult {
	out := models.BacktestResult{
		Strategy:           string(r.Strategy),
		StrategyName:       r.Strategy.DisplayName(),
		TokenPair:          r.TokenPair,
		TotalInvestment:    r.TotalInvestment,
		TotalFees:          r.TotalFees,
		ImpermanentLoss:    r.ImpermanentLoss,
		NetProfit:          r.NetProfit,
		ROI:                r.ROI,
		TimeInRange:        r.TimeInRange,
		RequestedRange:     r.RequestedRange,
		AppliedRange:       r.AppliedRange,
		RangeAutoCorrected: r.RangeAutoCorrected,
		Days:               len(r.DailyBreakdown),
		Summary: models.BacktestSummary{
			BestDay:        r.Summary.BestDay,
			WorstDay:       r.Summary.WorstDay,
			AvgDailyFees:   r.Summary.AvgDailyFees,
			RebalanceCount: r.Summary.RebalanceCount,
			TotalGasCosts:  r.Summary.TotalGasCosts,
		},
	}
	if h := r.PoolHealth; h != nil {
		out.PoolHealth = &models.PoolHealth{
			TotalLiquidity: h.TotalLiquidity,
			Volume24h:      h.Volume24h,
			IsActive:       h.IsActive,
			PoolAddress:    h.PoolAddress,
			Warning:        h.Warning,
		}
	}
	if includeBreakdown {
		out.DailyBreakdown = toBreakdownModel(r.DailyBreakdown)
	}
	return out
}

func toBreakdownModel(rows []backtest.DailyResult) []models.DailyResult {
	out := make([]models.DailyResult, 0, len(rows))
	for _, d := range rows {
		out = append(out, models.DailyResult{
			Index:             d.Index,
			Date:              d.Date,
			Price:             d.Price,
			Volume:            d.Volume,
			Band:              d.Band,
			InRange:           d.InRange,
			Rebalanced:        d.Rebalanced,
			DailyFees:         d.DailyFees,
			CumulativeFees:    d.CumulativeFees,
			ImpermanentLoss:   d.ImpermanentLoss,
			CumulativeGasCost: d.CumulativeGasCost,
			NetPL:             d.NetPL,
		})
	}
	return out
}

func toRankingModel(ranked []analysis.RankedOutcome) []models.Ranking {
	out := make([]models.Ranking, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, models.Ranking{
			Rank:        r.Rank,
			Strategy:    string(r.Kind),
			ROI:         r.ROI,
			NetProfit:   r.NetProfit,
			TimeInRange: r.TimeInRange,
			Failed:      r.Err != nil,
		})
	}
	return out
}

func toStatsModel(s analysis.SeriesStats) models.SeriesStats {
	return models.SeriesStats{
		Start:          s.Start,
		End:            s.End,
		Count:          s.Count,
		MinPrice:       s.MinPrice,
		MaxPrice:       s.MaxPrice,
		MeanPrice:      s.MeanPrice,
		P05Price:       s.P05Price,
		P95Price:       s.P95Price,
		PriceChangePct: s.PriceChangePct,
		Volatility:     s.Volatility,
		MaxDrawdownPct: s.MaxDrawdownPct,
		MeanVolume:     s.MeanVolume,
	}
}
