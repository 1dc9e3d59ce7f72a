// Package report renders backtest results as terminal tables.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/backtest"
)

func usd(x float64) string {
	d := decimal.NewFromFloat(x).Round(2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func pct(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2) + "%"
}

// Result prints the headline numbers of one run.
func Result(out io.Writer, r *backtest.Result) {
	fmt.Fprintf(out, "\n%s on %s (%d days)\n", r.Strategy.DisplayName(), r.TokenPair, len(r.DailyBreakdown))

	table := tablewriter.NewWriter(out)
	table.Header("Metric", "Value")
	table.Append("Investment", usd(r.TotalInvestment))
	table.Append("Fees earned", usd(r.TotalFees))
	table.Append("Impermanent loss", usd(r.ImpermanentLoss))
	table.Append("Net profit", usd(r.NetProfit))
	table.Append("ROI", pct(r.ROI))
	table.Append("Time in range", pct(r.TimeInRange))
	table.Append("Range", fmt.Sprintf("[%.4f, %.4f]", r.AppliedRange.Min, r.AppliedRange.Max))
	table.Append("Avg daily fees", usd(r.Summary.AvgDailyFees))
	table.Append("Best day", usd(r.Summary.BestDay))
	table.Append("Worst day", usd(r.Summary.WorstDay))
	if r.Summary.RebalanceCount != nil {
		table.Append("Rebalances", fmt.Sprintf("%d", *r.Summary.RebalanceCount))
	}
	if r.Summary.TotalGasCosts != nil {
		table.Append("Gas costs", usd(*r.Summary.TotalGasCosts))
	}
	table.Render()

	if r.RangeAutoCorrected && r.RequestedRange != nil {
		fmt.Fprintf(out, "  note: requested range [%.4f, %.4f] did not contain the first price and was replaced\n",
			r.RequestedRange.Min, r.RequestedRange.Max)
	}
	if h := r.PoolHealth; h != nil && h.Warning != "" {
		fmt.Fprintf(out, "  pool: %s\n", h.Warning)
	}
}

// Comparison prints one row per strategy in ranked order. Failed strategies
// show their error instead of numbers.
func Comparison(out io.Writer, outcomes []backtest.Outcome) {
	table := tablewriter.NewWriter(out)
	table.Header("#", "Strategy", "Fees", "IL", "Net", "ROI", "In range", "Rebal")

	byKind := make(map[string]*backtest.Result, len(outcomes))
	for _, o := range outcomes {
		byKind[string(o.Kind)] = o.Result
	}

	for _, r := range analysis.RankByROI(outcomes) {
		if r.Err != nil {
			table.Append(fmt.Sprintf("%d", r.Rank), r.Kind.DisplayName(), "-", "-", "-", "-", "-", r.Err.Error())
			continue
		}
		res := byKind[string(r.Kind)]
		rebal := "-"
		if res.Summary.RebalanceCount != nil {
			rebal = fmt.Sprintf("%d", *res.Summary.RebalanceCount)
		}
		table.Append(
			fmt.Sprintf("%d", r.Rank),
			r.Kind.DisplayName(),
			usd(res.TotalFees),
			usd(res.ImpermanentLoss),
			usd(res.NetProfit),
			pct(res.ROI),
			pct(res.TimeInRange),
			rebal,
		)
	}
	table.Render()
}

// Stats prints a price series summary.
func Stats(out io.Writer, s analysis.SeriesStats) {
	table := tablewriter.NewWriter(out)
	table.Header("Stat", "Value")
	table.Append("Period", fmt.Sprintf("%s .. %s (%d days)", s.Start, s.End, s.Count))
	table.Append("Min / Max", fmt.Sprintf("%.4f / %.4f", s.MinPrice, s.MaxPrice))
	table.Append("Mean", fmt.Sprintf("%.4f", s.MeanPrice))
	table.Append("P05 / P95", fmt.Sprintf("%.4f / %.4f", s.P05Price, s.P95Price))
	table.Append("Change", pct(s.PriceChangePct))
	table.Append("Daily volatility", fmt.Sprintf("%.4f", s.Volatility))
	table.Append("Max drawdown", pct(s.MaxDrawdownPct))
	table.Append("Mean volume", usd(s.MeanVolume))
	table.Render()
}
