package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/config"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/model"
	"dlmm-backtest/internal/report"
)

// Demo:
// - Use a built-in week of SOL/USDC prices (or --data)
// - Run all three range strategies over it with the same investment
// - Print the comparison and the first strategy's day-by-day breakdown
func main() {
	dataPath := flag.String("data", "", "Optional series JSON (default: built-in sample week)")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	investment := flag.Float64("investment", 1000, "Investment per strategy in USD")
	outCSV := flag.String("out", "", "Optional path to write the concentrated breakdown CSV")
	flag.Parse()

	pair, series := "SOL/USDC", sampleWeek()
	if *dataPath != "" {
		file, err := data.LoadSeriesJSON(*dataPath)
		if err != nil {
			panic(err)
		}
		series = file.Data
		if file.TokenPair != "" {
			pair = file.TokenPair
		}
	}

	engine := backtest.New()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		engine = cfg.NewEngine()
	}

	outcomes := engine.Compare(context.Background(), backtest.CompareRequest{
		InvestmentAmount: *investment,
		TokenPairID:      pair,
		InitialRange:     &model.PriceRange{Min: 49, Max: 52},
	}, series)

	fmt.Printf("%s, %d days, $%.2f per strategy\n", pair, len(series), *investment)
	report.Comparison(os.Stdout, outcomes)
	report.Stats(os.Stdout, analysis.ComputeSeriesStats(series))

	first := outcomes[0]
	if first.Err != nil {
		fmt.Printf("%s failed: %v\n", first.Kind.DisplayName(), first.Err)
		return
	}
	fmt.Printf("\n%s day by day\n", first.Kind.DisplayName())
	fmt.Printf("%-12s %-10s %-8s %-10s %-10s %-10s\n", "date", "price", "in", "fees", "il", "net")
	for _, d := range first.Result.DailyBreakdown {
		fmt.Printf("%-12s %-10.4f %-8t %-10.2f %-10.2f %-10.2f\n",
			d.Date, d.Price, d.InRange, d.DailyFees, d.ImpermanentLoss, d.NetPL)
	}

	if *outCSV != "" {
		if err := backtest.WriteBreakdownCSV(*outCSV, first.Result.DailyBreakdown); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote breakdown CSV: %s\n", *outCSV)
	}
}

func sampleWeek() []model.PricePoint {
	prices := []float64{50, 51.5, 49.8, 52.1, 48.5, 50.8, 51.2}
	volumes := []float64{2_000_000, 2_200_000, 1_800_000, 2_400_000, 1_600_000, 2_100_000, 2_300_000}
	out := make([]model.PricePoint, len(prices))
	for i := range prices {
		out[i] = model.PricePoint{
			Timestamp: fmt.Sprintf("2025-06-%02d", i+1),
			Price:     prices[i],
			Volume:    volumes[i],
		}
	}
	return out
}
