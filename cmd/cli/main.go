package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/config"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
	"dlmm-backtest/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(ctx, os.Args[2:])
	case "compare":
		cmdCompare(ctx, os.Args[2:])
	case "stats":
		cmdStats(ctx, os.Args[2:])
	case "fetch":
		cmdFetch(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --data series.json --strategy concentrated --min 49 --max 52 --out results/breakdown.csv")
	fmt.Println("  cli backtest --pair SOL/USDC --period 30d --strategy active --threshold 0.05")
	fmt.Println("  cli compare  --pair SOL/USDC --period 90d --investment 5000 [--pool]")
	fmt.Println("  cli stats    --data series.json")
	fmt.Println("  cli fetch    --pair SOL/USDC --period 1y --out data/sol-usdc-1y.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - series input is either --data (JSON file) or --pair/--period (price feed)")
	fmt.Println("  - --pool fetches live pool stats and uses the pool-aware fee model")
}

// common holds the flags shared by every subcommand.
type common struct {
	cfgPath  *string
	dataPath *string
	pair     *string
	period   *string
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		cfgPath:  fs.String("config", "", "Path to YAML config (optional)"),
		dataPath: fs.String("data", "", "Path to a series JSON file"),
		pair:     fs.String("pair", "SOL/USDC", "Token pair, e.g. SOL/USDC"),
		period:   fs.String("period", "30d", "Lookback when fetching: 7d, 30d, 90d, 180d or 1y"),
	}
}

// runFlags are the strategy knobs of backtest and compare.
type runFlags struct {
	investment *float64
	min        *float64
	max        *float64
	threshold  *float64
	strict     *bool
	pool       *bool
}

func strategyFlags(fs *flag.FlagSet) runFlags {
	return runFlags{
		investment: fs.Float64("investment", 1000, "Investment amount in USD"),
		min:        fs.Float64("min", 0, "Concentrated range lower bound (0 = default band)"),
		max:        fs.Float64("max", 0, "Concentrated range upper bound (0 = default band)"),
		threshold:  fs.Float64("threshold", 0, "Rebalance threshold in (0, 1] (0 = configured default)"),
		strict:     fs.Bool("strict", false, "Fail instead of replacing an unusable concentrated range"),
		pool:       fs.Bool("pool", false, "Use live pool stats for fees (needs feeds.pool_base_url)"),
	}
}

func (f runFlags) initialRange() *model.PriceRange {
	if *f.min == 0 && *f.max == 0 {
		return nil
	}
	return &model.PriceRange{Min: *f.min, Max: *f.max}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		die(err)
	}
	logger.InitializeWithWriter(cfg.Log.Level, "console", os.Stderr)
	return cfg
}

// loadSeries reads --data when given, otherwise fetches --pair/--period.
func loadSeries(ctx context.Context, cfg *config.Config, c common) (string, []model.PricePoint) {
	if *c.dataPath != "" {
		file, err := data.LoadSeriesJSON(*c.dataPath)
		if err != nil {
			die(err)
		}
		pair := file.TokenPair
		if pair == "" {
			pair = *c.pair
		}
		return pair, file.Data
	}

	period, err := data.ParseLookback(*c.period)
	if err != nil {
		die(err)
	}
	series, err := data.NewPriceClient(cfg.PriceClientConfig()).FetchSeries(ctx, *c.pair, period)
	if err != nil {
		die(err)
	}
	return *c.pair, series
}

func poolSource(cfg *config.Config) backtest.PoolSource {
	if cfg.Feeds.PoolBaseURL == "" {
		die(fmt.Errorf("--pool needs feeds.pool_base_url (or POOL_FEED_URL)"))
	}
	registry, err := data.LoadPoolRegistry(cfg.Feeds.PoolRegistryFile)
	if err != nil {
		die(err)
	}
	return data.NewPoolClient(cfg.PoolClientConfig(), registry)
}

func cmdBacktest(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	c := commonFlags(fs)
	rf := strategyFlags(fs)
	strategyName := fs.String("strategy", "concentrated", "concentrated, wide or active")
	outPath := fs.String("out", "", "Optional: write the daily breakdown as CSV")
	asJSON := fs.Bool("json", false, "Print the result as JSON instead of a table")
	_ = fs.Parse(args)

	cfg := loadConfig(*c.cfgPath)
	kind, err := model.ParseStrategyKind(*strategyName)
	if err != nil {
		die(err)
	}
	pair, series := loadSeries(ctx, cfg, c)

	sc := model.StrategyConfig{
		InvestmentAmount:   *rf.investment,
		Kind:               kind,
		TokenPairID:        pair,
		InitialRange:       rf.initialRange(),
		RebalanceThreshold: *rf.threshold,
		StrictRange:        *rf.strict,
	}

	engine := cfg.NewEngine()
	var res *backtest.Result
	if *rf.pool {
		res, err = engine.RunWithPool(ctx, poolSource(cfg), sc, series)
	} else {
		res, err = engine.Run(sc, series)
	}
	if err != nil {
		die(err)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			die(err)
		}
		if err := backtest.WriteBreakdownCSV(*outPath, res.DailyBreakdown); err != nil {
			die(err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(res.DailyBreakdown), *outPath)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			die(err)
		}
		return
	}
	report.Result(os.Stdout, res)
}

func cmdCompare(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	c := commonFlags(fs)
	rf := strategyFlags(fs)
	_ = fs.Parse(args)

	cfg := loadConfig(*c.cfgPath)
	pair, series := loadSeries(ctx, cfg, c)

	engine := cfg.NewEngine()
	if *rf.pool {
		fees, health := backtest.ResolveFeeModel(ctx, poolSource(cfg), pair, *rf.investment, backtest.MeanVolume(series), engine.Fees)
		engine.Fees = fees
		if health != nil && health.Warning != "" {
			fmt.Printf("pool: %s\n", health.Warning)
		}
	}

	outcomes := engine.Compare(ctx, backtest.CompareRequest{
		InvestmentAmount:   *rf.investment,
		TokenPairID:        pair,
		InitialRange:       rf.initialRange(),
		RebalanceThreshold: *rf.threshold,
		StrictRange:        *rf.strict,
	}, series)

	fmt.Printf("\n%s, %d days, $%.2f per strategy\n", pair, len(series), *rf.investment)
	report.Comparison(os.Stdout, outcomes)
	report.Stats(os.Stdout, analysis.ComputeSeriesStats(series))

	if len(backtest.Succeeded(outcomes)) == 0 {
		os.Exit(1)
	}
}

func cmdStats(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	c := commonFlags(fs)
	band := fs.Float64("band", 0.04, "Also report the share of days within +/- band of the first price")
	_ = fs.Parse(args)

	cfg := loadConfig(*c.cfgPath)
	pair, series := loadSeries(ctx, cfg, c)
	if err := model.ValidateSeries(series); err != nil {
		die(err)
	}

	fmt.Printf("\n%s\n", pair)
	report.Stats(os.Stdout, analysis.ComputeSeriesStats(series))

	r := model.BandAround(series[0].Price, *band)
	fmt.Printf("days within [%.4f, %.4f]: %.1f%%\n", r.Min, r.Max, analysis.ShareWithinBand(series, *band))
}

func cmdFetch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	c := commonFlags(fs)
	outPath := fs.String("out", "", "Output JSON path (required)")
	_ = fs.Parse(args)

	if *outPath == "" {
		fmt.Println("--out is required")
		os.Exit(2)
	}
	*c.dataPath = ""

	cfg := loadConfig(*c.cfgPath)
	pair, series := loadSeries(ctx, cfg, c)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		die(err)
	}
	file := &data.SeriesFile{TokenPair: pair, TimePeriod: *c.period, Data: series}
	if err := data.SaveSeriesJSON(*outPath, file); err != nil {
		die(err)
	}
	fmt.Printf("Wrote %d days of %s to %s\n", len(series), pair, *outPath)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
