package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"dlmm-backtest/internal/config"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

// update-pools refreshes liquidity, fee rate and activity of every
// registered pool from the pool feed and writes the registry back.
func main() {
	var (
		cfgPath    = flag.String("config", "", "Path to YAML config (optional)")
		seedFile   = flag.String("seed", "", "Registry to start from (default: feeds.pool_registry_file, else built-in pools)")
		outputPath = flag.String("output", "", "Output file path (default: the seed path, else ./data/pools.json)")
		workers    = flag.Int("workers", 4, "Concurrent pool requests")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	log := logger.GetForComponent("update_pools")

	if cfg.Feeds.PoolBaseURL == "" {
		log.Fatal().Msg("feeds.pool_base_url (or POOL_FEED_URL) is required")
	}

	seed := *seedFile
	if seed == "" {
		seed = cfg.Feeds.PoolRegistryFile
	}
	registry, err := data.LoadPoolRegistry(seed)
	if err != nil {
		log.Fatal().Err(err).Str("path", seed).Msg("failed to load pool registry")
	}
	if *outputPath == "" {
		*outputPath = seed
	}
	if *outputPath == "" {
		*outputPath = "data/pools.json"
	}

	client := data.NewPoolClient(cfg.PoolClientConfig(), registry)
	ctx := context.Background()

	// The client reads the registry while requests are in flight, so results
	// are applied only after all of them finish.
	snaps := make([]*model.PoolSnapshot, len(registry.Pools))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))
	for i := range registry.Pools {
		i := i
		g.Go(func() error {
			info := registry.Pools[i]
			snap, err := client.PoolSnapshot(gctx, info.Pair)
			if err != nil {
				// One bad pool shouldn't stop the refresh.
				log.Warn().Err(err).Str("pair", info.Pair).Msg("pool refresh failed")
				return nil
			}
			snaps[i] = &snap
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, snap := range snaps {
		if snap == nil {
			failed++
			continue
		}
		active := snap.IsActive()
		registry.Pools[i].LiquidityUSD = snap.TotalLiquidity
		registry.Pools[i].FeeRate = snap.FeeRate
		registry.Pools[i].Active = &active
		log.Info().
			Str("pair", registry.Pools[i].Pair).
			Float64("liquidity_usd", snap.TotalLiquidity).
			Float64("fee_rate", snap.FeeRate).
			Bool("active", active).
			Msg("pool refreshed")
	}

	registry.Touch(time.Now())
	if err := data.SavePoolRegistry(registry, *outputPath); err != nil {
		log.Fatal().Err(err).Str("path", *outputPath).Msg("failed to save registry")
	}

	fmt.Printf("Refreshed %d/%d pools, saved to %s\n", len(registry.Pools)-failed, len(registry.Pools), *outputPath)
}
