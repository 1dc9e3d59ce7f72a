package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/model"
	"dlmm-backtest/internal/strategy"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Fees     FeesConfig     `yaml:"fees"`
	Strategy StrategyConfig `yaml:"strategy"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Compare  CompareConfig  `yaml:"compare"`
}

type ServerConfig struct {
	Port        string        `yaml:"port"`
	Env         string        `yaml:"env"` // development | production
	CORSOrigins []string      `yaml:"cors_origins"`
	ResultTTL   time.Duration `yaml:"result_ttl"` // how long /backtest/:id/breakdown stays fetchable
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

// FeesConfig holds the fee accrual constants.
type FeesConfig struct {
	DailyFeeRate          float64 `yaml:"daily_fee_rate"`
	PoolSizeToVolumeRatio float64 `yaml:"pool_size_to_volume_ratio"`
	ShareCap              float64 `yaml:"share_cap"`
	WideShareFactor       float64 `yaml:"wide_share_factor"`
}

// StrategyConfig holds band half-widths (fractions of price) and the
// rebalance knobs.
type StrategyConfig struct {
	ConcentratedBand          float64  `yaml:"concentrated_band"`
	WideBand                  float64  `yaml:"wide_band"`
	RebalanceBand             float64  `yaml:"rebalance_band"`
	DefaultRebalanceThreshold float64  `yaml:"default_rebalance_threshold"`
	GasCostPerRebalance       *float64 `yaml:"gas_cost_per_rebalance"` // nil means default; 0 is allowed
}

type FeedsConfig struct {
	PriceBaseURL      string        `yaml:"price_base_url"`
	PriceAPIKey       string        `yaml:"price_api_key"`
	PoolBaseURL       string        `yaml:"pool_base_url"` // empty disables pool enrichment
	PoolRegistryFile  string        `yaml:"pool_registry_file"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

type CompareConfig struct {
	Workers int `yaml:"workers"`
}

// Load reads path (optional; empty means defaults only), applies .env and
// environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config with overrides and defaults, but does not
// validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	var c Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&c)
	setDefaults(&c)
	return &c, nil
}

// Default returns a config made only of defaults.
func Default() *Config {
	var c Config
	setDefaults(&c)
	return &c
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("PRICE_FEED_URL"); v != "" {
		c.Feeds.PriceBaseURL = v
	}
	if v := os.Getenv("PRICE_FEED_API_KEY"); v != "" {
		c.Feeds.PriceAPIKey = v
	}
	if v := os.Getenv("POOL_FEED_URL"); v != "" {
		c.Feeds.PoolBaseURL = v
	}
	if v := os.Getenv("POOL_REGISTRY_FILE"); v != "" {
		c.Feeds.PoolRegistryFile = v
	}
	if v := os.Getenv("COMPARE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Compare.Workers = n
		}
	}
}

func setDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.ResultTTL == 0 {
		c.Server.ResultTTL = time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}

	fees := model.DefaultFeeModel()
	if c.Fees.DailyFeeRate == 0 {
		c.Fees.DailyFeeRate = fees.DailyFeeRate
	}
	if c.Fees.PoolSizeToVolumeRatio == 0 {
		c.Fees.PoolSizeToVolumeRatio = fees.PoolSizeToVolumeRatio
	}
	if c.Fees.ShareCap == 0 {
		c.Fees.ShareCap = fees.ShareCap
	}
	if c.Fees.WideShareFactor == 0 {
		c.Fees.WideShareFactor = 1
	}

	params := strategy.DefaultParams()
	if c.Strategy.ConcentratedBand == 0 {
		c.Strategy.ConcentratedBand = params.ConcentratedBand
	}
	if c.Strategy.WideBand == 0 {
		c.Strategy.WideBand = params.WideBand
	}
	if c.Strategy.RebalanceBand == 0 {
		c.Strategy.RebalanceBand = params.RebalanceBand
	}
	if c.Strategy.DefaultRebalanceThreshold == 0 {
		c.Strategy.DefaultRebalanceThreshold = params.DefaultRebalanceThreshold
	}
	if c.Strategy.GasCostPerRebalance == nil {
		gas := params.GasCostPerRebalance
		c.Strategy.GasCostPerRebalance = &gas
	}

	if c.Feeds.RequestsPerSecond == 0 {
		c.Feeds.RequestsPerSecond = 5
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 30 * time.Second
	}
	if c.Compare.Workers == 0 {
		c.Compare.Workers = len(model.AllKinds)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", c.Server.Port)
	}
	if err := c.FeeModel().Validate(); err != nil {
		return fmt.Errorf("fees config invalid: %w", err)
	}
	if c.Fees.WideShareFactor <= 0 || c.Fees.WideShareFactor > 1 {
		return fmt.Errorf("fees.wide_share_factor must be in (0, 1], got %v", c.Fees.WideShareFactor)
	}
	if err := c.StrategyParams().Validate(); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	if c.Feeds.RequestsPerSecond < 0 {
		return fmt.Errorf("feeds.requests_per_second must be >= 0, got %v", c.Feeds.RequestsPerSecond)
	}
	if c.Server.ResultTTL < 0 {
		return fmt.Errorf("server.result_ttl must be >= 0, got %v", c.Server.ResultTTL)
	}
	if c.Feeds.Timeout < 0 || c.Feeds.CacheTTL < 0 {
		return errors.New("feeds.timeout and feeds.cache_ttl must be >= 0")
	}
	if c.Compare.Workers < 0 {
		return fmt.Errorf("compare.workers must be >= 0, got %d", c.Compare.Workers)
	}
	return nil
}

// IsProduction reports whether server.env is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func (c *Config) FeeModel() model.FeeModel {
	return model.FeeModel{
		DailyFeeRate:          c.Fees.DailyFeeRate,
		PoolSizeToVolumeRatio: c.Fees.PoolSizeToVolumeRatio,
		ShareCap:              c.Fees.ShareCap,
		ShareFactor:           1,
	}
}

func (c *Config) StrategyParams() strategy.Params {
	gas := strategy.DefaultParams().GasCostPerRebalance
	if c.Strategy.GasCostPerRebalance != nil {
		gas = *c.Strategy.GasCostPerRebalance
	}
	return strategy.Params{
		ConcentratedBand:          c.Strategy.ConcentratedBand,
		WideBand:                  c.Strategy.WideBand,
		RebalanceBand:             c.Strategy.RebalanceBand,
		DefaultRebalanceThreshold: c.Strategy.DefaultRebalanceThreshold,
		GasCostPerRebalance:       gas,
	}
}

// NewEngine builds a backtest engine from the configured constants.
func (c *Config) NewEngine() *backtest.Engine {
	return &backtest.Engine{
		Params:          c.StrategyParams(),
		Fees:            c.FeeModel(),
		WideShareFactor: c.Fees.WideShareFactor,
		Workers:         c.Compare.Workers,
	}
}

func (c *Config) PriceClientConfig() data.PriceClientConfig {
	return data.PriceClientConfig{
		BaseURL:           c.Feeds.PriceBaseURL,
		APIKey:            c.Feeds.PriceAPIKey,
		RequestsPerSecond: c.Feeds.RequestsPerSecond,
		Timeout:           c.Feeds.Timeout,
		CacheTTL:          c.Feeds.CacheTTL,
	}
}

func (c *Config) PoolClientConfig() data.PoolClientConfig {
	return data.PoolClientConfig{
		BaseURL:           c.Feeds.PoolBaseURL,
		RequestsPerSecond: c.Feeds.RequestsPerSecond,
		Timeout:           c.Feeds.Timeout,
		CacheTTL:          c.Feeds.CacheTTL,
	}
}
