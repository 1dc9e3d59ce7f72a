package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PoolInfo is a registered DLMM pool.
type PoolInfo struct {
	Pair    string `json:"pair"`
	Address string `json:"address"`
	Base    string `json:"base"`
	Quote   string `json:"quote"`

	// Filled in by pool-health.
	LiquidityUSD float64 `json:"liquidity_usd,omitempty"`
	FeeRate      float64 `json:"fee_rate,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// PoolRegistry is the set of pools backtests can be enriched with.
type PoolRegistry struct {
	UpdatedAt string     `json:"updated_at"` // ISO 8601 timestamp
	Pools     []PoolInfo `json:"pools"`
}

// DefaultPools returns the built-in registry.
func DefaultPools() *PoolRegistry {
	return &PoolRegistry{Pools: []PoolInfo{
		{Pair: "SOL/USDC", Address: "8vZHTVMdYvcPFUoHBEbcFyfSKnjWtvbNgYpXg1aiC2uS", Base: "SOL", Quote: "USDC"},
		{Pair: "UNIBTC/XBTC", Address: "7hc6hXjDPcFnhGBPBGTKUtViFsQuyWw8ph4ePHF1aTYG", Base: "UNIBTC", Quote: "XBTC"},
		{Pair: "USDS/USDC", Address: "DHXKB9fSff4LjubMFieKxaBrvNY6AzXVwaRLk5N2vs87", Base: "USDS", Quote: "USDC"},
		{Pair: "USDC/USDT", Address: "9P3N4QxjMumpTNNdvaNNskXu2t7VHMMXtePQB72kkSAk", Base: "USDC", Quote: "USDT"},
		{Pair: "DZSOL/SOL", Address: "9TxcJsmNPaZz6grcLgQxQ9FChAJxztCL54oj6rekwsdD", Base: "DZSOL", Quote: "SOL"},
		{Pair: "MSTRR/USD1", Address: "BJBShFvoKhUyb4k45Gep1ciQjZYPy3HpMmzxgpxx1bfK", Base: "MSTRR", Quote: "USD1"},
		{Pair: "USD1/USDC", Address: "8yrUdy1XufCuupHgbpptcer1npNkQDVh95sLnc67CfR2", Base: "USD1", Quote: "USDC"},
		{Pair: "LAUNCHCOIN/USDC", Address: "Cy75bt7SkreqcEE481HsKChWJPM7kkS3svVWKRPpS9UK", Base: "LAUNCHCOIN", Quote: "USDC"},
	}}
}

// LoadPoolRegistry loads a registry from a JSON file. An empty path yields
// the built-in registry.
func LoadPoolRegistry(filePath string) (*PoolRegistry, error) {
	if filePath == "" {
		return DefaultPools(), nil
	}
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool registry: %w", err)
	}

	var reg PoolRegistry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse pool registry: %w", err)
	}
	for i := range reg.Pools {
		p := &reg.Pools[i]
		if p.Pair == "" || p.Address == "" {
			return nil, fmt.Errorf("pool registry entry %d: pair and address are required", i)
		}
		if p.Base == "" && p.Quote == "" {
			p.Base, p.Quote, _ = strings.Cut(p.Pair, "/")
		}
	}
	return &reg, nil
}

// SavePoolRegistry saves the registry to a JSON file
func SavePoolRegistry(reg *PoolRegistry, filePath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pool registry: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write pool registry: %w", err)
	}

	return nil
}

// Lookup finds a pool by pair, case-insensitively.
func (r *PoolRegistry) Lookup(pair string) (PoolInfo, bool) {
	if r == nil {
		return PoolInfo{}, false
	}
	for _, p := range r.Pools {
		if strings.EqualFold(p.Pair, strings.TrimSpace(pair)) {
			return p, true
		}
	}
	return PoolInfo{}, false
}

// Pairs returns the registered pairs, sorted.
func (r *PoolRegistry) Pairs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Pools))
	for _, p := range r.Pools {
		out = append(out, p.Pair)
	}
	sort.Strings(out)
	return out
}

// Touch stamps UpdatedAt with now.
func (r *PoolRegistry) Touch(now time.Time) {
	r.UpdatedAt = now.UTC().Format(time.RFC3339)
}
