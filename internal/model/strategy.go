package model

import (
	"fmt"
	"math"
	"strings"
)

// StrategyKind selects the range policy of a run. Keep these values stable;
// they appear in API payloads and CSV output.
type StrategyKind string

const (
	Concentrated      StrategyKind = "concentrated"
	Wide              StrategyKind = "wide"
	ActiveRebalancing StrategyKind = "active"
)

// AllKinds is the fixed comparison order.
var AllKinds = []StrategyKind{Concentrated, Wide, ActiveRebalancing}

// ParseStrategyKind accepts the canonical names plus a few aliases used by
// older clients ("active_rebalancing", "rebalance").
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "concentrated":
		return Concentrated, nil
	case "wide":
		return Wide, nil
	case "active", "active_rebalancing", "rebalance", "rebalancing":
		return ActiveRebalancing, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
	}
}

// Rebalances reports whether the kind re-centers its band and pays gas.
func (k StrategyKind) Rebalances() bool { return k == ActiveRebalancing }

func (k StrategyKind) DisplayName() string {
	switch k {
	case Concentrated:
		return "Concentrated"
	case Wide:
		return "Wide Range"
	case ActiveRebalancing:
		return "Active Rebalancing"
	default:
		return string(k)
	}
}

// StrategyConfig is built once per run and never mutated during it.
type StrategyConfig struct {
	InvestmentAmount float64
	Kind             StrategyKind
	TokenPairID      string

	// InitialRange is only read by Concentrated. Nil means "use the default band".
	InitialRange *PriceRange

	// RebalanceThreshold is only read by ActiveRebalancing; must be in (0, 1].
	// Zero means "use the configured default".
	RebalanceThreshold float64

	// StrictRange disables Concentrated auto-correction: an unusable
	// InitialRange fails the run with ErrInvalidRange instead.
	StrictRange bool
}

func (c StrategyConfig) Validate() error {
	if !isPositiveFinite(c.InvestmentAmount) {
		return fmt.Errorf("%w: investment amount must be positive, got %v", ErrInvalidConfig, c.InvestmentAmount)
	}
	switch c.Kind {
	case Concentrated, Wide, ActiveRebalancing:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Kind)
	}
	if c.Kind == ActiveRebalancing && c.RebalanceThreshold != 0 {
		t := c.RebalanceThreshold
		if math.IsNaN(t) || t <= 0 || t > 1 {
			return fmt.Errorf("%w: rebalance threshold must be in (0, 1], got %v", ErrInvalidConfig, t)
		}
	}
	if c.Kind == Concentrated && c.StrictRange {
		if c.InitialRange == nil {
			return fmt.Errorf("%w: strict mode requires a range", ErrInvalidRange)
		}
		if err := c.InitialRange.Validate(); err != nil {
			return err
		}
	}
	return nil
}
