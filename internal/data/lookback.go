package data

import (
	"fmt"
	"strings"
)

// LookbackPeriod is the history window of a price request.
type LookbackPeriod string

const (
	Lookback7d   LookbackPeriod = "7d"
	Lookback30d  LookbackPeriod = "30d"
	Lookback90d  LookbackPeriod = "90d"
	Lookback180d LookbackPeriod = "180d"
	Lookback1y   LookbackPeriod = "1y"
)

var lookbackDays = map[LookbackPeriod]int{
	Lookback7d:   7,
	Lookback30d:  30,
	Lookback90d:  90,
	Lookback180d: 180,
	Lookback1y:   365,
}

func ParseLookback(s string) (LookbackPeriod, error) {
	p := LookbackPeriod(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lookbackDays[p]; !ok {
		return "", fmt.Errorf("unsupported time period %q (want 7d, 30d, 90d, 180d or 1y)", s)
	}
	return p, nil
}

// Days returns the window length, 0 for an unknown period.
func (p LookbackPeriod) Days() int { return lookbackDays[p] }
