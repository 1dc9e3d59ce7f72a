package analysis

import (
	"math"
	"sort"

	"dlmm-backtest/internal/model"
)

// SeriesStats summarises a price series independently of any strategy. It
// is reported next to comparisons so a reader can tell a calm period from a
// volatile one.
type SeriesStats struct {
	Start string
	End   string
	Count int

	MinPrice  float64
	MaxPrice  float64
	MeanPrice float64
	P05Price  float64
	P95Price  float64

	// PriceChangePct is last vs first, in percent.
	PriceChangePct float64

	// Volatility is the standard deviation of daily log returns.
	Volatility float64

	// MaxDrawdownPct is the largest peak-to-trough fall, in percent.
	MaxDrawdownPct float64

	MeanVolume  float64
	TotalVolume float64
}

func ComputeSeriesStats(series []model.PricePoint) SeriesStats {
	s := SeriesStats{}
	if len(series) == 0 {
		return s
	}
	s.Count = len(series)
	s.Start = series[0].Timestamp
	s.End = series[len(series)-1].Timestamp

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	peak := series[0].Price
	vals := make([]float64, 0, len(series))
	for _, p := range series {
		v := p.Price
		vals = append(vals, v)
		sum += v
		s.TotalVolume += p.Volume
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak * 100; dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}
	sort.Float64s(vals)
	s.MinPrice = minv
	s.MaxPrice = maxv
	s.MeanPrice = sum / float64(len(vals))
	s.P05Price = percentileSorted(vals, 0.05)
	s.P95Price = percentileSorted(vals, 0.95)
	s.MeanVolume = s.TotalVolume / float64(len(series))

	first := series[0].Price
	if first > 0 {
		s.PriceChangePct = (series[len(series)-1].Price - first) / first * 100
	}
	s.Volatility = logReturnStdDev(series)
	return s
}

// ShareWithinBand returns the percentage of days whose price lies within
// ±halfWidth of the first price. It is the time-in-range a static band of
// that width would have achieved.
func ShareWithinBand(series []model.PricePoint, halfWidth float64) float64 {
	if len(series) == 0 {
		return 0
	}
	band := model.BandAround(series[0].Price, halfWidth)
	n := 0
	for _, p := range series {
		if band.Contains(p.Price) {
			n++
		}
	}
	return float64(n) / float64(len(series)) * 100
}

func logReturnStdDev(series []model.PricePoint) float64 {
	if len(series) < 2 {
		return 0
	}
	rets := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1].Price, series[i].Price
		if prev <= 0 || cur <= 0 {
			continue
		}
		rets = append(rets, math.Log(cur/prev))
	}
	if len(rets) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))
	ss := 0.0
	for _, r := range rets {
		ss += (r - mean) * (r - mean)
	}
	return math.Sqrt(ss / float64(len(rets)-1))
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
