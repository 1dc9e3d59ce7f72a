package analysis

import (
	"sort"

	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/model"
)

type RankedOutcome struct {
	Rank        int
	Kind        model.StrategyKind
	ROI         float64
	NetProfit   float64
	TimeInRange float64
	Err         error
}

// RankByROI sorts outcomes descending by ROI. Failed runs keep a slot at the
// bottom, in their original order. Ties keep comparison order.
func RankByROI(outcomes []backtest.Outcome) []RankedOutcome {
	out := make([]RankedOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		r := RankedOutcome{Kind: o.Kind, Err: o.Err}
		if o.Err == nil && o.Result != nil {
			r.ROI = o.Result.ROI
			r.NetProfit = o.Result.NetProfit
			r.TimeInRange = o.Result.TimeInRange
		} else if r.Err == nil {
			r.Err = errMissingResult
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Err == nil) != (out[j].Err == nil) {
			return out[i].Err == nil
		}
		if out[i].Err != nil {
			return false
		}
		return out[i].ROI > out[j].ROI
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
