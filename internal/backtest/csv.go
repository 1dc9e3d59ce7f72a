package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// WriteBreakdownCSV writes the daily breakdown to path.
func WriteBreakdownCSV(path string, breakdown []DailyResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteBreakdown(f, breakdown)
}

// WriteBreakdown writes the daily breakdown as CSV. USD columns are rounded
// to cents, prices keep six decimals.
func WriteBreakdown(out io.Writer, breakdown []DailyResult) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"date",
		"price",
		"volume",
		"band_min",
		"band_max",
		"in_range",
		"rebalanced",
		"daily_fees",
		"cumulative_fees",
		"impermanent_loss",
		"cumulative_gas_cost",
		"net_pl",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range breakdown {
		row := []string{
			strconv.Itoa(r.Index),
			r.Date,
			fmtPrice(r.Price),
			fmtUSD(r.Volume),
			fmtPrice(r.Band.Min),
			fmtPrice(r.Band.Max),
			strconv.FormatBool(r.InRange),
			strconv.FormatBool(r.Rebalanced),
			fmtUSD(r.DailyFees),
			fmtUSD(r.CumulativeFees),
			fmtUSD(r.ImpermanentLoss),
			fmtUSD(r.CumulativeGasCost),
			fmtUSD(r.NetPL),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtPrice(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtUSD(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}
