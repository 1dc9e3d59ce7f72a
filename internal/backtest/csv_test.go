package backtest

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlmm-backtest/internal/model"
)

func TestWriteBreakdown(t *testing.T) {
	cfg := cfgFor(model.ActiveRebalancing)
	res, err := New().Run(cfg, series(100, 100, 106, 106))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBreakdown(&buf, res.DailyBreakdown))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "date", rows[0][1])
	assert.Equal(t, "2025-06-03", rows[3][1])
	assert.Equal(t, "true", rows[3][7], "rebalanced column")
	assert.Equal(t, "0.01", rows[3][11], "gas rounded to cents")
}

func TestWriteBreakdownCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	res, err := New().Run(cfgFor(model.Wide), series(10, 11))
	require.NoError(t, err)

	require.NoError(t, WriteBreakdownCSV(path, res.DailyBreakdown))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "cumulative_fees")
}
