package data

import (
	"encoding/json"
	"fmt"
	"os"

	"dlmm-backtest/internal/model"
)

// SeriesFile is the on-disk form of a price series. A bare JSON array of
// points is accepted too.
type SeriesFile struct {
	TokenPair  string             `json:"token_pair"`
	TimePeriod string             `json:"time_period,omitempty"`
	Data       []model.PricePoint `json:"data"`
}

func LoadSeriesJSON(path string) (*SeriesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file SeriesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		var points []model.PricePoint
		if err2 := json.Unmarshal(raw, &points); err2 != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		file.Data = points
	}
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoData)
	}
	return &file, nil
}

func SaveSeriesJSON(path string, file *SeriesFile) error {
	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
