package model

import (
	"fmt"
	"math"
)

// PricePoint is one day of the input series.
//
// Example (as served by the price-data route):
//
//	{ "timestamp": "2025-06-01", "price": 50.0, "volume": 2000000 }
type PricePoint struct {
	Timestamp string  `json:"timestamp"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
}

// Validate checks a single point. Price must be positive and finite, volume
// non-negative and finite.
func (p PricePoint) Validate() error {
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
		return fmt.Errorf("%w: price %v on %q", ErrInvalidPriceData, p.Price, p.Timestamp)
	}
	if math.IsNaN(p.Volume) || math.IsInf(p.Volume, 0) || p.Volume < 0 {
		return fmt.Errorf("%w: volume %v on %q", ErrInvalidVolume, p.Volume, p.Timestamp)
	}
	return nil
}

// ValidateSeries rejects an empty series or any bad point. A single bad day
// fails the whole series; nothing is skipped.
func ValidateSeries(series []PricePoint) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidPriceData)
	}
	for i, p := range series {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", i, err)
		}
	}
	return nil
}
