package model

import (
	"fmt"
	"math"
)

// PriceRange is the band in which a position earns fees. Min < Max, both > 0.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BandAround returns [center*(1-halfWidth), center*(1+halfWidth)].
func BandAround(center, halfWidth float64) PriceRange {
	return PriceRange{Min: center * (1 - halfWidth), Max: center * (1 + halfWidth)}
}

func (r PriceRange) Validate() error {
	if !isPositiveFinite(r.Min) || !isPositiveFinite(r.Max) {
		return fmt.Errorf("%w: bounds must be positive, got [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("%w: min %v must be below max %v", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Contains is inclusive on both ends.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Width returns Max-Min.
func (r PriceRange) Width() float64 { return r.Max - r.Min }

func isPositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
