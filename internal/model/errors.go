package model

import "errors"

// Error taxonomy of the simulation core. Callers wrap these with context and
// match them with errors.Is; upstream feed failures never map onto them.
var (
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidPriceData = errors.New("invalid price data")
	ErrInvalidVolume    = errors.New("invalid volume")
	ErrInvalidRange     = errors.New("invalid price range")
	ErrEmptyBreakdown   = errors.New("empty daily breakdown")
	ErrInvalidConfig    = errors.New("invalid strategy config")
)
