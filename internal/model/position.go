package model

import (
	"fmt"
	"math"
)

// Position is the 50/50 split taken at inception. Only the band moves during
// a run; these holdings never do.
// Units:
// - TokenAmount: base token units
// - QuoteAmount: quote currency (USD)
// - InitialPrice: quote per token on day 0
type Position struct {
	InitialPrice float64
	TokenAmount  float64
	QuoteAmount  float64
}

// NewPosition splits investment evenly at initialPrice.
func NewPosition(investment, initialPrice float64) (Position, error) {
	if !isPositiveFinite(initialPrice) {
		return Position{}, fmt.Errorf("%w: initial price %v", ErrInvalidPrice, initialPrice)
	}
	if !isPositiveFinite(investment) {
		return Position{}, fmt.Errorf("%w: investment amount %v", ErrInvalidConfig, investment)
	}
	return Position{
		InitialPrice: initialPrice,
		TokenAmount:  investment / 2 / initialPrice,
		QuoteAmount:  investment / 2,
	}, nil
}

// ImpermanentLossAt is ImpermanentLoss evaluated for this position.
func (p Position) ImpermanentLossAt(price float64) (float64, error) {
	return ImpermanentLoss(p.InitialPrice, price, p.TokenAmount, p.QuoteAmount)
}

// ImpermanentLoss returns hold value minus constant-product LP value at
// currentPrice, for a position that held tokenAmount and quoteAmount at
// initialPrice:
//
//	hold = token*current + quote
//	lp   = 2*sqrt(current/initial)*sqrt(token*initial*quote)
//
// hold >= lp always; the clamp only absorbs float overshoot.
func ImpermanentLoss(initialPrice, currentPrice, tokenAmount, quoteAmount float64) (float64, error) {
	if !isPositiveFinite(initialPrice) {
		return 0, fmt.Errorf("%w: initial price %v", ErrInvalidPrice, initialPrice)
	}
	if !isPositiveFinite(currentPrice) {
		return 0, fmt.Errorf("%w: current price %v", ErrInvalidPrice, currentPrice)
	}
	ratio := currentPrice / initialPrice
	holdValue := tokenAmount*currentPrice + quoteAmount
	lpValue := 2 * math.Sqrt(ratio) * math.Sqrt(tokenAmount*initialPrice*quoteAmount)
	return math.Max(0, holdValue-lpValue), nil
}
