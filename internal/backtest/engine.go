package backtest

import (
	"fmt"

	"dlmm-backtest/internal/model"
	"dlmm-backtest/internal/strategy"
)

// Engine runs single-strategy simulations. The zero value is not usable; use
// New or fill every field.
type Engine struct {
	Params strategy.Params
	Fees   model.FeeModel

	// WideShareFactor scales the liquidity share of Wide runs.
	WideShareFactor float64

	// Workers bounds Compare's concurrency. <= 0 runs all kinds at once.
	Workers int
}

func New() *Engine {
	return &Engine{
		Params:          strategy.DefaultParams(),
		Fees:            model.DefaultFeeModel(),
		WideShareFactor: 1,
	}
}

// State is the simulation state threaded through the fold. Each Step returns
// a new State; nothing is shared between runs.
type State struct {
	Range          strategy.RangeState
	CumulativeFees float64
}

// Simulation is one prepared run: config, policy, fee model and the position
// fixed at day 0.
type Simulation struct {
	Config   model.StrategyConfig
	Policy   strategy.Policy
	Fees     model.FeeModel
	Position model.Position
}

// Start validates cfg against the first price point and returns the prepared
// simulation with its initial state.
func (e *Engine) Start(cfg model.StrategyConfig, first model.PricePoint) (*Simulation, State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, State{}, err
	}
	if err := e.Params.Validate(); err != nil {
		return nil, State{}, err
	}
	fees := e.Fees
	if cfg.Kind == model.Wide && e.WideShareFactor > 0 {
		fees = fees.WithShareFactor(e.WideShareFactor)
	}
	if err := fees.Validate(); err != nil {
		return nil, State{}, err
	}

	policy, err := strategy.New(cfg, e.Params)
	if err != nil {
		return nil, State{}, err
	}
	rs, err := policy.Init(first)
	if err != nil {
		return nil, State{}, err
	}
	pos, err := model.NewPosition(cfg.InvestmentAmount, first.Price)
	if err != nil {
		return nil, State{}, err
	}

	sim := &Simulation{Config: cfg, Policy: policy, Fees: fees, Position: pos}
	return sim, State{Range: rs}, nil
}

// Step advances the simulation by one day.
func (s *Simulation) Step(st State, idx int, p model.PricePoint) (State, DailyResult, error) {
	if err := p.Validate(); err != nil {
		return st, DailyResult{}, fmt.Errorf("day %d: %w", idx, err)
	}

	st.Range = s.Policy.Advance(st.Range, strategy.Context{Index: idx, Point: p})
	inRange := st.Range.Band.Contains(p.Price)

	daily := 0.0
	if inRange {
		fee, err := s.Fees.DailyFee(s.Config.InvestmentAmount, p.Volume)
		if err != nil {
			return st, DailyResult{}, fmt.Errorf("day %d: %w", idx, err)
		}
		daily = fee
	}
	st.CumulativeFees += daily

	il, err := s.Position.ImpermanentLossAt(p.Price)
	if err != nil {
		return st, DailyResult{}, fmt.Errorf("day %d: %w", idx, err)
	}

	gas := 0.0
	if s.Config.Kind.Rebalances() {
		gas = st.Range.GasCost
	}

	return st, DailyResult{
		Index: idx,
		Date:  p.Timestamp,

		Price:  p.Price,
		Volume: p.Volume,

		Band:       st.Range.Band,
		InRange:    inRange,
		Rebalanced: st.Range.Rebalanced,

		DailyFees:      daily,
		CumulativeFees: st.CumulativeFees,

		ImpermanentLoss:   il,
		CumulativeGasCost: gas,

		NetPL: st.CumulativeFees - il - gas,
	}, nil
}

// Run executes a backtest of cfg over series. The whole series is validated
// before day 0; any bad point fails the run and no partial breakdown is
// returned.
func (e *Engine) Run(cfg model.StrategyConfig, series []model.PricePoint) (*Result, error) {
	if err := model.ValidateSeries(series); err != nil {
		return nil, err
	}

	sim, st, err := e.Start(cfg, series[0])
	if err != nil {
		return nil, err
	}

	breakdown := make([]DailyResult, 0, len(series))
	for idx, p := range series {
		var row DailyResult
		st, row, err = sim.Step(st, idx, p)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, row)
	}

	res, err := Aggregate(cfg, breakdown)
	if err != nil {
		return nil, err
	}
	res.AppliedRange = breakdown[0].Band
	res.RangeAutoCorrected = st.Range.AutoCorrected
	if cfg.InitialRange != nil && cfg.Kind == model.Concentrated {
		r := *cfg.InitialRange
		res.RequestedRange = &r
	}
	return res, nil
}
