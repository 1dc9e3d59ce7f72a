package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dlmm-backtest/internal/analysis"
	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/logger"
	"dlmm-backtest/internal/model"
)

// PriceSource supplies historical daily series.
type PriceSource interface {
	FetchSeries(ctx context.Context, pair string, period data.LookbackPeriod) ([]model.PricePoint, error)
}

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	engine *backtest.Engine
	prices PriceSource
	pools  backtest.PoolSource // nil disables pool enrichment
	store  *data.TTLCache[string, *backtest.Result]
}

// NewBacktestHandler creates a new backtest handler. Results are kept for
// resultTTL so their breakdown can be fetched later; 0 disables the store.
func NewBacktestHandler(engine *backtest.Engine, prices PriceSource, pools backtest.PoolSource, resultTTL time.Duration) *BacktestHandler {
	return &BacktestHandler{
		engine: engine,
		prices: prices,
		pools:  pools,
		store:  data.NewTTLCache[string, *backtest.Result](resultTTL),
	}
}

// Store exposes the result store so the server can run its janitor.
func (h *BacktestHandler) Store() *data.TTLCache[string, *backtest.Result] { return h.store }

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	kind, err := model.ParseStrategyKind(req.Config.Strategy)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), nil)
		return
	}

	series, ok := h.loadSeries(c, req.TokenPair, req.TimePeriod, req.PriceData)
	if !ok {
		return
	}

	cfg := model.StrategyConfig{
		InvestmentAmount:   req.Config.InvestmentAmount,
		Kind:               kind,
		TokenPairID:        req.TokenPair,
		InitialRange:       toRange(req.Config.Range),
		RebalanceThreshold: req.Config.RebalanceThreshold,
		StrictRange:        req.Config.StrictRange,
	}

	var result *backtest.Result
	if req.Options.UsePoolData && h.pools != nil {
		result, err = h.engine.RunWithPool(c.Request.Context(), h.pools, cfg, series)
	} else {
		result, err = h.engine.Run(cfg, series)
	}
	if err != nil {
		status, detail := runErrorStatus(err)
		respondDetail(c, status, detail)
		return
	}

	c.JSON(http.StatusOK, models.BacktestResponse{
		ID:     h.remember(result),
		Status: "completed",
		Result: toResultModel(result, req.Options.IncludeBreakdown),
	})
}

// GetBreakdown handles GET /api/v1/backtest/:id/breakdown
func (h *BacktestHandler) GetBreakdown(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.store.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "No stored backtest with this id (results expire)", map[string]any{"id": id})
		return
	}
	c.JSON(http.StatusOK, models.BreakdownResponse{
		ID:             id,
		Strategy:       string(result.Strategy),
		TokenPair:      result.TokenPair,
		DailyBreakdown: toBreakdownModel(result.DailyBreakdown),
	})
}

// CompareBacktests handles POST /api/v1/backtest/compare
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	series, ok := h.loadSeries(c, req.TokenPair, req.TimePeriod, req.PriceData)
	if !ok {
		return
	}

	engine := h.engine
	var health *model.PoolHealth
	if req.Options.UsePoolData && h.pools != nil {
		fees, ph := backtest.ResolveFeeModel(c.Request.Context(), h.pools, req.TokenPair, req.InvestmentAmount, backtest.MeanVolume(series), h.engine.Fees)
		copied := *h.engine
		copied.Fees = fees
		engine, health = &copied, ph
	}

	outcomes := engine.Compare(c.Request.Context(), backtest.CompareRequest{
		InvestmentAmount:   req.InvestmentAmount,
		TokenPairID:        req.TokenPair,
		InitialRange:       toRange(req.Range),
		RebalanceThreshold: req.RebalanceThreshold,
		StrictRange:        req.StrictRange,
	}, series)

	resp := models.CompareBacktestResponse{
		TokenPair:   req.TokenPair,
		TimePeriod:  req.TimePeriod,
		Comparison:  make([]models.ComparisonResult, 0, len(outcomes)),
		Ranking:     toRankingModel(analysis.RankByROI(outcomes)),
		SeriesStats: toStatsModel(analysis.ComputeSeriesStats(series)),
	}
	for _, o := range outcomes {
		entry := models.ComparisonResult{Strategy: string(o.Kind)}
		if o.Err != nil {
			_, detail := runErrorStatus(o.Err)
			entry.Error = &detail
		} else {
			o.Result.PoolHealth = health
			entry.ID = h.remember(o.Result)
			r := toResultModel(o.Result, req.Options.IncludeBreakdown)
			entry.Result = &r
		}
		resp.Comparison = append(resp.Comparison, entry)
	}

	c.JSON(http.StatusOK, resp)
}

// loadSeries returns the inline series when given, otherwise fetches it from
// the price feed. On failure the error response is already written.
func (h *BacktestHandler) loadSeries(c *gin.Context, pair, period string, inline []model.PricePoint) ([]model.PricePoint, bool) {
	series := inline
	if len(series) == 0 {
		if strings.TrimSpace(period) == "" {
			respondError(c, http.StatusBadRequest, "MISSING_PARAM", "time_period is required when price_data is not provided", nil)
			return nil, false
		}
		lookback, err := data.ParseLookback(period)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
			return nil, false
		}
		if h.prices == nil {
			respondError(c, http.StatusInternalServerError, "DATA_FETCH_ERROR", "price feed is not configured", nil)
			return nil, false
		}
		series, err = h.prices.FetchSeries(c.Request.Context(), pair, lookback)
		if err != nil {
			log := logger.GetForComponent("api")
			log.Warn().Err(err).Str("pair", pair).Str("period", period).Msg("price fetch failed")
			status, detail := feedErrorStatus(err)
			respondDetail(c, status, detail)
			return nil, false
		}
		if len(series) == 0 {
			status, detail := feedErrorStatus(data.ErrNoData)
			respondDetail(c, status, detail)
			return nil, false
		}
	}

	if err := model.ValidateSeries(series); err != nil {
		status, detail := runErrorStatus(err)
		respondDetail(c, status, detail)
		return nil, false
	}
	return series, true
}

func (h *BacktestHandler) remember(r *backtest.Result) string {
	if h.store == nil {
		return ""
	}
	id := uuid.NewString()
	h.store.Set(id, r)
	return id
}

func toRange(in *models.RangeInput) *model.PriceRange {
	if in == nil {
		return nil
	}
	return &model.PriceRange{Min: in.Min, Max: in.Max}
}
