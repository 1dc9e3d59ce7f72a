package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/logger"
)

// PriceDataHandler serves raw price history.
type PriceDataHandler struct {
	prices PriceSource
}

func NewPriceDataHandler(prices PriceSource) *PriceDataHandler {
	return &PriceDataHandler{prices: prices}
}

// GetPriceData handles GET /api/v1/price-data?tokenPair=&timePeriod=
func (h *PriceDataHandler) GetPriceData(c *gin.Context) {
	var q models.PriceDataQuery
	_ = c.ShouldBindQuery(&q)
	if strings.TrimSpace(q.TokenPair) == "" || strings.TrimSpace(q.TimePeriod) == "" {
		respondError(c, http.StatusBadRequest, "MISSING_PARAM", "Missing tokenPair or timePeriod parameter", nil)
		return
	}

	period, err := data.ParseLookback(q.TimePeriod)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
		return
	}

	series, err := h.prices.FetchSeries(c.Request.Context(), q.TokenPair, period)
	if err == nil && len(series) == 0 {
		err = data.ErrNoData
	}
	if err != nil {
		log := logger.GetForComponent("api")
		log.Warn().Err(err).Str("pair", q.TokenPair).Str("period", q.TimePeriod).Msg("price data request failed")
		status, detail := feedErrorStatus(err)
		respondDetail(c, status, detail)
		return
	}

	c.JSON(http.StatusOK, models.PriceDataResponse{
		Success:    true,
		Data:       series,
		Count:      len(series),
		TokenPair:  q.TokenPair,
		TimePeriod: string(period),
	})
}
