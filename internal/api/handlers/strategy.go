package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/model"
	"dlmm-backtest/internal/strategy"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct {
	params strategy.Params
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(params strategy.Params) *StrategyHandler {
	return &StrategyHandler{params: params}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	p := h.params
	strategies := []models.StrategyInfo{
		{
			Name:        string(model.Concentrated),
			DisplayName: model.Concentrated.DisplayName(),
			Description: "Fixed narrow band. Earns the most per in-range day but sits idle once price leaves the band.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "range",
					Type:        "range",
					Description: "Price band {min, max}. Replaced by a default band around the first price when it is invalid or does not contain it.",
				},
				{
					Name:        "strict_range",
					Type:        "bool",
					Description: "Fail instead of replacing an unusable range",
					Default:     false,
				},
				{
					Name:        "default_band",
					Type:        "float",
					Description: "Half-width of the default band, as a fraction of the first price",
					Default:     p.ConcentratedBand,
				},
			},
		},
		{
			Name:        string(model.Wide),
			DisplayName: model.Wide.DisplayName(),
			Description: "Fixed wide band around the first price. Rarely out of range, lower capital efficiency.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "band",
					Type:        "float",
					Description: "Half-width of the band, as a fraction of the first price",
					Default:     p.WideBand,
				},
			},
		},
		{
			Name:        string(model.ActiveRebalancing),
			DisplayName: model.ActiveRebalancing.DisplayName(),
			Description: "Narrow band re-centered on the current price whenever price drifts past the threshold. Each re-center pays gas.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "rebalance_threshold",
					Type:        "float",
					Description: "Relative deviation from the band center that triggers a re-center, in (0, 1]",
					Default:     p.DefaultRebalanceThreshold,
				},
				{
					Name:        "band",
					Type:        "float",
					Description: "Half-width of the band after each re-center",
					Default:     p.RebalanceBand,
				},
				{
					Name:        "gas_cost_per_rebalance",
					Type:        "float",
					Description: "USD charged per re-center",
					Default:     p.GasCostPerRebalance,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
