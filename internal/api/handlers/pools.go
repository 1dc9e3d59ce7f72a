package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/data"
)

// PoolHandler lists the registered pools.
type PoolHandler struct {
	registry *data.PoolRegistry
}

func NewPoolHandler(registry *data.PoolRegistry) *PoolHandler {
	return &PoolHandler{registry: registry}
}

// ListPools handles GET /api/v1/pools
func (h *PoolHandler) ListPools(c *gin.Context) {
	pools := []models.PoolInfo{}
	if h.registry != nil {
		for _, p := range h.registry.Pools {
			pools = append(pools, models.PoolInfo{
				Pair:         p.Pair,
				Address:      p.Address,
				Base:         p.Base,
				Quote:        p.Quote,
				LiquidityUSD: p.LiquidityUSD,
				FeeRate:      p.FeeRate,
				Active:       p.Active,
			})
		}
	}
	updated := ""
	if h.registry != nil {
		updated = h.registry.UpdatedAt
	}
	c.JSON(http.StatusOK, gin.H{"pools": pools, "count": len(pools), "updated_at": updated})
}
