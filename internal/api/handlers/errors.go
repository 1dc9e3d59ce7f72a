package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dlmm-backtest/internal/api/models"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/model"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]any) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// feedErrorStatus maps a price/pool feed failure onto an HTTP status and
// error detail.
func feedErrorStatus(err error) (int, models.ErrorDetail) {
	switch {
	case errors.Is(err, data.ErrNoData):
		return http.StatusNotFound, models.ErrorDetail{Code: "NO_DATA", Message: "No price data available for this pair and period"}
	case errors.Is(err, data.ErrUnknownPair):
		return http.StatusBadRequest, models.ErrorDetail{Code: "UNKNOWN_PAIR", Message: err.Error()}
	}
	var fe *data.FeedError
	if errors.As(err, &fe) {
		return http.StatusInternalServerError, models.ErrorDetail{
			Code:    "DATA_FETCH_ERROR",
			Message: fe.Message,
			Details: map[string]any{
				"upstream_code": fe.Code,
				"status_code":   fe.StatusCode,
				"retry_after":   fe.RetryAfter,
			},
		}
	}
	return http.StatusInternalServerError, models.ErrorDetail{Code: "DATA_FETCH_ERROR", Message: err.Error()}
}

// runErrorStatus maps a simulation failure. Validation errors are the
// caller's input; anything else is ours.
func runErrorStatus(err error) (int, models.ErrorDetail) {
	switch {
	case errors.Is(err, model.ErrInvalidPriceData),
		errors.Is(err, model.ErrInvalidPrice),
		errors.Is(err, model.ErrInvalidVolume):
		return http.StatusBadRequest, models.ErrorDetail{Code: "INVALID_PRICE_DATA", Message: err.Error()}
	case errors.Is(err, model.ErrInvalidRange):
		return http.StatusBadRequest, models.ErrorDetail{Code: "INVALID_RANGE", Message: err.Error()}
	case errors.Is(err, model.ErrInvalidConfig):
		return http.StatusBadRequest, models.ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()}
	default:
		return http.StatusInternalServerError, models.ErrorDetail{Code: "BACKTEST_ERROR", Message: err.Error()}
	}
}

func respondDetail(c *gin.Context, status int, detail models.ErrorDetail) {
	c.JSON(status, models.ErrorResponse{Error: detail})
}
