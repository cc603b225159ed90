package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tollgate-backend/internal/store"
)

// GetTollHistory handles the GET /api/tolls/history request. Supported query
// parameters: vehicle, from, to (YYYY-MM-DD), limit.
func (h *Handler) GetTollHistory(c *gin.Context) {
	filter := store.HistoryFilter{
		VehicleType: c.Query("vehicle"),
	}

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, use YYYY-MM-DD"})
			return
		}
		filter.From = from
	}
	if toParam := c.Query("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, use YYYY-MM-DD"})
			return
		}
		filter.To = to
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit'"})
			return
		}
		filter.Limit = limit
	}

	records, err := h.store.ListDailyTolls(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve toll history"})
		return
	}

	c.JSON(http.StatusOK, records)
}
