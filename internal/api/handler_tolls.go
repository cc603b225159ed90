package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tollgate-backend/internal/toll"
)

// tollsRequest is the body of POST /api/tolls.
type tollsRequest struct {
	VehicleType string      `json:"vehicleType" binding:"required"`
	TollTimes   []time.Time `json:"tollTimes"`
}

// dailyTollResponse is one per-day entry of the calculation response.
type dailyTollResponse struct {
	Date   string `json:"date"`
	FeeSek int64  `json:"feeSek"`
}

// PostTolls handles the POST /api/tolls request.
func (h *Handler) PostTolls(c *gin.Context) {
	var req tollsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	vehicle, err := toll.ParseVehicleClass(req.VehicleType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.TollTimes) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "at least one toll time must be provided"})
		return
	}
	now := time.Now()
	for _, t := range req.TollTimes {
		if t.After(now) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "toll times must not be in the future"})
			return
		}
	}

	totals, err := h.calc.ComputeDailyTolls(c.Request.Context(), vehicle, req.TollTimes)
	if err != nil {
		if errors.Is(err, toll.ErrNoTollTimes) || errors.Is(err, toll.ErrNoTollsFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("toll calculation failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate toll fees"})
		return
	}

	// Audit failures must not fail the request; the computed result stands.
	if h.store != nil && len(totals) > 0 {
		if err := h.store.RecordDailyTolls(c.Request.Context(), vehicle, totals); err != nil {
			log.Printf("failed to record daily tolls for audit: %v", err)
		}
	}

	response := make([]dailyTollResponse, 0, len(totals))
	for _, total := range totals {
		response = append(response, dailyTollResponse{
			Date:   total.Date.Format("2006-01-02"),
			FeeSek: total.FeeSek,
		})
	}
	c.JSON(http.StatusOK, response)
}
