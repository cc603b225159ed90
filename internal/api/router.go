package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"tollgate-backend/config"
	"tollgate-backend/internal/mw"
	"tollgate-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, calc TollCalculator, s store.Store) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(calc, s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// POST /api/tolls
		api.POST("/tolls", handler.PostTolls)

		// GET /api/tolls/history
		api.GET("/tolls/history", caching, handler.GetTollHistory)
	}

	return r
}
