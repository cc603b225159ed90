package api

import (
	"context"
	"time"

	"tollgate-backend/internal/store"
	"tollgate-backend/internal/toll"
)

// TollCalculator is the calculation entry point the HTTP layer depends on.
type TollCalculator interface {
	ComputeDailyTolls(ctx context.Context, vehicle toll.VehicleClass, tollTimes []time.Time) ([]toll.DailyTotal, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	calc  TollCalculator
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(calc TollCalculator, s store.Store) *Handler {
	return &Handler{
		calc:  calc,
		store: s,
	}
}
