package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tollgate-backend/internal/model"
	"tollgate-backend/internal/toll"
)

// maxHistoryLimit bounds one audit-trail page; requests above it are clamped.
const maxHistoryLimit = 500

// Store defines the persistence operations for the toll audit trail.
type Store interface {
	RecordDailyTolls(ctx context.Context, vehicle toll.VehicleClass, totals []toll.DailyTotal) error
	ListDailyTolls(ctx context.Context, filter HistoryFilter) ([]model.DailyTollRecord, error)
}

// HistoryFilter narrows an audit-trail query. Zero values mean "no filter".
type HistoryFilter struct {
	VehicleType string
	From        time.Time
	To          time.Time
	Limit       int
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordDailyTolls writes one audit row per daily total, atomically.
func (s *gormStore) RecordDailyTolls(ctx context.Context, vehicle toll.VehicleClass, totals []toll.DailyTotal) error {
	if len(totals) == 0 {
		return nil
	}

	records := make([]model.DailyTollRecord, 0, len(totals))
	for _, total := range totals {
		records = append(records, model.DailyTollRecord{
			VehicleType: string(vehicle),
			TollDate:    total.Date,
			FeeSek:      total.FeeSek,
		})
	}

	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("failed to record daily tolls: %w", err)
	}
	return nil
}

// ListDailyTolls returns audit records, newest first.
func (s *gormStore) ListDailyTolls(ctx context.Context, filter HistoryFilter) ([]model.DailyTollRecord, error) {
	query := s.db.WithContext(ctx).Model(&model.DailyTollRecord{})

	if filter.VehicleType != "" {
		query = query.Where("vehicle_type = ?", filter.VehicleType)
	}
	if !filter.From.IsZero() {
		query = query.Where("toll_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("toll_date <= ?", filter.To)
	}

	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = 100
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	var records []model.DailyTollRecord
	if err := query.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list daily tolls: %w", err)
	}
	return records, nil
}
