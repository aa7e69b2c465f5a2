package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
)

// --- DTOs ---

type ProductVolume struct {
	HS6          string  `json:"hs6"`
	Calculations int64   `json:"calculations"`
	TotalDuty    float64 `json:"total_duty"`
}

type ImporterVolume struct {
	ImporterCode string  `json:"importer_code"`
	Calculations int64   `json:"calculations"`
	TotalDuty    float64 `json:"total_duty"`
}

type StatisticsResponse struct {
	TimeRangeStartDate time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time        `json:"time_range_end_date"`
	TotalCalculations  int64            `json:"total_calculations"`
	TotalTradeValue    float64          `json:"total_trade_value"`
	TotalDuty          float64          `json:"total_duty"`
	BySource           map[string]int64 `json:"by_source"` // preference / suspension / measure counts
	TopProducts        []ProductVolume  `json:"top_products"`
	TopImporters       []ImporterVolume `json:"top_importers"`
}

// --- Interface ---

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates calculation history inside the given time range.
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (StatisticsResponse, error) {
	response := StatisticsResponse{
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
		BySource:           map[string]int64{},
	}

	inRange := s.db.WithContext(ctx).Model(&model.CalculationHistory{}).
		Where("created_at >= ? AND created_at <= ?", startDate, endDate)

	if err := inRange.Session(&gorm.Session{}).Count(&response.TotalCalculations).Error; err != nil {
		return StatisticsResponse{}, err
	}

	var totals struct {
		TradeValue float64
		Duty       float64
	}
	s.db.WithContext(ctx).Model(&model.CalculationHistory{}).
		Select("COALESCE(SUM(trade_value), 0) as trade_value, COALESCE(SUM(duty), 0) as duty").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Scan(&totals)
	response.TotalTradeValue = totals.TradeValue
	response.TotalDuty = totals.Duty

	var sourceCounts []struct {
		AppliedSource string
		Count         int64
	}
	s.db.WithContext(ctx).Model(&model.CalculationHistory{}).
		Select("applied_source, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Group("applied_source").
		Scan(&sourceCounts)
	for _, c := range sourceCounts {
		response.BySource[c.AppliedSource] = c.Count
	}

	var topProducts []ProductVolume
	s.db.WithContext(ctx).Model(&model.CalculationHistory{}).
		Select("hs6, COUNT(*) as calculations, COALESCE(SUM(duty), 0) as total_duty").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Group("hs6").
		Order("calculations DESC").
		Limit(5).
		Scan(&topProducts)
	response.TopProducts = topProducts

	var topImporters []ImporterVolume
	s.db.WithContext(ctx).Model(&model.CalculationHistory{}).
		Select("importer_code, COUNT(*) as calculations, COALESCE(SUM(duty), 0) as total_duty").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Group("importer_code").
		Order("calculations DESC").
		Limit(5).
		Scan(&topImporters)
	response.TopImporters = topImporters

	return response, nil
}
