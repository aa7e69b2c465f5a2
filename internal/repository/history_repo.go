package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
)

// HistoryFilter narrows the history listing; zero values mean "all".
type HistoryFilter struct {
	ImporterCode  string
	HS6           string
	AppliedSource string
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *model.CalculationHistory) error
	List(ctx context.Context, filter HistoryFilter, page, limit int) ([]model.CalculationHistory, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *model.CalculationHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *historyRepository) List(ctx context.Context, filter HistoryFilter, page, limit int) ([]model.CalculationHistory, int64, error) {
	var entries []model.CalculationHistory
	var total int64

	db := GetDB(ctx, r.db).Model(&model.CalculationHistory{})
	if filter.ImporterCode != "" {
		db = db.Where("importer_code = ?", filter.ImporterCode)
	}
	if filter.HS6 != "" {
		db = db.Where("hs6 = ?", filter.HS6)
	}
	if filter.AppliedSource != "" {
		db = db.Where("applied_source = ?", filter.AppliedSource)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
