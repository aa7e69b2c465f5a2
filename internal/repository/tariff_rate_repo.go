package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
)

// validWindow is the shared temporal predicate: a record applies to date D
// iff valid_from <= D and (valid_to is null or valid_to >= D). Applied here
// so the engine never has to re-filter.
const validWindow = "valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)"

// TariffRateRepository is the single store for the three rate-record
// families. Its Find* methods satisfy tariff.RateRecordGateway; the rest
// backs the administrative CRUD.
type TariffRateRepository interface {
	tariff.RateRecordGateway

	CreatePreference(ctx context.Context, rec *model.TariffPreference) error
	UpdatePreference(ctx context.Context, rec *model.TariffPreference) error
	DeletePreference(ctx context.Context, id uuid.UUID) error
	FindPreferenceByID(ctx context.Context, id uuid.UUID) (*model.TariffPreference, error)
	ListPreferences(ctx context.Context, page, limit int) ([]model.TariffPreference, int64, error)
	CountOverlappingPreferences(ctx context.Context, importer, exporter, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)

	CreateSuspension(ctx context.Context, rec *model.TariffSuspension) error
	UpdateSuspension(ctx context.Context, rec *model.TariffSuspension) error
	DeleteSuspension(ctx context.Context, id uuid.UUID) error
	FindSuspensionByID(ctx context.Context, id uuid.UUID) (*model.TariffSuspension, error)
	ListSuspensions(ctx context.Context, page, limit int) ([]model.TariffSuspension, int64, error)
	CountOverlappingSuspensions(ctx context.Context, importer, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)

	CreateMeasure(ctx context.Context, rec *model.TariffMeasure) error
	UpdateMeasure(ctx context.Context, rec *model.TariffMeasure) error
	DeleteMeasure(ctx context.Context, id uuid.UUID) error
	FindMeasureByID(ctx context.Context, id uuid.UUID) (*model.TariffMeasure, error)
	ListMeasures(ctx context.Context, page, limit int) ([]model.TariffMeasure, int64, error)
	CountOverlappingMeasures(ctx context.Context, importer, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)
}

type tariffRateRepository struct {
	db *gorm.DB
}

func NewTariffRateRepository(db *gorm.DB) TariffRateRepository {
	return &tariffRateRepository{db: db}
}

// --- tariff.RateRecordGateway ---

func (r *tariffRateRepository) FindPreference(ctx context.Context, importer, exporter, hs6 string, date time.Time) (*tariff.PreferenceRecord, error) {
	var rec model.TariffPreference
	err := GetDB(ctx, r.db).
		Where("importer_code = ? AND exporter_code = ? AND hs6 = ?", importer, exporter, hs6).
		Where(validWindow, date, date).
		Order("valid_from DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no record — not an error
		}
		return nil, err
	}

	return &tariff.PreferenceRecord{
		ImporterCode: rec.ImporterCode,
		ExporterCode: rec.ExporterCode,
		HS6:          rec.HS6,
		ValidFrom:    rec.ValidFrom,
		ValidTo:      rec.ValidTo,
		RatePct:      rec.RatePct,
	}, nil
}

func (r *tariffRateRepository) FindActiveSuspension(ctx context.Context, importer, hs6 string, date time.Time) (*tariff.SuspensionRecord, error) {
	var rec model.TariffSuspension
	err := GetDB(ctx, r.db).
		Where("importer_code = ? AND hs6 = ? AND is_active = ?", importer, hs6, true).
		Where(validWindow, date, date).
		Order("valid_from DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &tariff.SuspensionRecord{
		ImporterCode: rec.ImporterCode,
		HS6:          rec.HS6,
		ValidFrom:    rec.ValidFrom,
		ValidTo:      rec.ValidTo,
		Active:       rec.IsActive,
		Note:         rec.Note,
		RatePct:      rec.RatePct,
	}, nil
}

func (r *tariffRateRepository) FindMeasure(ctx context.Context, importer, hs6 string, date time.Time) (*tariff.MeasureRecord, error) {
	var rec model.TariffMeasure
	err := GetDB(ctx, r.db).
		Where("importer_code = ? AND hs6 = ?", importer, hs6).
		Where(validWindow, date, date).
		Order("valid_from DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &tariff.MeasureRecord{
		ImporterCode:  rec.ImporterCode,
		HS6:           rec.HS6,
		ValidFrom:     rec.ValidFrom,
		ValidTo:       rec.ValidTo,
		AdValoremPct:  rec.AdValoremPct,
		SpecificPerKg: rec.SpecificPerKg,
		Compound:      rec.IsCompound,
	}, nil
}

// --- preference CRUD ---

func (r *tariffRateRepository) CreatePreference(ctx context.Context, rec *model.TariffPreference) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *tariffRateRepository) UpdatePreference(ctx context.Context, rec *model.TariffPreference) error {
	return GetDB(ctx, r.db).Save(rec).Error
}

func (r *tariffRateRepository) DeletePreference(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TariffPreference{}).Error
}

func (r *tariffRateRepository) FindPreferenceByID(ctx context.Context, id uuid.UUID) (*model.TariffPreference, error) {
	var rec model.TariffPreference
	if err := GetDB(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *tariffRateRepository) ListPreferences(ctx context.Context, page, limit int) ([]model.TariffPreference, int64, error) {
	var recs []model.TariffPreference
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TariffPreference{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("valid_from desc").Offset(offset).Limit(limit).Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *tariffRateRepository) CountOverlappingPreferences(ctx context.Context, importer, exporter, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	query := GetDB(ctx, r.db).Model(&model.TariffPreference{}).
		Where("importer_code = ? AND exporter_code = ? AND hs6 = ?", importer, exporter, hs6)
	return countOverlap(query, from, to, excludeID)
}

// --- suspension CRUD ---

func (r *tariffRateRepository) CreateSuspension(ctx context.Context, rec *model.TariffSuspension) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *tariffRateRepository) UpdateSuspension(ctx context.Context, rec *model.TariffSuspension) error {
	return GetDB(ctx, r.db).Save(rec).Error
}

func (r *tariffRateRepository) DeleteSuspension(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TariffSuspension{}).Error
}

func (r *tariffRateRepository) FindSuspensionByID(ctx context.Context, id uuid.UUID) (*model.TariffSuspension, error) {
	var rec model.TariffSuspension
	if err := GetDB(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *tariffRateRepository) ListSuspensions(ctx context.Context, page, limit int) ([]model.TariffSuspension, int64, error) {
	var recs []model.TariffSuspension
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TariffSuspension{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("valid_from desc").Offset(offset).Limit(limit).Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *tariffRateRepository) CountOverlappingSuspensions(ctx context.Context, importer, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	query := GetDB(ctx, r.db).Model(&model.TariffSuspension{}).
		Where("importer_code = ? AND hs6 = ?", importer, hs6)
	return countOverlap(query, from, to, excludeID)
}

// --- measure CRUD ---

func (r *tariffRateRepository) CreateMeasure(ctx context.Context, rec *model.TariffMeasure) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *tariffRateRepository) UpdateMeasure(ctx context.Context, rec *model.TariffMeasure) error {
	return GetDB(ctx, r.db).Save(rec).Error
}

func (r *tariffRateRepository) DeleteMeasure(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TariffMeasure{}).Error
}

func (r *tariffRateRepository) FindMeasureByID(ctx context.Context, id uuid.UUID) (*model.TariffMeasure, error) {
	var rec model.TariffMeasure
	if err := GetDB(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *tariffRateRepository) ListMeasures(ctx context.Context, page, limit int) ([]model.TariffMeasure, int64, error) {
	var recs []model.TariffMeasure
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TariffMeasure{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("valid_from desc").Offset(offset).Limit(limit).Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *tariffRateRepository) CountOverlappingMeasures(ctx context.Context, importer, hs6 string, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	query := GetDB(ctx, r.db).Model(&model.TariffMeasure{}).
		Where("importer_code = ? AND hs6 = ?", importer, hs6)
	return countOverlap(query, from, to, excludeID)
}

// countOverlap finishes an overlap count against a key-filtered query.
// Two windows overlap when existing.from <= new.to (if any) and
// existing.to is open or >= new.from.
func countOverlap(query *gorm.DB, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if to != nil {
		query = query.Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", *to, from)
	} else {
		query = query.Where("(valid_to IS NULL OR valid_to >= ?)", from)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
