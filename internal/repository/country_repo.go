package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
)

type CountryRepository interface {
	Create(ctx context.Context, country *model.Country) error
	Update(ctx context.Context, country *model.Country) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Country, error)
	FindByCode(ctx context.Context, code string) (*model.Country, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Country, int64, error)
	Upsert(ctx context.Context, country *model.Country) error
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) Create(ctx context.Context, country *model.Country) error {
	return GetDB(ctx, r.db).Create(country).Error
}

func (r *countryRepository) Update(ctx context.Context, country *model.Country) error {
	return GetDB(ctx, r.db).Save(country).Error
}

func (r *countryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Country{}).Error
}

func (r *countryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Country, error) {
	var country model.Country
	if err := GetDB(ctx, r.db).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) FindByCode(ctx context.Context, code string) (*model.Country, error) {
	var country model.Country
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context, page, limit int, search string) ([]model.Country, int64, error) {
	var countries []model.Country
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Country{})
	if search != "" {
		db = db.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("code asc").Offset(offset).Limit(limit).Find(&countries).Error; err != nil {
		return nil, 0, err
	}

	return countries, total, nil
}

// Upsert inserts or refreshes a country by its ISO code; used by the
// streaming metadata import.
func (r *countryRepository) Upsert(ctx context.Context, country *model.Country) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "region", "is_active", "updated_at"}),
	}).Create(country).Error
}
