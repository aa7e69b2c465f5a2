package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TariffPreference stores a bilateral preferential ad-valorem rate with
// temporal validity. Requires both importer and exporter to match.
type TariffPreference struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImporterCode string          `gorm:"type:varchar(3);not null;index:idx_pref_key" json:"importer_code"`
	ExporterCode string          `gorm:"type:varchar(3);not null;index:idx_pref_key" json:"exporter_code"`
	HS6          string          `gorm:"column:hs6;type:varchar(6);not null;index:idx_pref_key" json:"hs6"`
	RatePct      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate_pct"`    // ad valorem, e.g. 10 = 10%
	ValidFrom    time.Time       `gorm:"type:date;not null;index" json:"valid_from"`
	ValidTo      *time.Time      `gorm:"type:date;index" json:"valid_to"` // nullable = open-ended
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TariffSuspension stores a temporary government override of the standard
// rate. Only rows with is_active set are eligible for resolution.
type TariffSuspension struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImporterCode string          `gorm:"type:varchar(3);not null;index:idx_susp_key" json:"importer_code"`
	HS6          string          `gorm:"column:hs6;type:varchar(6);not null;index:idx_susp_key" json:"hs6"`
	RatePct      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate_pct"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	Note         string          `gorm:"type:text" json:"note"` // why the standard rate is suspended
	ValidFrom    time.Time       `gorm:"type:date;not null;index" json:"valid_from"`
	ValidTo      *time.Time      `gorm:"type:date;index" json:"valid_to"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TariffMeasure stores the standing MFN rate. At least one of the two rate
// columns must be present; is_compound combines both.
type TariffMeasure struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImporterCode  string           `gorm:"type:varchar(3);not null;index:idx_measure_key" json:"importer_code"`
	HS6           string           `gorm:"column:hs6;type:varchar(6);not null;index:idx_measure_key" json:"hs6"`
	AdValoremPct  *decimal.Decimal `gorm:"type:decimal(10,4)" json:"ad_valorem_pct"`
	SpecificPerKg *decimal.Decimal `gorm:"type:decimal(10,4)" json:"specific_per_kg"`
	IsCompound    bool             `gorm:"default:false" json:"is_compound"`
	ValidFrom     time.Time        `gorm:"type:date;not null;index" json:"valid_from"`
	ValidTo       *time.Time       `gorm:"type:date;index" json:"valid_to"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
