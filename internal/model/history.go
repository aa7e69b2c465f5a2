package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculationHistory records the outcome of a successful duty calculation.
// Written best-effort after the engine finishes; feeds the statistics views.
type CalculationHistory struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user_id"` // nullable for unauthenticated calls
	ImporterCode    string          `gorm:"type:varchar(3);not null;index" json:"importer_code"`
	ExporterCode    string          `gorm:"type:varchar(3)" json:"exporter_code"`
	HS6             string          `gorm:"column:hs6;type:varchar(6);not null;index" json:"hs6"`
	TransactionDate time.Time       `gorm:"type:date;not null" json:"transaction_date"`
	TradeValue      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"trade_value"`
	Duty            decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"duty"`
	FinalTradeValue decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"final_trade_value"`
	AppliedSource   string          `gorm:"type:varchar(20);not null;index" json:"applied_source"` // preference, suspension, measure
	DutyRule        string          `gorm:"type:varchar(20);not null" json:"duty_rule"`            // AD_VALOREM, SPECIFIC, COMPOUND
	ValuationBasis  string          `gorm:"type:varchar(3);not null" json:"valuation_basis"`       // CIF or FOB (applied)
	TotalLandedCost decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_landed_cost"`
	Warnings        string          `gorm:"type:jsonb" json:"warnings"` // serialized warning list
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
}
