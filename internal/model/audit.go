package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreatePreference = "CREATE_TARIFF_PREFERENCE"
	ActionUpdatePreference = "UPDATE_TARIFF_PREFERENCE"
	ActionDeletePreference = "DELETE_TARIFF_PREFERENCE"
	ActionCreateSuspension = "CREATE_TARIFF_SUSPENSION"
	ActionUpdateSuspension = "UPDATE_TARIFF_SUSPENSION"
	ActionDeleteSuspension = "DELETE_TARIFF_SUSPENSION"
	ActionCreateMeasure    = "CREATE_TARIFF_MEASURE"
	ActionUpdateMeasure    = "UPDATE_TARIFF_MEASURE"
	ActionDeleteMeasure    = "DELETE_TARIFF_MEASURE"
	ActionImportReference  = "IMPORT_REFERENCE_DATA"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
