package model

import (
	"time"

	"github.com/google/uuid"
)

// Country is reference data keyed by its 3-letter ISO code
type Country struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(3);uniqueIndex;not null" json:"code"` // ISO 3166-1 alpha-3
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Region    string    `gorm:"type:varchar(100)" json:"region"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
