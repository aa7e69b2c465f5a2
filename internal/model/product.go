package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is reference data for a traded good classified by its HS6 code
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HS6         string    `gorm:"column:hs6;type:varchar(6);uniqueIndex;not null" json:"hs6"` // 6-digit Harmonized System code
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
