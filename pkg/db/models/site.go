package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// Site is a construction job site. StartDate/EndDate are ISO text dates.
type Site struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string           `gorm:"column:name;not null"`
	Address   *string          `gorm:"column:address"`
	StartDate *string          `gorm:"column:start_date;type:text"`
	EndDate   *string          `gorm:"column:end_date;type:text"`
	Status    enums.SiteStatus `gorm:"column:status;type:site_status;not null;default:'active'"`
	Memo      *string          `gorm:"column:memo"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
