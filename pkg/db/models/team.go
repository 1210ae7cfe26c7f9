package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Team is a work crew, optionally assigned to a site.
type Team struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	LeaderName *string        `gorm:"column:leader_name"`
	Phone      *string        `gorm:"column:phone"`
	SiteID     *uuid.UUID     `gorm:"column:site_id;type:uuid"`
	Trades     pq.StringArray `gorm:"column:trades;type:text[]"`
	Memo       *string        `gorm:"column:memo"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
