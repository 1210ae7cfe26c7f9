package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Worker is a registered laborer. ResidentRegNo and Phone drive duplicate
// detection on registration.
type Worker struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	ResidentRegNo *string        `gorm:"column:resident_reg_no"`
	Phone         *string        `gorm:"column:phone"`
	TeamID        *uuid.UUID     `gorm:"column:team_id;type:uuid"`
	BankName      *string        `gorm:"column:bank_name"`
	BankAccount   *string        `gorm:"column:bank_account"`
	DailyWage     int64          `gorm:"column:daily_wage;not null;default:0"`
	Skills        pq.StringArray `gorm:"column:skills;type:text[]"`
	Memo          *string        `gorm:"column:memo"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
