package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a counterparty company: a client, contractor, or supplier the
// business tracks invoices and payments against.
type Partner struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	BusinessRegNo  *string   `gorm:"column:business_reg_no"`
	Representative *string   `gorm:"column:representative"`
	Phone          *string   `gorm:"column:phone"`
	Email          *string   `gorm:"column:email"`
	Address        *string   `gorm:"column:address"`
	Memo           *string   `gorm:"column:memo"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
