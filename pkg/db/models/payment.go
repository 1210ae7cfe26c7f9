package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// Payment is one cash movement against a partner. Amount is always a positive
// magnitude; the balance effect comes from Direction.
type Payment struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PaidOn      string                 `gorm:"column:paid_on;type:text;not null"`
	Direction   enums.PaymentDirection `gorm:"column:direction;type:payment_direction;not null"`
	Amount      int64                  `gorm:"column:amount;not null"`
	PartnerID   *uuid.UUID             `gorm:"column:partner_id;type:uuid"`
	PartnerName string                 `gorm:"column:partner_name;not null"`
	SiteName    *string                `gorm:"column:site_name"`
	TeamName    *string                `gorm:"column:team_name"`
	Memo        *string                `gorm:"column:memo"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
