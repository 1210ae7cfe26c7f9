package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// Invoice is one tax invoice document. Records entered before a partner was
// registered carry only the free-typed partner name; PartnerID stays nil for
// those, which is why the ledger keeps two independent lookup modes.
//
// IssueDate is stored as ISO text (YYYY-MM-DD) and compared lexicographically.
type Invoice struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	IssueDate   string                 `gorm:"column:issue_date;type:text;not null"`
	Direction   enums.InvoiceDirection `gorm:"column:direction;type:invoice_direction;not null"`
	Status      enums.InvoiceStatus    `gorm:"column:status;type:invoice_status;not null;default:'draft'"`
	TotalAmount int64                  `gorm:"column:total_amount;not null"`
	PartnerID   *uuid.UUID             `gorm:"column:partner_id;type:uuid"`
	PartnerName string                 `gorm:"column:partner_name;not null"`
	ItemLabel   *string                `gorm:"column:item_label"`
	SiteName    *string                `gorm:"column:site_name"`
	TeamName    *string                `gorm:"column:team_name"`
	Memo        *string                `gorm:"column:memo"`
	SourceDocID *string                `gorm:"column:source_doc_id;uniqueIndex"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
