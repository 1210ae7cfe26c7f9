package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// PaymentDTO exposes one cash movement in API responses.
type PaymentDTO struct {
	ID          uuid.UUID              `json:"id"`
	PaidOn      string                 `json:"paid_on"`
	Direction   enums.PaymentDirection `json:"direction"`
	Amount      int64                  `json:"amount"`
	PartnerID   *uuid.UUID             `json:"partner_id,omitempty"`
	PartnerName string                 `json:"partner_name"`
	SiteName    *string                `json:"site_name,omitempty"`
	TeamName    *string                `json:"team_name,omitempty"`
	Memo        *string                `json:"memo,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CreatePaymentInput captures the data required to record a cash movement.
type CreatePaymentInput struct {
	PaidOn      string
	Direction   enums.PaymentDirection
	Amount      int64
	PartnerID   *uuid.UUID
	PartnerName string
	SiteName    *string
	TeamName    *string
	Memo        *string
}

// UpdatePaymentInput captures the mutable payment fields. Nil means keep the
// stored value.
type UpdatePaymentInput struct {
	PaidOn      *string
	Direction   *enums.PaymentDirection
	Amount      *int64
	PartnerID   *uuid.UUID
	PartnerName *string
	SiteName    *string
	TeamName    *string
	Memo        *string
}

// ListParams holds payment list filters and cursor pagination inputs.
type ListParams struct {
	Direction   *enums.PaymentDirection
	PartnerID   *uuid.UUID
	PartnerName *string
	PaidFrom    *string
	PaidTo      *string
	Limit       int
	Cursor      string
}

// ListResult is one page of payments plus the cursor for the next page.
type ListResult struct {
	Items      []PaymentDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted payment into a DTO.
func FromModel(m *models.Payment) *PaymentDTO {
	if m == nil {
		return nil
	}
	return &PaymentDTO{
		ID:          m.ID,
		PaidOn:      m.PaidOn,
		Direction:   m.Direction,
		Amount:      m.Amount,
		PartnerID:   m.PartnerID,
		PartnerName: m.PartnerName,
		SiteName:    m.SiteName,
		TeamName:    m.TeamName,
		Memo:        m.Memo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
