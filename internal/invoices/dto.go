package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// InvoiceDTO exposes one tax invoice in API responses.
type InvoiceDTO struct {
	ID          uuid.UUID              `json:"id"`
	IssueDate   string                 `json:"issue_date"`
	Direction   enums.InvoiceDirection `json:"direction"`
	Status      enums.InvoiceStatus    `json:"status"`
	TotalAmount int64                  `json:"total_amount"`
	PartnerID   *uuid.UUID             `json:"partner_id,omitempty"`
	PartnerName string                 `json:"partner_name"`
	ItemLabel   *string                `json:"item_label,omitempty"`
	SiteName    *string                `json:"site_name,omitempty"`
	TeamName    *string                `json:"team_name,omitempty"`
	Memo        *string                `json:"memo,omitempty"`
	SourceDocID *string                `json:"source_doc_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CreateInvoiceInput captures the data required to record a tax invoice.
type CreateInvoiceInput struct {
	IssueDate   string
	Direction   enums.InvoiceDirection
	Status      *enums.InvoiceStatus
	TotalAmount int64
	PartnerID   *uuid.UUID
	PartnerName string
	ItemLabel   *string
	SiteName    *string
	TeamName    *string
	Memo        *string
	SourceDocID *string
}

// UpdateInvoiceInput captures the mutable invoice fields. Nil means keep the
// stored value.
type UpdateInvoiceInput struct {
	IssueDate   *string
	Status      *enums.InvoiceStatus
	TotalAmount *int64
	PartnerID   *uuid.UUID
	PartnerName *string
	ItemLabel   *string
	SiteName    *string
	TeamName    *string
	Memo        *string
}

// ListParams holds invoice list filters and cursor pagination inputs.
type ListParams struct {
	Direction   *enums.InvoiceDirection
	Status      *enums.InvoiceStatus
	PartnerID   *uuid.UUID
	PartnerName *string
	IssuedFrom  *string
	IssuedTo    *string
	Limit       int
	Cursor      string
}

// ListResult is one page of invoices plus the cursor for the next page.
type ListResult struct {
	Items      []InvoiceDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted invoice into a DTO.
func FromModel(m *models.Invoice) *InvoiceDTO {
	if m == nil {
		return nil
	}
	return &InvoiceDTO{
		ID:          m.ID,
		IssueDate:   m.IssueDate,
		Direction:   m.Direction,
		Status:      m.Status,
		TotalAmount: m.TotalAmount,
		PartnerID:   m.PartnerID,
		PartnerName: m.PartnerName,
		ItemLabel:   m.ItemLabel,
		SiteName:    m.SiteName,
		TeamName:    m.TeamName,
		Memo:        m.Memo,
		SourceDocID: m.SourceDocID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
