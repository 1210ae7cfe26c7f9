package partners

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
)

// PartnerDTO exposes one counterparty company in API responses.
type PartnerDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	BusinessRegNo  *string   `json:"business_reg_no,omitempty"`
	Representative *string   `json:"representative,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Memo           *string   `json:"memo,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreatePartnerInput captures the data required to register a partner.
type CreatePartnerInput struct {
	Name           string
	BusinessRegNo  *string
	Representative *string
	Phone          *string
	Email          *string
	Address        *string
	Memo           *string
}

// UpdatePartnerInput captures the mutable partner fields. Nil means keep the
// stored value.
type UpdatePartnerInput struct {
	Name           *string
	BusinessRegNo  *string
	Representative *string
	Phone          *string
	Email          *string
	Address        *string
	Memo           *string
}

// ListParams holds partner list filters and cursor pagination inputs.
type ListParams struct {
	NameQuery *string
	Limit     int
	Cursor    string
}

// ListResult is one page of partners plus the cursor for the next page.
type ListResult struct {
	Items      []PartnerDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted partner into a DTO.
func FromModel(m *models.Partner) *PartnerDTO {
	if m == nil {
		return nil
	}
	return &PartnerDTO{
		ID:             m.ID,
		Name:           m.Name,
		BusinessRegNo:  m.BusinessRegNo,
		Representative: m.Representative,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		Memo:           m.Memo,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
