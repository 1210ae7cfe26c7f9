package sites

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

// SiteDTO exposes one job site in API responses.
type SiteDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Address   *string          `json:"address,omitempty"`
	StartDate *string          `json:"start_date,omitempty"`
	EndDate   *string          `json:"end_date,omitempty"`
	Status    enums.SiteStatus `json:"status"`
	Memo      *string          `json:"memo,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CreateSiteInput captures the data required to open a job site.
type CreateSiteInput struct {
	Name      string
	Address   *string
	StartDate *string
	EndDate   *string
	Memo      *string
}

// UpdateSiteInput captures the mutable site fields. Nil means keep the stored
// value.
type UpdateSiteInput struct {
	Name      *string
	Address   *string
	StartDate *string
	EndDate   *string
	Memo      *string
}

// ListParams holds site list filters and cursor pagination inputs.
type ListParams struct {
	Status *enums.SiteStatus
	Limit  int
	Cursor string
}

// ListResult is one page of sites plus the cursor for the next page.
type ListResult struct {
	Items      []SiteDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted site into a DTO.
func FromModel(m *models.Site) *SiteDTO {
	if m == nil {
		return nil
	}
	return &SiteDTO{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    m.Status,
		Memo:      m.Memo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
