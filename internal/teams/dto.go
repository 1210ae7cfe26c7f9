package teams

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
)

// TeamDTO exposes one work crew in API responses.
type TeamDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	LeaderName *string    `json:"leader_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	SiteID     *uuid.UUID `json:"site_id,omitempty"`
	Trades     []string   `json:"trades,omitempty"`
	Memo       *string    `json:"memo,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateTeamInput captures the data required to register a team.
type CreateTeamInput struct {
	Name       string
	LeaderName *string
	Phone      *string
	SiteID     *uuid.UUID
	Trades     []string
	Memo       *string
}

// UpdateTeamInput captures the mutable team fields. Nil means keep the stored
// value.
type UpdateTeamInput struct {
	Name       *string
	LeaderName *string
	Phone      *string
	SiteID     *uuid.UUID
	Trades     *[]string
	Memo       *string
}

// ListParams holds team list filters and cursor pagination inputs.
type ListParams struct {
	SiteID *uuid.UUID
	Limit  int
	Cursor string
}

// ListResult is one page of teams plus the cursor for the next page.
type ListResult struct {
	Items      []TeamDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted team into a DTO.
func FromModel(m *models.Team) *TeamDTO {
	if m == nil {
		return nil
	}
	return &TeamDTO{
		ID:         m.ID,
		Name:       m.Name,
		LeaderName: m.LeaderName,
		Phone:      m.Phone,
		SiteID:     m.SiteID,
		Trades:     m.Trades,
		Memo:       m.Memo,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTradesArray(trades []string) pq.StringArray {
	if trades == nil {
		return nil
	}
	res := make(pq.StringArray, len(trades))
	copy(res, trades)
	return res
}
