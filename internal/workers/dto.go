package workers

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
)

// WorkerDTO exposes one registered laborer in API responses.
type WorkerDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	ResidentRegNo *string    `json:"resident_reg_no,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	TeamID        *uuid.UUID `json:"team_id,omitempty"`
	BankName      *string    `json:"bank_name,omitempty"`
	BankAccount   *string    `json:"bank_account,omitempty"`
	DailyWage     int64      `json:"daily_wage"`
	Skills        []string   `json:"skills,omitempty"`
	Memo          *string    `json:"memo,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateWorkerInput captures the data required to register a worker.
// AllowDuplicate acknowledges an earlier duplicate warning and forces the
// registration through.
type CreateWorkerInput struct {
	Name           string
	ResidentRegNo  *string
	Phone          *string
	TeamID         *uuid.UUID
	BankName       *string
	BankAccount    *string
	DailyWage      int64
	Skills         []string
	Memo           *string
	AllowDuplicate bool
}

// UpdateWorkerInput captures the mutable worker fields. Nil means keep the
// stored value.
type UpdateWorkerInput struct {
	Name          *string
	ResidentRegNo *string
	Phone         *string
	TeamID        *uuid.UUID
	BankName      *string
	BankAccount   *string
	DailyWage     *int64
	Skills        *[]string
	Memo          *string
}

// ListParams holds worker list filters and cursor pagination inputs.
type ListParams struct {
	TeamID    *uuid.UUID
	NameQuery *string
	Limit     int
	Cursor    string
}

// ListResult is one page of workers plus the cursor for the next page.
type ListResult struct {
	Items      []WorkerDTO `json:"items"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// DuplicateMatch names one existing worker that collides with a registration
// attempt and the identifier that matched.
type DuplicateMatch struct {
	Worker    WorkerDTO `json:"worker"`
	MatchedOn string    `json:"matched_on"`
}

// FromModel maps the persisted worker into a DTO.
func FromModel(m *models.Worker) *WorkerDTO {
	if m == nil {
		return nil
	}
	return &WorkerDTO{
		ID:            m.ID,
		Name:          m.Name,
		ResidentRegNo: m.ResidentRegNo,
		Phone:         m.Phone,
		TeamID:        m.TeamID,
		BankName:      m.BankName,
		BankAccount:   m.BankAccount,
		DailyWage:     m.DailyWage,
		Skills:        m.Skills,
		Memo:          m.Memo,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toSkillsArray(skills []string) pq.StringArray {
	if skills == nil {
		return nil
	}
	res := make(pq.StringArray, len(skills))
	copy(res, skills)
	return res
}
