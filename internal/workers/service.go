package workers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

// Service exposes worker registry operations. Registration runs duplicate
// detection on resident registration number and phone; a collision is
// rejected unless the caller explicitly acknowledges it.
type Service interface {
	Create(ctx context.Context, input CreateWorkerInput) (*WorkerDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*WorkerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateWorkerInput) (*WorkerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
	CheckDuplicates(ctx context.Context, residentRegNo, phone *string) ([]DuplicateMatch, error)
}

type service struct {
	repo Repository
}

// NewService wires a worker service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("worker repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateWorkerInput) (*WorkerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker name is required")
	}
	if input.DailyWage < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily wage must not be negative")
	}

	if !input.AllowDuplicate {
		matches, err := s.CheckDuplicates(ctx, input.ResidentRegNo, input.Phone)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "worker may already be registered").
				WithDetails(map[string]any{"matches": matches})
		}
	}

	worker := &models.Worker{
		Name:          name,
		ResidentRegNo: input.ResidentRegNo,
		Phone:         input.Phone,
		TeamID:        input.TeamID,
		BankName:      input.BankName,
		BankAccount:   input.BankAccount,
		DailyWage:     input.DailyWage,
		Skills:        toSkillsArray(input.Skills),
		Memo:          input.Memo,
	}
	if err := s.repo.Create(ctx, worker); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create worker")
	}
	return FromModel(worker), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*WorkerDTO, error) {
	worker, err := s.loadWorker(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(worker), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateWorkerInput) (*WorkerDTO, error) {
	worker, err := s.loadWorker(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker name is required")
		}
		worker.Name = name
	}
	if input.ResidentRegNo != nil {
		worker.ResidentRegNo = input.ResidentRegNo
	}
	if input.Phone != nil {
		worker.Phone = input.Phone
	}
	if input.TeamID != nil {
		worker.TeamID = input.TeamID
	}
	if input.BankName != nil {
		worker.BankName = input.BankName
	}
	if input.BankAccount != nil {
		worker.BankAccount = input.BankAccount
	}
	if input.DailyWage != nil {
		if *input.DailyWage < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily wage must not be negative")
		}
		worker.DailyWage = *input.DailyWage
	}
	if input.Skills != nil {
		worker.Skills = toSkillsArray(*input.Skills)
	}
	if input.Memo != nil {
		worker.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, worker); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update worker")
	}
	return FromModel(worker), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadWorker(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete worker")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listWorkersParams{
		TeamID: params.TeamID,
		Limit:  params.Limit,
	}
	if params.NameQuery != nil {
		trimmed := strings.TrimSpace(*params.NameQuery)
		if trimmed != "" {
			query.NameQuery = &trimmed
		}
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workers")
	}

	result := &ListResult{Items: make([]WorkerDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) CheckDuplicates(ctx context.Context, residentRegNo, phone *string) ([]DuplicateMatch, error) {
	residentRegNo = normalizeIdentifier(residentRegNo)
	phone = normalizeIdentifier(phone)
	if residentRegNo == nil && phone == nil {
		return nil, nil
	}

	rows, err := s.repo.FindMatches(ctx, residentRegNo, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find duplicate workers")
	}

	matches := make([]DuplicateMatch, 0, len(rows))
	for i := range rows {
		matches = append(matches, DuplicateMatch{
			Worker:    *FromModel(&rows[i]),
			MatchedOn: matchedIdentifier(&rows[i], residentRegNo, phone),
		})
	}
	return matches, nil
}

func matchedIdentifier(worker *models.Worker, residentRegNo, phone *string) string {
	if residentRegNo != nil && worker.ResidentRegNo != nil && *worker.ResidentRegNo == *residentRegNo {
		return "resident_reg_no"
	}
	return "phone"
}

func normalizeIdentifier(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *service) loadWorker(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker id is required")
	}
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker")
	}
	return worker, nil
}
