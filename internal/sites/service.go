package sites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

// Service exposes job site operations. Sites open active and move to
// completed exactly once.
type Service interface {
	Create(ctx context.Context, input CreateSiteInput) (*SiteDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SiteDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSiteInput) (*SiteDTO, error)
	Complete(ctx context.Context, id uuid.UUID) (*SiteDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires a site service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("site repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateSiteInput) (*SiteDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	site := &models.Site{
		Name:      name,
		Address:   input.Address,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    enums.SiteStatusActive,
		Memo:      input.Memo,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create site")
	}
	return FromModel(site), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*SiteDTO, error) {
	site, err := s.loadSite(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(site), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateSiteInput) (*SiteDTO, error) {
	site, err := s.loadSite(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
		}
		site.Name = name
	}
	if input.Address != nil {
		site.Address = input.Address
	}

	start := site.StartDate
	end := site.EndDate
	if input.StartDate != nil {
		start = input.StartDate
	}
	if input.EndDate != nil {
		end = input.EndDate
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	site.StartDate = start
	site.EndDate = end

	if input.Memo != nil {
		site.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, site); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update site")
	}
	return FromModel(site), nil
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*SiteDTO, error) {
	site, err := s.loadSite(ctx, id)
	if err != nil {
		return nil, err
	}
	if site.Status == enums.SiteStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "site already completed")
	}

	site.Status = enums.SiteStatusCompleted
	if site.EndDate == nil {
		today := time.Now().Format("2006-01-02")
		site.EndDate = &today
	}
	if err := s.repo.Save(ctx, site); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete site")
	}
	return FromModel(site), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadSite(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete site")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid site status %q", *params.Status))
	}

	query := listSitesParams{
		Status: params.Status,
		Limit:  params.Limit,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sites")
	}

	result := &ListResult{Items: make([]SiteDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) loadSite(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site id is required")
	}
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load site")
	}
	return site, nil
}

// validateDateRange checks the optional ISO dates parse and do not invert.
func validateDateRange(start, end *string) error {
	for _, value := range []*string{start, end} {
		if value == nil {
			continue
		}
		if _, err := time.Parse("2006-01-02", *value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("date %q is not YYYY-MM-DD", *value))
		}
	}
	if start != nil && end != nil && *end < *start {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date")
	}
	return nil
}
