package partners

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

// Service exposes partner registry operations. Partner names are unique so
// name-addressed ledger lookups stay unambiguous.
type Service interface {
	Create(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PartnerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePartnerInput) (*PartnerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires a partner service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
	}

	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	partner := &models.Partner{
		Name:           name,
		BusinessRegNo:  input.BusinessRegNo,
		Representative: input.Representative,
		Phone:          input.Phone,
		Email:          input.Email,
		Address:        input.Address,
		Memo:           input.Memo,
	}
	if err := s.repo.Create(ctx, partner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
	}
	return FromModel(partner), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PartnerDTO, error) {
	partner, err := s.loadPartner(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(partner), nil
}

// Update mutates registry data only. Renaming a partner never rewrites
// historical invoice or payment rows; records entered under the old free-typed
// name stay reachable through the name-addressed ledger lookup.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePartnerInput) (*PartnerDTO, error) {
	partner, err := s.loadPartner(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
		}
		if name != partner.Name {
			if err := s.ensureNameFree(ctx, name); err != nil {
				return nil, err
			}
			partner.Name = name
		}
	}
	if input.BusinessRegNo != nil {
		partner.BusinessRegNo = input.BusinessRegNo
	}
	if input.Representative != nil {
		partner.Representative = input.Representative
	}
	if input.Phone != nil {
		partner.Phone = input.Phone
	}
	if input.Email != nil {
		partner.Email = input.Email
	}
	if input.Address != nil {
		partner.Address = input.Address
	}
	if input.Memo != nil {
		partner.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, partner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner")
	}
	return FromModel(partner), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadPartner(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete partner")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listPartnersParams{
		Limit: params.Limit,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}

	result := &ListResult{Items: make([]PartnerDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("partner %q already registered", name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup partner by name")
	}
	return nil
}

func (s *service) loadPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id is required")
	}
	partner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	return partner, nil
}
