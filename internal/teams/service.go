package teams

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

// Service exposes work crew operations.
type Service interface {
	Create(ctx context.Context, input CreateTeamInput) (*TeamDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TeamDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*TeamDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires a team service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("team repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateTeamInput) (*TeamDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
	}

	team := &models.Team{
		Name:       name,
		LeaderName: input.LeaderName,
		Phone:      input.Phone,
		SiteID:     input.SiteID,
		Trades:     toTradesArray(input.Trades),
		Memo:       input.Memo,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create team")
	}
	return FromModel(team), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*TeamDTO, error) {
	team, err := s.loadTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(team), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*TeamDTO, error) {
	team, err := s.loadTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
		}
		team.Name = name
	}
	if input.LeaderName != nil {
		team.LeaderName = input.LeaderName
	}
	if input.Phone != nil {
		team.Phone = input.Phone
	}
	if input.SiteID != nil {
		team.SiteID = input.SiteID
	}
	if input.Trades != nil {
		team.Trades = toTradesArray(*input.Trades)
	}
	if input.Memo != nil {
		team.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, team); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update team")
	}
	return FromModel(team), nil
}

// Delete removes a team. Teams with assigned workers cannot be deleted; the
// workers must be reassigned first.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadTeam(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountWorkers(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count team workers")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "team still has assigned workers")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listTeamsParams{
		SiteID: params.SiteID,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list teams")
	}

	result := &ListResult{Items: make([]TeamDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) loadTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team id is required")
	}
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}
	return team, nil
}
