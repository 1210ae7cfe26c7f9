package workers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

// Repository manages worker persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, worker *models.Worker) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	Save(ctx context.Context, worker *models.Worker) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params listWorkersParams) ([]models.Worker, *pagination.Cursor, error)
	FindMatches(ctx context.Context, residentRegNo, phone *string) ([]models.Worker, error)
}

type listWorkersParams struct {
	TeamID    *uuid.UUID
	NameQuery *string
	Limit     int
	Cursor    *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a worker repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, worker *models.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *repository) Save(ctx context.Context, worker *models.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Worker{}, "id = ?", id).Error
}

func (r *repository) List(ctx context.Context, params listWorkersParams) ([]models.Worker, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Worker{})
	if params.TeamID != nil {
		query = query.Where("team_id = ?", *params.TeamID)
	}
	if params.NameQuery != nil {
		query = query.Where("name LIKE ?", "%"+*params.NameQuery+"%")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Worker
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

// FindMatches returns workers sharing the given resident registration number
// or phone. Both identifiers are optional; with neither set the result is
// empty.
func (r *repository) FindMatches(ctx context.Context, residentRegNo, phone *string) ([]models.Worker, error) {
	query := r.db.WithContext(ctx).Model(&models.Worker{})
	switch {
	case residentRegNo != nil && phone != nil:
		query = query.Where("resident_reg_no = ? OR phone = ?", *residentRegNo, *phone)
	case residentRegNo != nil:
		query = query.Where("resident_reg_no = ?", *residentRegNo)
	case phone != nil:
		query = query.Where("phone = ?", *phone)
	default:
		return nil, nil
	}

	var rows []models.Worker
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
