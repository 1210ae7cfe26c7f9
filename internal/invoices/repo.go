package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

// Repository manages tax invoice persistence. ListByPartnerID and
// ListByPartnerName also serve the ledger engine as its invoice source.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	FindBySourceDocID(ctx context.Context, sourceDocID string) (*models.Invoice, error)
	Save(ctx context.Context, invoice *models.Invoice) error
	List(ctx context.Context, params listInvoicesParams) ([]models.Invoice, *pagination.Cursor, error)
	ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Invoice, error)
	ListByPartnerName(ctx context.Context, partnerName string) ([]models.Invoice, error)
}

type listInvoicesParams struct {
	Direction   *enums.InvoiceDirection
	Status      *enums.InvoiceStatus
	PartnerID   *uuid.UUID
	PartnerName *string
	IssuedFrom  *string
	IssuedTo    *string
	Limit       int
	Cursor      *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an invoice repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) FindBySourceDocID(ctx context.Context, sourceDocID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Where("source_doc_id = ?", sourceDocID).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) Save(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *repository) List(ctx context.Context, params listInvoicesParams) ([]models.Invoice, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Invoice{})
	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PartnerID != nil {
		query = query.Where("partner_id = ?", *params.PartnerID)
	}
	if params.PartnerName != nil {
		query = query.Where("partner_name = ?", *params.PartnerName)
	}
	if params.IssuedFrom != nil {
		query = query.Where("issue_date >= ?", *params.IssuedFrom)
	}
	if params.IssuedTo != nil {
		query = query.Where("issue_date <= ?", *params.IssuedTo)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Invoice
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

func (r *repository) ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Invoice, error) {
	var rows []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("issue_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByPartnerName(ctx context.Context, partnerName string) ([]models.Invoice, error) {
	var rows []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("partner_name = ?", partnerName).
		Order("issue_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
