package invoices

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

// Service exposes tax invoice operations. Cancellation is the only path to
// the cancelled status; cancelled invoices are immutable.
type Service interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*InvoiceDTO, error)
	Cancel(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires an invoice service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error) {
	if err := validateISODate(input.IssueDate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid issue date")
	}
	if !input.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice direction %q", input.Direction))
	}
	if input.TotalAmount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must not be negative")
	}

	partnerName := strings.TrimSpace(input.PartnerName)
	if partnerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
	}

	status := enums.InvoiceStatusDraft
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", *input.Status))
		}
		if *input.Status == enums.InvoiceStatusCancelled {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoices cannot be created cancelled")
		}
		status = *input.Status
	}

	invoice := &models.Invoice{
		IssueDate:   input.IssueDate,
		Direction:   input.Direction,
		Status:      status,
		TotalAmount: input.TotalAmount,
		PartnerID:   input.PartnerID,
		PartnerName: partnerName,
		ItemLabel:   input.ItemLabel,
		SiteName:    input.SiteName,
		TeamName:    input.TeamName,
		Memo:        input.Memo,
		SourceDocID: input.SourceDocID,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return FromModel(invoice), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(invoice), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*InvoiceDTO, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enums.InvoiceStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled invoices are immutable")
	}

	if input.IssueDate != nil {
		if err := validateISODate(*input.IssueDate); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid issue date")
		}
		invoice.IssueDate = *input.IssueDate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", *input.Status))
		}
		if *input.Status == enums.InvoiceStatusCancelled {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the cancel operation to cancel an invoice")
		}
		invoice.Status = *input.Status
	}
	if input.TotalAmount != nil {
		if *input.TotalAmount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must not be negative")
		}
		invoice.TotalAmount = *input.TotalAmount
	}
	if input.PartnerID != nil {
		invoice.PartnerID = input.PartnerID
	}
	if input.PartnerName != nil {
		name := strings.TrimSpace(*input.PartnerName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
		}
		invoice.PartnerName = name
	}
	if input.ItemLabel != nil {
		invoice.ItemLabel = input.ItemLabel
	}
	if input.SiteName != nil {
		invoice.SiteName = input.SiteName
	}
	if input.TeamName != nil {
		invoice.TeamName = input.TeamName
	}
	if input.Memo != nil {
		invoice.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice")
	}
	return FromModel(invoice), nil
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enums.InvoiceStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invoice already cancelled")
	}

	invoice.Status = enums.InvoiceStatusCancelled
	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel invoice")
	}
	return FromModel(invoice), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Direction != nil && !params.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice direction %q", *params.Direction))
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", *params.Status))
	}
	for _, bound := range []*string{params.IssuedFrom, params.IssuedTo} {
		if bound == nil {
			continue
		}
		if err := validateISODate(*bound); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date filter")
		}
	}

	query := listInvoicesParams{
		Direction:   params.Direction,
		Status:      params.Status,
		PartnerID:   params.PartnerID,
		PartnerName: params.PartnerName,
		IssuedFrom:  params.IssuedFrom,
		IssuedTo:    params.IssuedTo,
		Limit:       params.Limit,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}

	result := &ListResult{Items: make([]InvoiceDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) loadInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

// validateISODate enforces the YYYY-MM-DD form the ledger relies on for
// lexicographic ordering.
func validateISODate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", value)
	}
	return nil
}
