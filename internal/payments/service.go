package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

// Service exposes cash movement operations. Amounts are stored as positive
// magnitudes; the direction carries the balance effect.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires a payment service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error) {
	if err := validateISODate(input.PaidOn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment date")
	}
	if !input.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment direction %q", input.Direction))
	}
	if input.Amount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	partnerName := strings.TrimSpace(input.PartnerName)
	if partnerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
	}

	payment := &models.Payment{
		PaidOn:      input.PaidOn,
		Direction:   input.Direction,
		Amount:      input.Amount,
		PartnerID:   input.PartnerID,
		PartnerName: partnerName,
		SiteName:    input.SiteName,
		TeamName:    input.TeamName,
		Memo:        input.Memo,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return FromModel(payment), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(payment), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PaidOn != nil {
		if err := validateISODate(*input.PaidOn); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment date")
		}
		payment.PaidOn = *input.PaidOn
	}
	if input.Direction != nil {
		if !input.Direction.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment direction %q", *input.Direction))
		}
		payment.Direction = *input.Direction
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
		}
		payment.Amount = *input.Amount
	}
	if input.PartnerID != nil {
		payment.PartnerID = input.PartnerID
	}
	if input.PartnerName != nil {
		name := strings.TrimSpace(*input.PartnerName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name is required")
		}
		payment.PartnerName = name
	}
	if input.SiteName != nil {
		payment.SiteName = input.SiteName
	}
	if input.TeamName != nil {
		payment.TeamName = input.TeamName
	}
	if input.Memo != nil {
		payment.Memo = input.Memo
	}

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
	}
	return FromModel(payment), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadPayment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Direction != nil && !params.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment direction %q", *params.Direction))
	}
	for _, bound := range []*string{params.PaidFrom, params.PaidTo} {
		if bound == nil {
			continue
		}
		if err := validateISODate(*bound); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date filter")
		}
	}

	query := listPaymentsParams{
		Direction:   params.Direction,
		PartnerID:   params.PartnerID,
		PartnerName: params.PartnerName,
		PaidFrom:    params.PaidFrom,
		PaidTo:      params.PaidTo,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	result := &ListResult{Items: make([]PaymentDTO, len(rows))}
	for i := range rows {
		result.Items[i] = *FromModel(&rows[i])
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) loadPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required")
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func validateISODate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", value)
	}
	return nil
}
