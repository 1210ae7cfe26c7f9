package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type fakeRepository struct {
	createFn   func(ctx context.Context, payment *models.Payment) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	saveFn     func(ctx context.Context, payment *models.Payment) error
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	listFn     func(ctx context.Context, params listPaymentsParams) ([]models.Payment, *pagination.Cursor, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, payment *models.Payment) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, payment)
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepository) Save(ctx context.Context, payment *models.Payment) error {
	if f.saveFn == nil {
		return nil
	}
	return f.saveFn(ctx, payment)
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepository) List(ctx context.Context, params listPaymentsParams) ([]models.Payment, *pagination.Cursor, error) {
	if f.listFn == nil {
		return nil, nil, nil
	}
	return f.listFn(ctx, params)
}

func (f *fakeRepository) ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

func (f *fakeRepository) ListByPartnerName(ctx context.Context, partnerName string) ([]models.Payment, error) {
	return nil, nil
}

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestCreatePaymentValidation(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	cases := []struct {
		name  string
		input CreatePaymentInput
	}{
		{
			name:  "bad date",
			input: CreatePaymentInput{PaidOn: "15-01-2024", Direction: enums.PaymentDirectionIn, Amount: 100, PartnerName: "한빛건설"},
		},
		{
			name:  "bad direction",
			input: CreatePaymentInput{PaidOn: "2024-01-15", Direction: "sideways", Amount: 100, PartnerName: "한빛건설"},
		},
		{
			name:  "negative amount",
			input: CreatePaymentInput{PaidOn: "2024-01-15", Direction: enums.PaymentDirectionIn, Amount: -100, PartnerName: "한빛건설"},
		},
		{
			name:  "blank partner name",
			input: CreatePaymentInput{PaidOn: "2024-01-15", Direction: enums.PaymentDirectionIn, Amount: 100, PartnerName: ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreatePayment(t *testing.T) {
	var created *models.Payment
	repo := &fakeRepository{
		createFn: func(ctx context.Context, payment *models.Payment) error {
			created = payment
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.Create(context.Background(), CreatePaymentInput{
		PaidOn:      "2024-01-15",
		Direction:   enums.PaymentDirectionIn,
		Amount:      400_000,
		PartnerName: " 한빛건설 ",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created == nil || created.Amount != 400_000 {
		t.Fatalf("payment not persisted: %+v", created)
	}
	if dto.PartnerName != "한빛건설" {
		t.Fatalf("partner name not trimmed: %q", dto.PartnerName)
	}
}

func TestUpdatePaymentDirectionChange(t *testing.T) {
	var saved *models.Payment
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
			return &models.Payment{
				ID:          id,
				PaidOn:      "2024-01-15",
				Direction:   enums.PaymentDirectionIn,
				Amount:      100,
				PartnerName: "한빛건설",
			}, nil
		},
		saveFn: func(ctx context.Context, payment *models.Payment) error {
			saved = payment
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	out := enums.PaymentDirectionOut
	dto, err := svc.Update(context.Background(), uuid.New(), UpdatePaymentInput{Direction: &out})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if dto.Direction != enums.PaymentDirectionOut {
		t.Fatalf("direction not updated: %s", dto.Direction)
	}
	if saved == nil || saved.Direction != enums.PaymentDirectionOut {
		t.Fatalf("direction change not persisted: %+v", saved)
	}
}

func TestUpdatePaymentNotFound(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	amount := int64(100)
	_, err := svc.Update(context.Background(), uuid.New(), UpdatePaymentInput{Amount: &amount})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePayment(t *testing.T) {
	var deleted uuid.UUID
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
			return &models.Payment{ID: id, PartnerName: "한빛건설"}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	id := uuid.New()
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted != id {
		t.Fatalf("expected delete of %s, got %s", id, deleted)
	}
}

func TestListPaymentsPassesFilters(t *testing.T) {
	direction := enums.PaymentDirectionIn
	from := "2024-01-01"
	to := "2024-12-31"

	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listPaymentsParams) ([]models.Payment, *pagination.Cursor, error) {
			if params.Direction == nil || *params.Direction != direction {
				t.Fatalf("direction filter dropped: %+v", params)
			}
			if params.PaidFrom == nil || *params.PaidFrom != from || params.PaidTo == nil || *params.PaidTo != to {
				t.Fatalf("date filters dropped: %+v", params)
			}
			return nil, nil, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	if _, err := svc.List(context.Background(), ListParams{Direction: &direction, PaidFrom: &from, PaidTo: &to}); err != nil {
		t.Fatalf("List error: %v", err)
	}
}

func TestListPaymentsInvalidDateFilter(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	bad := "Jan 1"
	_, err := svc.List(context.Background(), ListParams{PaidFrom: &bad})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
