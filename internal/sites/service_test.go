package sites

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
	createFn   func(ctx context.Context, site *models.Site) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Site, error)
	saveFn     func(ctx context.Context, site *models.Site) error
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	listFn     func(ctx context.Context, params listSitesParams) ([]models.Site, *pagination.Cursor, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, site *models.Site) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, site)
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepository) Save(ctx context.Context, site *models.Site) error {
	if f.saveFn == nil {
		return nil
	}
	return f.saveFn(ctx, site)
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepository) List(ctx context.Context, params listSitesParams) ([]models.Site, *pagination.Cursor, error) {
	if f.listFn == nil {
		return nil, nil, nil
	}
	return f.listFn(ctx, params)
}

func strPtr(s string) *string { return &s }

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestCreateSiteOpensActive(t *testing.T) {
	var created *models.Site
	repo := &fakeRepository{
		createFn: func(ctx context.Context, site *models.Site) error {
			created = site
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.Create(context.Background(), CreateSiteInput{
		Name:      "판교 오피스 신축",
		StartDate: strPtr("2024-03-01"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created == nil || created.Status != enums.SiteStatusActive {
		t.Fatalf("site not opened active: %+v", created)
	}
	if dto.Status != enums.SiteStatusActive {
		t.Fatalf("unexpected dto status %s", dto.Status)
	}
}

func TestCreateSiteInvertedDates(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.Create(context.Background(), CreateSiteInput{
		Name:      "판교 오피스 신축",
		StartDate: strPtr("2024-06-01"),
		EndDate:   strPtr("2024-03-01"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompleteSite(t *testing.T) {
	var saved *models.Site
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Site, error) {
			return &models.Site{ID: id, Name: "판교 오피스 신축", Status: enums.SiteStatusActive}, nil
		},
		saveFn: func(ctx context.Context, site *models.Site) error {
			saved = site
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.Complete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if dto.Status != enums.SiteStatusCompleted {
		t.Fatalf("unexpected status %s", dto.Status)
	}
	if saved == nil || saved.EndDate == nil {
		t.Fatalf("completion should stamp an end date: %+v", saved)
	}
}

func TestCompleteSitePreservesEndDate(t *testing.T) {
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Site, error) {
			return &models.Site{
				ID:      id,
				Name:    "판교 오피스 신축",
				Status:  enums.SiteStatusActive,
				EndDate: strPtr("2024-12-31"),
			}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.Complete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if dto.EndDate == nil || *dto.EndDate != "2024-12-31" {
		t.Fatalf("existing end date overwritten: %+v", dto.EndDate)
	}
}

func TestCompleteAlreadyCompletedSite(t *testing.T) {
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Site, error) {
			return &models.Site{ID: id, Name: "판교 오피스 신축", Status: enums.SiteStatusCompleted}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.Complete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListSitesByStatus(t *testing.T) {
	active := enums.SiteStatusActive
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listSitesParams) ([]models.Site, *pagination.Cursor, error) {
			if params.Status == nil || *params.Status != active {
				t.Fatalf("status filter dropped: %+v", params)
			}
			return nil, nil, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	if _, err := svc.List(context.Background(), ListParams{Status: &active}); err != nil {
		t.Fatalf("List error: %v", err)
	}
}
