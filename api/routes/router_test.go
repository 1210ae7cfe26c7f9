package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/hanbit-enc/siteops-backend/internal/ledger"
	"github.com/hanbit-enc/siteops-backend/internal/partners"
	"github.com/hanbit-enc/siteops-backend/pkg/config"
	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", goredis.Nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	m.data[key] = str
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("test:%s:%s", scope, id)
}

type stubPartnersService struct {
	createCalls int
}

func (s *stubPartnersService) Create(ctx context.Context, input partners.CreatePartnerInput) (*partners.PartnerDTO, error) {
	s.createCalls++
	return &partners.PartnerDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s *stubPartnersService) GetByID(ctx context.Context, id uuid.UUID) (*partners.PartnerDTO, error) {
	panic("unimplemented")
}

func (s *stubPartnersService) Update(ctx context.Context, id uuid.UUID, input partners.UpdatePartnerInput) (*partners.PartnerDTO, error) {
	panic("unimplemented")
}

func (s *stubPartnersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubPartnersService) List(ctx context.Context, params partners.ListParams) (*partners.ListResult, error) {
	return &partners.ListResult{Items: []partners.PartnerDTO{}}, nil
}

type emptyInvoiceSource struct{}

func (emptyInvoiceSource) ListByPartnerID(context.Context, uuid.UUID) ([]models.Invoice, error) {
	return nil, nil
}

func (emptyInvoiceSource) ListByPartnerName(context.Context, string) ([]models.Invoice, error) {
	return nil, nil
}

type emptyPaymentSource struct{}

func (emptyPaymentSource) ListByPartnerID(context.Context, uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

func (emptyPaymentSource) ListByPartnerName(context.Context, string) ([]models.Payment, error) {
	return nil, nil
}

func newTestRouterWithStubs(t *testing.T) (http.Handler, *stubPartnersService, *memoryStore) {
	t.Helper()
	engine, err := ledger.NewEngine(emptyInvoiceSource{}, emptyPaymentSource{}, nil)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	partnerSvc := &stubPartnersService{}
	store := newMemoryStore()
	router := NewRouter(cfg, nil, stubPinger{}, stubPinger{}, store, prometheus.NewRegistry(), engine, partnerSvc, nil, nil, nil, nil, nil)
	return router, partnerSvc, store
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _, _ := newTestRouterWithStubs(t)
	return router
}

func TestPingRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestHealthLiveRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-SiteOps-Env") != "test" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-SiteOps-Env"))
	}
}

func TestHealthReadyRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestLedgerHistoryRouteWired(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/history?partner_name=x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestPartnerListRouteWired(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/partners", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestInvoiceCreateRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPartnerCreateReplaysThroughRouter(t *testing.T) {
	router, partnerSvc, store := newTestRouterWithStubs(t)

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/partners", strings.NewReader(`{"name":"한빛중기"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "retry-1")
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", first.Code)
	}
	if len(store.data) != 1 {
		t.Fatalf("expected one stored record, got %d", len(store.data))
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201 got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("expected replayed body to match first response")
	}
	if partnerSvc.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", partnerSvc.createCalls)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
