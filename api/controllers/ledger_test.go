package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/internal/ledger"
	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
)

type stubInvoiceSource struct {
	invoices []models.Invoice
	err      error
}

func (s stubInvoiceSource) ListByPartnerID(context.Context, uuid.UUID) ([]models.Invoice, error) {
	return s.invoices, s.err
}

func (s stubInvoiceSource) ListByPartnerName(context.Context, string) ([]models.Invoice, error) {
	return s.invoices, s.err
}

type stubPaymentSource struct {
	payments []models.Payment
	err      error
}

func (s stubPaymentSource) ListByPartnerID(context.Context, uuid.UUID) ([]models.Payment, error) {
	return s.payments, s.err
}

func (s stubPaymentSource) ListByPartnerName(context.Context, string) ([]models.Payment, error) {
	return s.payments, s.err
}

func newStubEngine(t *testing.T, invSrc ledger.InvoiceSource, paySrc ledger.PaymentSource) *ledger.Engine {
	t.Helper()
	engine, err := ledger.NewEngine(invSrc, paySrc, nil)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	return engine
}

func TestLedgerHistoryByName(t *testing.T) {
	invSrc := stubInvoiceSource{invoices: []models.Invoice{{
		ID:          uuid.New(),
		IssueDate:   "2024-03-01",
		Direction:   enums.InvoiceDirectionSales,
		Status:      enums.InvoiceStatusIssued,
		TotalAmount: 1_000_000,
		PartnerName: "한빛건설",
	}}}
	paySrc := stubPaymentSource{payments: []models.Payment{{
		ID:          uuid.New(),
		PaidOn:      "2024-03-15",
		Direction:   enums.PaymentDirectionIn,
		Amount:      400_000,
		PartnerName: "한빛건설",
	}}}
	handler := LedgerHistory(newStubEngine(t, invSrc, paySrc), nil)

	target := "/api/v1/ledger/history?partner_name=" + url.QueryEscape("한빛건설")
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Lines []ledger.Line `json:"lines"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Lines) != 2 {
		t.Fatalf("expected 2 lines got %d", len(envelope.Data.Lines))
	}
	if envelope.Data.Lines[0].RunningBalance != 1_000_000 {
		t.Fatalf("expected first balance 1000000 got %d", envelope.Data.Lines[0].RunningBalance)
	}
	if envelope.Data.Lines[1].RunningBalance != 600_000 {
		t.Fatalf("expected last balance 600000 got %d", envelope.Data.Lines[1].RunningBalance)
	}
}

func TestLedgerTotalsByID(t *testing.T) {
	invSrc := stubInvoiceSource{invoices: []models.Invoice{{
		ID:          uuid.New(),
		IssueDate:   "2024-03-01",
		Direction:   enums.InvoiceDirectionSales,
		Status:      enums.InvoiceStatusIssued,
		TotalAmount: 1_000_000,
		PartnerName: "한빛건설",
	}}}
	handler := LedgerTotals(newStubEngine(t, invSrc, stubPaymentSource{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/totals?partner_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data ledger.Totals `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SalesTotal != 1_000_000 {
		t.Fatalf("expected sales total 1000000 got %d", envelope.Data.SalesTotal)
	}
	if envelope.Data.ReceivableBalance != 1_000_000 {
		t.Fatalf("expected receivable 1000000 got %d", envelope.Data.ReceivableBalance)
	}
}

func TestLedgerHistoryRejectsBothAddressModes(t *testing.T) {
	handler := LedgerHistory(newStubEngine(t, stubInvoiceSource{}, stubPaymentSource{}), nil)

	target := "/api/v1/ledger/history?partner_id=" + uuid.NewString() + "&partner_name=x"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code got %s", payload.Error.Code)
	}
}

func TestLedgerHistoryRequiresAnAddressMode(t *testing.T) {
	handler := LedgerHistory(newStubEngine(t, stubInvoiceSource{}, stubPaymentSource{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/history", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLedgerHistoryRejectsMalformedPartnerID(t *testing.T) {
	handler := LedgerHistory(newStubEngine(t, stubInvoiceSource{}, stubPaymentSource{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/history?partner_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
