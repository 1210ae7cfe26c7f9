package ledger

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
)

type fakeInvoiceSource struct {
	byID   map[uuid.UUID][]models.Invoice
	byName map[string][]models.Invoice
	err    error
}

func (f *fakeInvoiceSource) ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[partnerID], nil
}

func (f *fakeInvoiceSource) ListByPartnerName(ctx context.Context, partnerName string) ([]models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[partnerName], nil
}

type fakePaymentSource struct {
	byID   map[uuid.UUID][]models.Payment
	byName map[string][]models.Payment
	err    error
}

func (f *fakePaymentSource) ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[partnerID], nil
}

func (f *fakePaymentSource) ListByPartnerName(ctx context.Context, partnerName string) ([]models.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[partnerName], nil
}

func strPtr(s string) *string { return &s }

func salesInvoice(date string, amount int64) models.Invoice {
	return models.Invoice{
		ID:          uuid.New(),
		IssueDate:   date,
		Direction:   enums.InvoiceDirectionSales,
		Status:      enums.InvoiceStatusIssued,
		TotalAmount: amount,
		PartnerName: "한빛건설",
	}
}

func purchaseInvoice(date string, amount int64) models.Invoice {
	inv := salesInvoice(date, amount)
	inv.Direction = enums.InvoiceDirectionPurchase
	inv.Status = enums.InvoiceStatusReceived
	return inv
}

func deposit(date string, amount int64) models.Payment {
	return models.Payment{
		ID:          uuid.New(),
		PaidOn:      date,
		Direction:   enums.PaymentDirectionIn,
		Amount:      amount,
		PartnerName: "한빛건설",
	}
}

func disbursement(date string, amount int64) models.Payment {
	pay := deposit(date, amount)
	pay.Direction = enums.PaymentDirectionOut
	return pay
}

func newTestEngine(t *testing.T, invs *fakeInvoiceSource, pays *fakePaymentSource) *Engine {
	t.Helper()
	if invs.byName == nil {
		invs.byName = map[string][]models.Invoice{}
	}
	if pays.byName == nil {
		pays.byName = map[string][]models.Payment{}
	}
	engine, err := NewEngine(invs, pays, nil)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	return engine
}

func TestHistorySalesInvoiceAndDeposit(t *testing.T) {
	// Scenario: one sales invoice then one deposit, running balance steps
	// 1,000,000 -> 600,000.
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {salesInvoice("2024-01-10", 1_000_000)},
	}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {deposit("2024-01-15", 400_000)},
	}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Kind != LineKindInvoice || lines[0].RunningBalance != 1_000_000 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Kind != LineKindPayment || lines[1].RunningBalance != 600_000 {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
	if lines[0].Description != "세금계산서" {
		t.Fatalf("expected fallback invoice description, got %q", lines[0].Description)
	}
	if lines[1].Description != "입금" {
		t.Fatalf("expected deposit description, got %q", lines[1].Description)
	}

	totals, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	want := Totals{SalesTotal: 1_000_000, ReceivedTotal: 400_000, ReceivableBalance: 600_000, PayableBalance: 0}
	if totals != want {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestCancelledInvoiceExcludedEverywhere(t *testing.T) {
	cancelled := salesInvoice("2024-01-10", 1_000_000)
	cancelled.Status = enums.InvoiceStatusCancelled

	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{"한빛건설": {cancelled}}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{"한빛건설": {deposit("2024-01-15", 400_000)}}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cancelled invoice should produce no line, got %d lines", len(lines))
	}
	if lines[0].RunningBalance != -400_000 {
		t.Fatalf("expected balance -400000, got %d", lines[0].RunningBalance)
	}

	totals, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals.SalesTotal != 0 || totals.ReceivableBalance != -400_000 {
		t.Fatalf("cancelled invoice leaked into totals: %+v", totals)
	}
}

func TestCancellingInvoiceReducesTotalsByExactAmount(t *testing.T) {
	inv := salesInvoice("2024-02-01", 750_000)
	other := salesInvoice("2024-02-05", 250_000)

	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{"한빛건설": {inv, other}}}
	pays := &fakePaymentSource{}
	engine := newTestEngine(t, invs, pays)

	before, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}

	inv.Status = enums.InvoiceStatusCancelled
	invs.byName["한빛건설"] = []models.Invoice{inv, other}

	after, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if before.SalesTotal-after.SalesTotal != 750_000 {
		t.Fatalf("expected sales total to drop by 750000, got %d -> %d", before.SalesTotal, after.SalesTotal)
	}
}

func TestPurchaseInvoiceAsymmetryPreserved(t *testing.T) {
	// Purchase invoices feed purchase totals but never a ledger-line amount:
	// the history view models the receivable side only. Intentional, do not
	// "fix".
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {purchaseInvoice("2024-03-01", 500_000)},
	}}
	pays := &fakePaymentSource{}
	engine := newTestEngine(t, invs, pays)

	totals, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals.PurchaseTotal != 500_000 || totals.PayableBalance != 500_000 {
		t.Fatalf("unexpected purchase totals: %+v", totals)
	}

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("purchase invoice should still appear as a line, got %d", len(lines))
	}
	if lines[0].SaleAmount != 0 || lines[0].PaymentAmount != 0 || lines[0].RunningBalance != 0 {
		t.Fatalf("purchase line must carry no amounts: %+v", lines[0])
	}
}

func TestDisbursementLineHasZeroAmount(t *testing.T) {
	invs := &fakeInvoiceSource{}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {disbursement("2024-04-02", 300_000)},
	}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 1 || lines[0].Description != "지급" {
		t.Fatalf("unexpected disbursement line: %+v", lines)
	}
	if lines[0].PaymentAmount != 0 || lines[0].RunningBalance != 0 {
		t.Fatalf("out-direction payment must not move the receivable balance: %+v", lines[0])
	}

	totals, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals.PaidTotal != 300_000 || totals.PayableBalance != -300_000 {
		t.Fatalf("unexpected paid totals: %+v", totals)
	}
}

func TestHistoryBalanceIdentityWithTotals(t *testing.T) {
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {
			salesInvoice("2024-01-05", 2_000_000),
			purchaseInvoice("2024-01-07", 900_000),
			salesInvoice("2024-02-11", 450_000),
		},
	}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {
			deposit("2024-01-20", 1_500_000),
			disbursement("2024-01-25", 400_000),
			deposit("2024-03-01", 300_000),
		},
	}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	totals, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}

	last := lines[len(lines)-1]
	if last.RunningBalance != totals.SalesTotal-totals.ReceivedTotal {
		t.Fatalf("balance identity broken: last=%d, sales-received=%d",
			last.RunningBalance, totals.SalesTotal-totals.ReceivedTotal)
	}
}

func TestHistorySignPartitionAndSortOrder(t *testing.T) {
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {
			salesInvoice("2024-05-09", 100),
			salesInvoice("2024-01-02", 200),
			purchaseInvoice("2024-03-15", 300),
		},
	}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {
			deposit("2024-02-01", 50),
			disbursement("2024-04-30", 75),
		},
	}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}

	if !sort.SliceIsSorted(lines, func(i, j int) bool { return lines[i].Date < lines[j].Date }) {
		t.Fatalf("ledger not sorted by date: %+v", lines)
	}
	for _, line := range lines {
		if line.SaleAmount != 0 && line.PaymentAmount != 0 {
			t.Fatalf("line carries both amounts: %+v", line)
		}
		if line.SaleAmount < 0 || line.PaymentAmount < 0 {
			t.Fatalf("line carries negative amount: %+v", line)
		}
	}
}

func TestHistorySameDayRecordsAllPresent(t *testing.T) {
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {salesInvoice("2024-06-01", 100), salesInvoice("2024-06-01", 200)},
	}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {deposit("2024-06-01", 50)},
	}}
	engine := newTestEngine(t, invs, pays)

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("same-day records must all appear, got %d lines", len(lines))
	}
	var sales, received int64
	for _, line := range lines {
		sales += line.SaleAmount
		received += line.PaymentAmount
	}
	if sales != 300 || received != 50 {
		t.Fatalf("same-day sums wrong: sales=%d received=%d", sales, received)
	}
	if lines[len(lines)-1].RunningBalance != 250 {
		t.Fatalf("expected final balance 250, got %d", lines[len(lines)-1].RunningBalance)
	}
}

func TestHistoryIdempotentAcrossCalls(t *testing.T) {
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{
		"한빛건설": {salesInvoice("2024-01-10", 1000), purchaseInvoice("2024-01-12", 800)},
	}}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{
		"한빛건설": {deposit("2024-01-11", 700)},
	}}
	engine := newTestEngine(t, invs, pays)

	first, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	second, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("History not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestFetchFailureAbortsWholeComputation(t *testing.T) {
	boom := errors.New("store unreachable")

	invs := &fakeInvoiceSource{err: boom}
	pays := &fakePaymentSource{byName: map[string][]models.Payment{"한빛건설": {deposit("2024-01-15", 400)}}}
	engine := newTestEngine(t, invs, pays)

	if _, err := engine.History(context.Background(), ByName("한빛건설")); !errors.Is(err, boom) {
		t.Fatalf("expected invoice fetch error to propagate, got %v", err)
	}
	if _, err := engine.Totals(context.Background(), ByName("한빛건설")); !errors.Is(err, boom) {
		t.Fatalf("expected invoice fetch error to propagate, got %v", err)
	}

	invs.err = nil
	invs.byName = map[string][]models.Invoice{"한빛건설": {salesInvoice("2024-01-10", 1000)}}
	pays.err = boom
	if _, err := engine.History(context.Background(), ByName("한빛건설")); !errors.Is(err, boom) {
		t.Fatalf("expected payment fetch error to propagate, got %v", err)
	}
}

func TestUnknownCounterpartyYieldsEmptyNotError(t *testing.T) {
	engine := newTestEngine(t, &fakeInvoiceSource{}, &fakePaymentSource{})

	lines, err := engine.History(context.Background(), ByName("없는회사"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty ledger, got %d lines", len(lines))
	}

	totals, err := engine.Totals(context.Background(), ByName("없는회사"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestDualModePathsStayIndependent(t *testing.T) {
	// Records entered before the partner was registered only exist under the
	// free-typed name; the id path must not see them.
	partnerID := uuid.New()
	invs := &fakeInvoiceSource{
		byID:   map[uuid.UUID][]models.Invoice{partnerID: {salesInvoice("2024-02-01", 600)}},
		byName: map[string][]models.Invoice{"한빛건설": {salesInvoice("2023-11-01", 900)}},
	}
	pays := &fakePaymentSource{
		byID:   map[uuid.UUID][]models.Payment{},
		byName: map[string][]models.Payment{},
	}
	engine := newTestEngine(t, invs, pays)

	byID, err := engine.Totals(context.Background(), ByID(partnerID))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	byName, err := engine.Totals(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if byID.SalesTotal != 600 || byName.SalesTotal != 900 {
		t.Fatalf("modes leaked into each other: id=%+v name=%+v", byID, byName)
	}
}

func TestInvalidRefRejected(t *testing.T) {
	engine := newTestEngine(t, &fakeInvoiceSource{}, &fakePaymentSource{})

	if _, err := engine.History(context.Background(), ByName("")); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := engine.Totals(context.Background(), ByID(uuid.Nil)); err == nil {
		t.Fatal("expected error for nil id")
	}
	if _, err := engine.History(context.Background(), CounterpartyRef{}); err == nil {
		t.Fatal("expected error for zero-value ref")
	}
}

func TestInvoiceLineUsesItemLabel(t *testing.T) {
	inv := salesInvoice("2024-07-01", 10_000)
	inv.ItemLabel = strPtr("철근 자재비")
	invs := &fakeInvoiceSource{byName: map[string][]models.Invoice{"한빛건설": {inv}}}
	engine := newTestEngine(t, invs, &fakePaymentSource{})

	lines, err := engine.History(context.Background(), ByName("한빛건설"))
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if lines[0].Description != "철근 자재비" {
		t.Fatalf("expected item label description, got %q", lines[0].Description)
	}
}

func TestNewEngineRequiresSources(t *testing.T) {
	if _, err := NewEngine(nil, &fakePaymentSource{}, nil); err == nil {
		t.Fatal("expected error for nil invoice source")
	}
	if _, err := NewEngine(&fakeInvoiceSource{}, nil, nil); err == nil {
		t.Fatal("expected error for nil payment source")
	}
}
