package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	"github.com/hanbit-enc/siteops-backend/pkg/metrics"
)

// Line descriptions shown when a record carries no label of its own.
const (
	descInvoiceFallback = "세금계산서"
	descDeposit         = "입금"
	descDisbursement    = "지급"
)

// LineKind tells which source a ledger line came from.
type LineKind string

const (
	LineKindInvoice LineKind = "invoice"
	LineKindPayment LineKind = "payment"
)

// Line is one row of the merged counterparty ledger. At most one of
// SaleAmount/PaymentAmount is non-zero. RunningBalance is the prefix sum of
// SaleAmount − PaymentAmount up to and including this line.
type Line struct {
	Date           string    `json:"date"`
	Description    string    `json:"description"`
	SaleAmount     int64     `json:"sale_amount"`
	PaymentAmount  int64     `json:"payment_amount"`
	RunningBalance int64     `json:"running_balance"`
	Kind           LineKind  `json:"kind"`
	SourceID       uuid.UUID `json:"source_id"`
	SiteName       *string   `json:"site_name,omitempty"`
	TeamName       *string   `json:"team_name,omitempty"`
	Memo           *string   `json:"memo,omitempty"`
}

// Totals is the aggregate balance snapshot for one counterparty.
type Totals struct {
	SalesTotal        int64 `json:"sales_total"`
	PurchaseTotal     int64 `json:"purchase_total"`
	ReceivedTotal     int64 `json:"received_total"`
	PaidTotal         int64 `json:"paid_total"`
	ReceivableBalance int64 `json:"receivable_balance"`
	PayableBalance    int64 `json:"payable_balance"`
}

// Engine merges invoice and payment records for one counterparty into a
// chronological ledger with running balances, and computes aggregate totals.
// It is stateless: every call reads the sources fresh, so results always
// reflect current store state. It does not cache; a cache would widen the
// staleness window between the two source fetches in a way callers cannot
// reason about.
type Engine struct {
	invoices InvoiceSource
	payments PaymentSource
	metrics  *metrics.LedgerMetrics
}

// NewEngine wires the engine to its two record sources. Metrics may be nil.
func NewEngine(invoices InvoiceSource, payments PaymentSource, m *metrics.LedgerMetrics) (*Engine, error) {
	if invoices == nil {
		return nil, fmt.Errorf("invoice source required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment source required")
	}
	return &Engine{invoices: invoices, payments: payments, metrics: m}, nil
}

// Totals computes the aggregate balances for the referenced counterparty.
// Cancelled invoices never contribute. If either source fetch fails the whole
// computation fails; partial totals are never returned.
func (e *Engine) Totals(ctx context.Context, ref CounterpartyRef) (Totals, error) {
	if err := ref.Validate(); err != nil {
		return Totals{}, err
	}

	start := time.Now()
	invoices, payments, err := e.fetch(ctx, ref)
	if err != nil {
		e.metrics.IncFailure("totals", string(ref.Mode()))
		return Totals{}, err
	}

	var totals Totals
	for _, inv := range invoices {
		if inv.Status == enums.InvoiceStatusCancelled {
			continue
		}
		switch inv.Direction {
		case enums.InvoiceDirectionSales:
			totals.SalesTotal += inv.TotalAmount
		case enums.InvoiceDirectionPurchase:
			totals.PurchaseTotal += inv.TotalAmount
		}
	}
	for _, pay := range payments {
		switch pay.Direction {
		case enums.PaymentDirectionIn:
			totals.ReceivedTotal += pay.Amount
		case enums.PaymentDirectionOut:
			totals.PaidTotal += pay.Amount
		}
	}
	totals.ReceivableBalance = totals.SalesTotal - totals.ReceivedTotal
	totals.PayableBalance = totals.PurchaseTotal - totals.PaidTotal

	e.metrics.ObserveDuration("totals", string(ref.Mode()), time.Since(start))
	e.metrics.IncSuccess("totals", string(ref.Mode()))
	return totals, nil
}

// History returns the merged chronological ledger for the referenced
// counterparty. Invoice lines only carry a sale amount for sales-direction
// invoices; purchase invoices appear with both amounts zero, so the running
// balance models the receivable side only. That asymmetry mirrors how the
// console has always rendered this ledger and must not be "corrected" here.
// A symmetric payable view would change every historical balance users have
// reconciled against.
func (e *Engine) History(ctx context.Context, ref CounterpartyRef) ([]Line, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	invoices, payments, err := e.fetch(ctx, ref)
	if err != nil {
		e.metrics.IncFailure("history", string(ref.Mode()))
		return nil, err
	}

	lines := make([]Line, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		if inv.Status == enums.InvoiceStatusCancelled {
			continue
		}
		lines = append(lines, invoiceLine(inv))
	}
	for _, pay := range payments {
		lines = append(lines, paymentLine(pay))
	}

	// ISO dates compare correctly as strings. The stable sort keeps same-day
	// ordering consistent within a single computation; no secondary order is
	// promised across calls that see different source ordering.
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date < lines[j].Date
	})

	var balance int64
	for i := range lines {
		balance += lines[i].SaleAmount - lines[i].PaymentAmount
		lines[i].RunningBalance = balance
	}

	e.metrics.ObserveDuration("history", string(ref.Mode()), time.Since(start))
	e.metrics.IncSuccess("history", string(ref.Mode()))
	return lines, nil
}

// fetch reads both sources concurrently and waits for both. Either failure
// aborts the computation; no partial data escapes.
func (e *Engine) fetch(ctx context.Context, ref CounterpartyRef) ([]models.Invoice, []models.Payment, error) {
	var (
		invoices []models.Invoice
		payments []models.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = e.listInvoices(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = e.listPayments(gctx, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return invoices, payments, nil
}

func (e *Engine) listInvoices(ctx context.Context, ref CounterpartyRef) ([]models.Invoice, error) {
	if ref.Mode() == ModeByID {
		return e.invoices.ListByPartnerID(ctx, ref.ID())
	}
	return e.invoices.ListByPartnerName(ctx, ref.Name())
}

func (e *Engine) listPayments(ctx context.Context, ref CounterpartyRef) ([]models.Payment, error) {
	if ref.Mode() == ModeByID {
		return e.payments.ListByPartnerID(ctx, ref.ID())
	}
	return e.payments.ListByPartnerName(ctx, ref.Name())
}

func invoiceLine(inv models.Invoice) Line {
	description := descInvoiceFallback
	if inv.ItemLabel != nil && *inv.ItemLabel != "" {
		description = *inv.ItemLabel
	}

	var sale int64
	if inv.Direction == enums.InvoiceDirectionSales {
		sale = inv.TotalAmount
	}

	return Line{
		Date:        inv.IssueDate,
		Description: description,
		SaleAmount:  sale,
		Kind:        LineKindInvoice,
		SourceID:    inv.ID,
		SiteName:    inv.SiteName,
		TeamName:    inv.TeamName,
		Memo:        inv.Memo,
	}
}

func paymentLine(pay models.Payment) Line {
	description := descDisbursement
	var amount int64
	if pay.Direction == enums.PaymentDirectionIn {
		description = descDeposit
		amount = pay.Amount
	}

	return Line{
		Date:          pay.PaidOn,
		Description:   description,
		PaymentAmount: amount,
		Kind:          LineKindPayment,
		SourceID:      pay.ID,
		SiteName:      pay.SiteName,
		TeamName:      pay.TeamName,
		Memo:          pay.Memo,
	}
}
