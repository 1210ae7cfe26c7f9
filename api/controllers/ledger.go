package controllers

import (
	"context"
	"net/http"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/ledger"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
)

// counterpartyRef builds the addressing reference from query parameters.
// Exactly one of partner_id and partner_name must be provided; the two
// lookup paths stay separate and are never combined.
func counterpartyRef(r *http.Request) (ledger.CounterpartyRef, error) {
	partnerID, err := validators.ParseQueryUUID(r, "partner_id")
	if err != nil {
		return ledger.CounterpartyRef{}, err
	}
	partnerName := validators.QueryString(r, "partner_name")

	switch {
	case partnerID != nil && partnerName != nil:
		return ledger.CounterpartyRef{}, pkgerrors.New(pkgerrors.CodeValidation, "provide either partner_id or partner_name, not both")
	case partnerID != nil:
		return ledger.ByID(*partnerID), nil
	case partnerName != nil:
		return ledger.ByName(*partnerName), nil
	default:
		return ledger.CounterpartyRef{}, pkgerrors.New(pkgerrors.CodeValidation, "partner_id or partner_name is required")
	}
}

// refLogContext tags request logs with the addressed counterparty.
func refLogContext(logg *logger.Logger, ctx context.Context, ref ledger.CounterpartyRef) context.Context {
	if ref.Mode() == ledger.ModeByID {
		return logg.WithPartnerID(ctx, ref.ID().String())
	}
	return logg.WithField(ctx, "partner_name", ref.Name())
}

// LedgerHistory returns the merged chronological ledger for one counterparty.
func LedgerHistory(engine *ledger.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger engine unavailable"))
			return
		}

		ref, err := counterpartyRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := refLogContext(logg, r.Context(), ref)
		lines, err := engine.History(ctx, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, struct {
			Lines []ledger.Line `json:"lines"`
		}{Lines: lines})
	}
}

// LedgerTotals returns the aggregate balance snapshot for one counterparty.
func LedgerTotals(engine *ledger.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger engine unavailable"))
			return
		}

		ref, err := counterpartyRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := refLogContext(logg, r.Context(), ref)
		totals, err := engine.Totals(ctx, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, totals)
	}
}
