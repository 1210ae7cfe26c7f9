package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/invoices"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type invoiceCreateRequest struct {
	IssueDate   string     `json:"issue_date" validate:"required,datetime=2006-01-02"`
	Direction   string     `json:"direction" validate:"required,oneof=sales purchase"`
	Status      *string    `json:"status,omitempty"`
	TotalAmount int64      `json:"total_amount" validate:"gte=0"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	PartnerName string     `json:"partner_name" validate:"required,min=1"`
	ItemLabel   *string    `json:"item_label,omitempty"`
	SiteName    *string    `json:"site_name,omitempty"`
	TeamName    *string    `json:"team_name,omitempty"`
	Memo        *string    `json:"memo,omitempty"`
}

func (r invoiceCreateRequest) toInput() (invoices.CreateInvoiceInput, error) {
	direction, err := enums.ParseInvoiceDirection(r.Direction)
	if err != nil {
		return invoices.CreateInvoiceInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction")
	}

	input := invoices.CreateInvoiceInput{
		IssueDate:   r.IssueDate,
		Direction:   direction,
		TotalAmount: r.TotalAmount,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		ItemLabel:   r.ItemLabel,
		SiteName:    r.SiteName,
		TeamName:    r.TeamName,
		Memo:        r.Memo,
	}
	if r.Status != nil {
		status, err := enums.ParseInvoiceStatus(*r.Status)
		if err != nil {
			return invoices.CreateInvoiceInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

type invoiceUpdateRequest struct {
	IssueDate   *string    `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      *string    `json:"status,omitempty"`
	TotalAmount *int64     `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	PartnerName *string    `json:"partner_name,omitempty" validate:"omitempty,min=1"`
	ItemLabel   *string    `json:"item_label,omitempty"`
	SiteName    *string    `json:"site_name,omitempty"`
	TeamName    *string    `json:"team_name,omitempty"`
	Memo        *string    `json:"memo,omitempty"`
}

func (r invoiceUpdateRequest) toInput() (invoices.UpdateInvoiceInput, error) {
	input := invoices.UpdateInvoiceInput{
		IssueDate:   r.IssueDate,
		TotalAmount: r.TotalAmount,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		ItemLabel:   r.ItemLabel,
		SiteName:    r.SiteName,
		TeamName:    r.TeamName,
		Memo:        r.Memo,
	}
	if r.Status != nil {
		status, err := enums.ParseInvoiceStatus(*r.Status)
		if err != nil {
			return invoices.UpdateInvoiceInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

// InvoiceCreate records a tax invoice.
func InvoiceCreate(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		var payload invoiceCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

// InvoiceDetail returns one invoice by id.
func InvoiceDetail(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := urlUUID(r, "invoiceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoiceUpdate adjusts the mutable fields of a non-cancelled invoice.
func InvoiceUpdate(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := urlUUID(r, "invoiceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload invoiceUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoiceCancel voids an invoice. The row stays for audit; the ledger stops
// counting it.
func InvoiceCancel(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := urlUUID(r, "invoiceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoiceList returns a filtered page of invoices.
func InvoiceList(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := invoices.ListParams{
			PartnerName: validators.QueryString(r, "partner_name"),
			IssuedFrom:  validators.QueryString(r, "issued_from"),
			IssuedTo:    validators.QueryString(r, "issued_to"),
			Limit:       limit,
			Cursor:      r.URL.Query().Get("cursor"),
		}

		partnerID, err := validators.ParseQueryUUID(r, "partner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.PartnerID = partnerID

		if raw := validators.QueryString(r, "direction"); raw != nil {
			direction, err := enums.ParseInvoiceDirection(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
				return
			}
			params.Direction = &direction
		}
		if raw := validators.QueryString(r, "status"); raw != nil {
			status, err := enums.ParseInvoiceStatus(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
