package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/payments"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type paymentCreateRequest struct {
	PaidOn      string     `json:"paid_on" validate:"required,datetime=2006-01-02"`
	Direction   string     `json:"direction" validate:"required,oneof=in out"`
	Amount      int64      `json:"amount" validate:"gte=0"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	PartnerName string     `json:"partner_name" validate:"required,min=1"`
	SiteName    *string    `json:"site_name,omitempty"`
	TeamName    *string    `json:"team_name,omitempty"`
	Memo        *string    `json:"memo,omitempty"`
}

func (r paymentCreateRequest) toInput() (payments.CreatePaymentInput, error) {
	direction, err := enums.ParsePaymentDirection(r.Direction)
	if err != nil {
		return payments.CreatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction")
	}
	return payments.CreatePaymentInput{
		PaidOn:      r.PaidOn,
		Direction:   direction,
		Amount:      r.Amount,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		SiteName:    r.SiteName,
		TeamName:    r.TeamName,
		Memo:        r.Memo,
	}, nil
}

type paymentUpdateRequest struct {
	PaidOn      *string    `json:"paid_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Direction   *string    `json:"direction,omitempty" validate:"omitempty,oneof=in out"`
	Amount      *int64     `json:"amount,omitempty" validate:"omitempty,gte=0"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	PartnerName *string    `json:"partner_name,omitempty" validate:"omitempty,min=1"`
	SiteName    *string    `json:"site_name,omitempty"`
	TeamName    *string    `json:"team_name,omitempty"`
	Memo        *string    `json:"memo,omitempty"`
}

func (r paymentUpdateRequest) toInput() (payments.UpdatePaymentInput, error) {
	input := payments.UpdatePaymentInput{
		PaidOn:      r.PaidOn,
		Amount:      r.Amount,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		SiteName:    r.SiteName,
		TeamName:    r.TeamName,
		Memo:        r.Memo,
	}
	if r.Direction != nil {
		direction, err := enums.ParsePaymentDirection(*r.Direction)
		if err != nil {
			return payments.UpdatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction")
		}
		input.Direction = &direction
	}
	return input, nil
}

// PaymentCreate records a cash movement.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload paymentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentDetail returns one payment by id.
func PaymentDetail(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := urlUUID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentUpdate adjusts the mutable fields of a payment.
func PaymentUpdate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := urlUUID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentDelete removes one payment record.
func PaymentDelete(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := urlUUID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

// PaymentList returns a filtered page of payments.
func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := payments.ListParams{
			PartnerName: validators.QueryString(r, "partner_name"),
			PaidFrom:    validators.QueryString(r, "paid_from"),
			PaidTo:      validators.QueryString(r, "paid_to"),
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
			direction, err := enums.ParsePaymentDirection(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
				return
			}
			params.Direction = &direction
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
