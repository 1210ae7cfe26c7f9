package controllers

import (
	"net/http"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/partners"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type partnerCreateRequest struct {
	Name           string  `json:"name" validate:"required,min=1"`
	BusinessRegNo  *string `json:"business_reg_no,omitempty"`
	Representative *string `json:"representative,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	Memo           *string `json:"memo,omitempty"`
}

func (r partnerCreateRequest) toInput() partners.CreatePartnerInput {
	return partners.CreatePartnerInput{
		Name:           r.Name,
		BusinessRegNo:  r.BusinessRegNo,
		Representative: r.Representative,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
		Memo:           r.Memo,
	}
}

type partnerUpdateRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1"`
	BusinessRegNo  *string `json:"business_reg_no,omitempty"`
	Representative *string `json:"representative,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	Memo           *string `json:"memo,omitempty"`
}

func (r partnerUpdateRequest) toInput() partners.UpdatePartnerInput {
	return partners.UpdatePartnerInput{
		Name:           r.Name,
		BusinessRegNo:  r.BusinessRegNo,
		Representative: r.Representative,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
		Memo:           r.Memo,
	}
}

// PartnerCreate registers a counterparty company.
func PartnerCreate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		var payload partnerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, partner)
	}
}

// PartnerDetail returns one partner by id.
func PartnerDetail(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := urlUUID(r, "partnerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, partner)
	}
}

// PartnerUpdate adjusts registry fields for one partner.
func PartnerUpdate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := urlUUID(r, "partnerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload partnerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, partner)
	}
}

// PartnerDelete removes one partner from the registry. Historical invoice and
// payment rows keep the name they were entered under.
func PartnerDelete(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := urlUUID(r, "partnerID")
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

// PartnerList returns a page of partners, optionally filtered by name.
func PartnerList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := partners.ListParams{
			NameQuery: validators.QueryString(r, "q"),
			Limit:     limit,
			Cursor:    r.URL.Query().Get("cursor"),
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
