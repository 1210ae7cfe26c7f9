package controllers

import (
	"net/http"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/sites"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type siteCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1"`
	Address   *string `json:"address,omitempty"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Memo      *string `json:"memo,omitempty"`
}

func (r siteCreateRequest) toInput() sites.CreateSiteInput {
	return sites.CreateSiteInput{
		Name:      r.Name,
		Address:   r.Address,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Memo:      r.Memo,
	}
}

type siteUpdateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address   *string `json:"address,omitempty"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Memo      *string `json:"memo,omitempty"`
}

func (r siteUpdateRequest) toInput() sites.UpdateSiteInput {
	return sites.UpdateSiteInput{
		Name:      r.Name,
		Address:   r.Address,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Memo:      r.Memo,
	}
}

// SiteCreate opens a job site. New sites always start active.
func SiteCreate(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		var payload siteCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		site, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, site)
	}
}

// SiteDetail returns one site by id.
func SiteDetail(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		id, err := urlUUID(r, "siteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		site, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, site)
	}
}

// SiteUpdate adjusts the mutable fields of a site.
func SiteUpdate(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		id, err := urlUUID(r, "siteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload siteUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		site, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, site)
	}
}

// SiteComplete marks a site finished. The transition happens once.
func SiteComplete(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		id, err := urlUUID(r, "siteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSiteID(r.Context(), id.String())
		site, err := svc.Complete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, site)
	}
}

// SiteDelete removes one site record.
func SiteDelete(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		id, err := urlUUID(r, "siteID")
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

// SiteList returns a page of sites, optionally filtered by status.
func SiteList(svc sites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "site service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := sites.ListParams{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}

		if raw := validators.QueryString(r, "status"); raw != nil {
			status, err := enums.ParseSiteStatus(*raw)
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
