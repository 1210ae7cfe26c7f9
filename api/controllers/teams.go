package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/teams"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type teamCreateRequest struct {
	Name       string     `json:"name" validate:"required,min=1"`
	LeaderName *string    `json:"leader_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	SiteID     *uuid.UUID `json:"site_id,omitempty"`
	Trades     []string   `json:"trades,omitempty"`
	Memo       *string    `json:"memo,omitempty"`
}

func (r teamCreateRequest) toInput() teams.CreateTeamInput {
	return teams.CreateTeamInput{
		Name:       r.Name,
		LeaderName: r.LeaderName,
		Phone:      r.Phone,
		SiteID:     r.SiteID,
		Trades:     r.Trades,
		Memo:       r.Memo,
	}
}

type teamUpdateRequest struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	LeaderName *string    `json:"leader_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	SiteID     *uuid.UUID `json:"site_id,omitempty"`
	Trades     *[]string  `json:"trades,omitempty"`
	Memo       *string    `json:"memo,omitempty"`
}

func (r teamUpdateRequest) toInput() teams.UpdateTeamInput {
	return teams.UpdateTeamInput{
		Name:       r.Name,
		LeaderName: r.LeaderName,
		Phone:      r.Phone,
		SiteID:     r.SiteID,
		Trades:     r.Trades,
		Memo:       r.Memo,
	}
}

// TeamCreate registers a work crew.
func TeamCreate(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "team service unavailable"))
			return
		}

		var payload teamCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		team, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, team)
	}
}

// TeamDetail returns one team by id.
func TeamDetail(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "team service unavailable"))
			return
		}

		id, err := urlUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		team, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, team)
	}
}

// TeamUpdate adjusts the mutable fields of a team.
func TeamUpdate(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "team service unavailable"))
			return
		}

		id, err := urlUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload teamUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		team, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, team)
	}
}

// TeamDelete removes a team. Teams still holding workers are refused.
func TeamDelete(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "team service unavailable"))
			return
		}

		id, err := urlUUID(r, "teamID")
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

// TeamList returns a page of teams, optionally scoped to a site.
func TeamList(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "team service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := teams.ListParams{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}

		siteID, err := validators.ParseQueryUUID(r, "site_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.SiteID = siteID

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
