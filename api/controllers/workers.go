package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/api/validators"
	"github.com/hanbit-enc/siteops-backend/internal/workers"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/pagination"
)

type workerCreateRequest struct {
	Name           string     `json:"name" validate:"required,min=1"`
	ResidentRegNo  *string    `json:"resident_reg_no,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	TeamID         *uuid.UUID `json:"team_id,omitempty"`
	BankName       *string    `json:"bank_name,omitempty"`
	BankAccount    *string    `json:"bank_account,omitempty"`
	DailyWage      int64      `json:"daily_wage" validate:"gte=0"`
	Skills         []string   `json:"skills,omitempty"`
	Memo           *string    `json:"memo,omitempty"`
	AllowDuplicate bool       `json:"allow_duplicate,omitempty"`
}

func (r workerCreateRequest) toInput() workers.CreateWorkerInput {
	return workers.CreateWorkerInput{
		Name:           r.Name,
		ResidentRegNo:  r.ResidentRegNo,
		Phone:          r.Phone,
		TeamID:         r.TeamID,
		BankName:       r.BankName,
		BankAccount:    r.BankAccount,
		DailyWage:      r.DailyWage,
		Skills:         r.Skills,
		Memo:           r.Memo,
		AllowDuplicate: r.AllowDuplicate,
	}
}

type workerUpdateRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	ResidentRegNo *string    `json:"resident_reg_no,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	TeamID        *uuid.UUID `json:"team_id,omitempty"`
	BankName      *string    `json:"bank_name,omitempty"`
	BankAccount   *string    `json:"bank_account,omitempty"`
	DailyWage     *int64     `json:"daily_wage,omitempty" validate:"omitempty,gte=0"`
	Skills        *[]string  `json:"skills,omitempty"`
	Memo          *string    `json:"memo,omitempty"`
}

func (r workerUpdateRequest) toInput() workers.UpdateWorkerInput {
	return workers.UpdateWorkerInput{
		Name:          r.Name,
		ResidentRegNo: r.ResidentRegNo,
		Phone:         r.Phone,
		TeamID:        r.TeamID,
		BankName:      r.BankName,
		BankAccount:   r.BankAccount,
		DailyWage:     r.DailyWage,
		Skills:        r.Skills,
		Memo:          r.Memo,
	}
}

// WorkerCreate registers a laborer. Duplicate detection runs unless the
// payload sets allow_duplicate.
func WorkerCreate(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		var payload workerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, worker)
	}
}

// WorkerDetail returns one worker by id.
func WorkerDetail(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		id, err := urlUUID(r, "workerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, worker)
	}
}

// WorkerUpdate adjusts the mutable fields of a worker, including team
// assignment.
func WorkerUpdate(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		id, err := urlUUID(r, "workerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload workerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, worker)
	}
}

// WorkerDelete removes one worker from the registry.
func WorkerDelete(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		id, err := urlUUID(r, "workerID")
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

// WorkerList returns a page of workers, optionally scoped to a team or
// filtered by name.
func WorkerList(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := workers.ListParams{
			NameQuery: validators.QueryString(r, "q"),
			Limit:     limit,
			Cursor:    r.URL.Query().Get("cursor"),
		}

		teamID, err := validators.ParseQueryUUID(r, "team_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.TeamID = teamID

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// WorkerCheckDuplicates reports existing workers that collide with the given
// identifiers without registering anything.
func WorkerCheckDuplicates(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker service unavailable"))
			return
		}

		residentRegNo := validators.QueryString(r, "resident_reg_no")
		phone := validators.QueryString(r, "phone")
		if residentRegNo == nil && phone == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "resident_reg_no or phone is required"))
			return
		}

		matches, err := svc.CheckDuplicates(r.Context(), residentRegNo, phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, struct {
			Matches []workers.DuplicateMatch `json:"matches"`
		}{Matches: matches})
	}
}
