package api

import (
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/models/dtos"
)

// ListLayoutTypesHandler handles GET /api/v1/admin/layout-types
// ?with_trashed=1 includes soft-deleted rows.
func ListLayoutTypesHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		withTrashed := r.URL.Query().Get("with_trashed") == "1"
		rows, err := layouts.List(r.Context(), withTrashed)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout types fetched", rows)
	}
}

func GetLayoutTypeHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		row, err := layouts.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout type fetched", row)
	}
}

func CreateLayoutTypeHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LayoutTypeReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		row, err := layouts.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout type created", row, http.StatusCreated)
	}
}

func UpdateLayoutTypeHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		var req dtos.LayoutTypeReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		row, err := layouts.Update(r.Context(), id, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout type updated", row)
	}
}

func DeleteLayoutTypeHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		if err := layouts.Delete(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout type deleted", nil)
	}
}

func RestoreLayoutTypeHandler(layouts LayoutTypeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		row, err := layouts.Restore(r.Context(), id)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Layout type restored", row)
	}
}
