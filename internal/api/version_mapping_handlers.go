package api

import (
	"net/http"
	"strings"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/dtos"
)

func ListMobileAppsHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		apps, err := mappings.ListApps(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Mobile apps fetched", apps)
	}
}

func CreateMobileAppHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MobileSupportAppReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		app, err := mappings.CreateApp(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Mobile app created", app, http.StatusCreated)
	}
}

// ListVersionMappingsHandler handles GET /api/v1/admin/mobile-apps/{app_id}/version-mappings
func ListVersionMappingsHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		appID, ok := urlParamID(w, r, initTime, "app_id")
		if !ok {
			return
		}
		rows, err := mappings.ListMappings(r.Context(), appID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Version mappings fetched", rows)
	}
}

func GetVersionMappingHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		m, err := mappings.GetMapping(r.Context(), id)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Version mapping fetched", m)
	}
}

// CreateVersionMappingHandler handles POST /api/v1/admin/mobile-apps/{app_id}/version-mappings.
// mobile_version_code is derived; a value in the body is ignored.
func CreateVersionMappingHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		appID, ok := urlParamID(w, r, initTime, "app_id")
		if !ok {
			return
		}
		var req dtos.VersionMappingReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		m, err := mappings.CreateMapping(r.Context(), appID, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Version mapping created", m, http.StatusCreated)
	}
}

func UpdateVersionMappingHandler(mappings VersionMappingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		var req dtos.VersionMappingReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		m, err := mappings.UpdateMapping(r.Context(), id, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Version mapping updated", m)
	}
}

// VersionCheckHandler handles POST /api/v1/mobile/version-check
func VersionCheckHandler(checker VersionChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.VersionCheckReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		if req.MobileAppID == 0 {
			common.RespondValidation(w, initTime, constants.MsgValidationFailed,
				map[string]string{"mobile_app_id": "is required"})
			return
		}

		res, err := checker.Evaluate(r.Context(), req.MobileAppID, strings.TrimSpace(req.MobileVersion), req.MobileVersionCode)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Version checked", res)
	}
}
