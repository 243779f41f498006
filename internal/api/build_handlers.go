package api

import (
	"mime"
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/models/dtos"
)

// BuildNotificationHandler handles POST /api/v1/build/notification. The
// build pipeline posts either JSON or a urlencoded form.
func BuildNotificationHandler(builds BuildNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BuildNotificationReq
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/json" {
			if !decodeJSON(w, r, initTime, &req) {
				return
			}
		} else {
			req = dtos.BuildNotificationReq{
				SiteURL:                    r.FormValue("site_url"),
				LicenseKey:                 r.FormValue("license_key"),
				AndroidNotificationContent: r.FormValue("android_notification_content"),
				IOSNotificationContent:     r.FormValue("ios_notification_content"),
			}
		}

		res, err := builds.Notify(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Build notification processed", res)
	}
}

// ListBuildDomainsHandler handles GET /api/v1/admin/build-domains
func ListBuildDomainsHandler(builds BuildNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rows, err := builds.ListDomains(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Build domains fetched", rows)
	}
}

// UpdatePushURLsHandler handles PUT /api/v1/admin/build-domains/{id}/push-urls
func UpdatePushURLsHandler(builds BuildNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}
		var req dtos.PushURLsReq
		if !decodeJSON(w, r, initTime, &req) {
			return
		}
		if err := builds.UpdatePushURLs(r.Context(), id, req); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Push urls updated", nil)
	}
}
