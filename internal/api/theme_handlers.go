package api

import (
	"errors"
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/dtos"
)

// multipart bodies carry form fields on top of the image itself
const multipartOverhead = 1 << 20

// ThemePagesHandler handles GET /api/v1/admin/themes/{theme_id}/pages
func ThemePagesHandler(themes ThemeLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		themeID, ok := urlParamID(w, r, initTime, "theme_id")
		if !ok {
			return
		}

		view, err := themes.Load(r.Context(), themeID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Theme pages fetched", view)
	}
}

// ComponentInlineUpdateHandler handles
// GET /admin/theme/assign-component/update?id&value|isChecked&fieldName
func ComponentInlineUpdateHandler(updater InlineUpdater) http.HandlerFunc {
	return inlineUpdateHandler(updater, constants.EntityThemeComponent)
}

// PageInlineUpdateHandler handles GET /admin/theme/page/inline-update?id&value&fieldName
func PageInlineUpdateHandler(updater InlineUpdater) http.HandlerFunc {
	return inlineUpdateHandler(updater, constants.EntityThemePage)
}

func inlineUpdateHandler(updater InlineUpdater, kind constants.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		req := parseInlineUpdateReq(r)
		id, err := common.ParseID(req.ID)
		if err != nil {
			common.RespondError(w, initTime, errors.New(constants.MsgInvalidID), constants.MsgInvalidID, http.StatusBadRequest)
			return
		}

		res, err := updater.UpdateField(r.Context(), kind, id, req.FieldName, req.Value, req.IsChecked)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Field updated", res)
	}
}

func parseInlineUpdateReq(r *http.Request) dtos.InlineUpdateReq {
	q := r.URL.Query()
	req := dtos.InlineUpdateReq{
		ID:        q.Get("id"),
		FieldName: q.Get("fieldName"),
		Value:     q.Get("value"),
	}
	if _, ok := q["isChecked"]; ok {
		v := q.Get("isChecked")
		req.IsChecked = &v
	}
	return req
}

// StaticImageUploadHandler handles POST /admin/theme/page/inline-image-upload
// with multipart fields theme_page_id and static_screen_image.
func StaticImageUploadHandler(uploader StaticImageUploader, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(multipartOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				common.RespondError(w, initTime, err, "Uploaded file is too large", http.StatusRequestEntityTooLarge)
				return
			}
			common.RespondError(w, initTime, errors.New(constants.MsgInvalidRequestBody), constants.MsgInvalidRequestBody, http.StatusBadRequest)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		pageID, err := common.ParseID(r.FormValue("theme_page_id"))
		if err != nil {
			common.RespondValidation(w, initTime, constants.MsgValidationFailed,
				map[string]string{"theme_page_id": "is required"})
			return
		}

		file, _, err := r.FormFile(constants.FieldStaticScreenImage)
		if err != nil {
			common.RespondValidation(w, initTime, constants.MsgValidationFailed,
				map[string]string{constants.FieldStaticScreenImage: "is required"})
			return
		}
		defer file.Close()

		res, err := uploader.Upload(r.Context(), pageID, file)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Static image uploaded", res)
	}
}

// DeletePageHandler handles DELETE /admin/theme/page/{id}
func DeletePageHandler(pages PageDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := urlParamID(w, r, initTime, "id")
		if !ok {
			return
		}

		if err := pages.DeletePage(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Theme page deleted", map[string]uint{"theme_page_id": id})
	}
}
