package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/services"

	"github.com/go-chi/chi/v5"
)

// respondServiceError maps service errors onto status codes. Anything that
// is not a known service error is a 500 and its text stays in the logs.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		common.RespondValidation(w, initTime, constants.MsgValidationFailed, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		common.RespondError(w, initTime, errors.New(constants.MsgNotFound), constants.MsgNotFound, http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		common.RespondError(w, initTime, errors.New(constants.MsgConflict), constants.MsgConflict, http.StatusConflict)
	default:
		common.RespondError(w, initTime, err, constants.MsgInternalError, http.StatusInternalServerError)
	}
}

// urlParamID reads a positive id from a chi URL parameter and writes a 400
// when it is missing or malformed.
func urlParamID(w http.ResponseWriter, r *http.Request, initTime time.Time, name string) (uint, bool) {
	id, err := common.ParseID(chi.URLParam(r, name))
	if err != nil {
		common.RespondError(w, initTime, errors.New(constants.MsgInvalidID), constants.MsgInvalidID, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, initTime time.Time, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		common.RespondError(w, initTime, errors.New(constants.MsgInvalidRequestBody), constants.MsgInvalidRequestBody, http.StatusBadRequest)
		return false
	}
	return true
}
