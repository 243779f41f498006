package common

import (
	"encoding/json"
	"net/http"
	"time"

	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response. Server errors never
// leak the underlying error text to the client.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if code < http.StatusInternalServerError && err != nil && err.Error() != "" {
		msg = err.Error()
	}
	if code >= http.StatusInternalServerError && err != nil {
		logging.Error("Request failed", "status", code, "error", err.Error())
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// RespondValidation sends a 422 with one message per offending field.
func RespondValidation(w http.ResponseWriter, initTime time.Time, message string, fields map[string]string) {
	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Errors:       fields,
	}

	writeJSON(w, http.StatusUnprocessableEntity, response)
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
