package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/rs/zerolog/log"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeValidation:         http.StatusBadRequest,
	apperr.CodeDuplicateEmail:     http.StatusConflict,
	apperr.CodeInvalidCredentials: http.StatusUnauthorized,
	apperr.CodeMissingToken:       http.StatusUnauthorized,
	apperr.CodeInvalidToken:       http.StatusForbidden,
	apperr.CodeNotFound:           http.StatusNotFound,
	apperr.CodeForbidden:          http.StatusForbidden,
	apperr.CodeStore:              http.StatusInternalServerError,
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an application error to its HTTP status and a
// {message, code} body. Unexpected errors surface as a generic 500 with
// the store_error code; their details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) && code != apperr.CodeStore {
		message = appErr.Message
	}

	writeJSON(w, status, map[string]string{
		"message": message,
		"code":    string(code),
	})
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter) {
	writeError(w, apperr.Validation("invalid request body"))
}

// logError logs a handler failure at a level matching its severity. Client
// errors are expected traffic and log as warnings.
func logError(err error, msg string) {
	if apperr.CodeOf(err) == apperr.CodeStore {
		log.Error().Err(err).Msg(msg)
		return
	}
	log.Warn().Err(err).Msg(msg)
}
