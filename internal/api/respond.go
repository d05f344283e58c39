package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status by its code and answers
// the standard JSON error shape. The message is the user-facing
// message, never the wrapped internals.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if stderrors.Is(err, store.ErrNotFound) {
		code = errors.ErrCodeNotFound
	}

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeConfig, errors.ErrCodeData:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorBody{Error: apiError{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// writeErrorMessage answers a literal code/message pair without an
// underlying error value.
func writeErrorMessage(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, errorBody{Error: apiError{Code: string(code), Message: message}})
}
