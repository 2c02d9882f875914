package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ssolovyeva/tripkeeper/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorPayload is the body of every non-2xx response: {"error": "..."}.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError maps service sentinels onto HTTP statuses. Internal errors are
// never echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorPayload{Error: "unauthorized"})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorPayload{Error: "already exists"})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Error: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: "internal error"})
	}
}
