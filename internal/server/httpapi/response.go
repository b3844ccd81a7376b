package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
)

// APIResponse is the JSON envelope every endpoint answers with.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status:  "error",
		Message: msg,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// statusForError maps domain sentinels to HTTP statuses. Everything
// unrecognized is an internal error; its details stay out of the response.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrEmailTaken), errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, common.ErrAdminAlreadySet),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, common.ErrInternal.Error())
		return
	}
	respondError(w, status, err.Error())
}
