package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhi221112/weekend-denso/internal/common"
)

// envelope is the uniform response body. Data is omitted when empty so
// failures stay compact.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondError maps service errors onto HTTP status codes. Unknown errors
// become opaque 500s; their detail goes to the log, not the client.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, common.ErrInsufficientRights),
		errors.Is(err, common.ErrNoSupplierMapping),
		errors.Is(err, common.ErrLockPolicyDisabled):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrTagNotFound),
		errors.Is(err, common.ErrLockTargetNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, common.ErrNoResult):
		status = http.StatusBadGateway
		msg = err.Error()
	}

	respondJSON(w, status, envelope{Success: false, Message: msg})
}

// decodeJSON reads the request body into dst, refusing unknown fields so
// client typos surface as 400s instead of silently dropped parameters.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return common.ErrorValidation
	}
	return nil
}
