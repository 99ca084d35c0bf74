package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
)

var errBadRequestBody = errors.New("invalid request body")

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// statusFor maps a service error onto an HTTP status and a client-safe body.
func statusFor(err error) (int, errorResponse) {
	var resp errorResponse
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}

	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		resp.Error = common.ErrDuplicateUsername.Error()
		return http.StatusConflict, resp
	case errors.Is(err, common.ErrDuplicateEmail):
		resp.Error = common.ErrDuplicateEmail.Error()
		return http.StatusConflict, resp
	case fe != nil:
		resp.Error = fe.Err.Error()
		return http.StatusBadRequest, resp
	case errors.Is(err, errBadRequestBody):
		resp.Error = err.Error()
		return http.StatusBadRequest, resp
	case errors.Is(err, common.ErrAuthenticationFailed):
		resp.Error = common.ErrAuthenticationFailed.Error()
		return http.StatusUnauthorized, resp
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		resp.Error = common.ErrorUnauthorized.Error()
		return http.StatusUnauthorized, resp
	case errors.Is(err, common.ErrorForbidden):
		resp.Error = common.ErrorForbidden.Error()
		return http.StatusForbidden, resp
	case errors.Is(err, common.ErrorNotFound):
		resp.Error = common.ErrorNotFound.Error()
		return http.StatusNotFound, resp
	default:
		resp.Error = common.ErrorInternal.Error()
		return http.StatusInternalServerError, resp
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, resp := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
