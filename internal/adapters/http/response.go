package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viralforge/courierdesk/internal/application"
	"github.com/viralforge/courierdesk/internal/contracts"
	"github.com/viralforge/courierdesk/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, contracts.SuccessResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, contracts.ErrorResponse{Status: "error", Code: code, Message: message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var rejection *application.UpstreamRejection
	if errors.As(err, &rejection) {
		writeJSON(w, http.StatusBadRequest, contracts.ErrorResponse{
			Status:  "error",
			Code:    "UPSTREAM_REJECTED",
			Message: rejection.Error(),
			Errors:  rejection.Errors,
		})
		return
	}
	status, code := mapDomainError(err)
	writeError(w, status, code, err.Error())
}

func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidPhone):
		return http.StatusBadRequest, "INVALID_PHONE"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "CREDENTIALS_REQUIRED"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "TOKEN_EXPIRED"
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "TOKEN_REQUIRED"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrExtractorUnavailable):
		return http.StatusServiceUnavailable, "EXTRACTOR_UNAVAILABLE"
	case errors.Is(err, domain.ErrDependencyUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
