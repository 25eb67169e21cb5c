package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"quote-desk/catalog"
	"quote-desk/domain"
	"quote-desk/export"
	"quote-desk/repository"
	"quote-desk/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error    string                     `json:"error"`
	Messages []domain.ValidationMessage `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnknownProduct),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, export.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownTier),
		errors.Is(err, service.ErrUnknownAddOn),
		errors.Is(err, service.ErrParentNotSelected),
		errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, service.ErrInvalidQuote):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptySelection),
		errors.Is(err, service.ErrNotReady):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail maps err to a status and message. Internal errors are logged and
// never shown to the client.
func fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		logger.Error("request failed", zap.Error(err))
		msg = "internal error"
	case errors.Is(err, export.ErrNoData):
		msg = service.MsgNoReportData
	}
	writeError(w, status, msg)
}
