package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"quote-desk/domain"
	"quote-desk/service"
)

type QuoteHandler struct {
	service *service.QuoteService
	logger  *zap.Logger
}

func NewQuoteHandler(s *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{service: s, logger: logger}
}

func (h *QuoteHandler) Price(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.service.Price(r.Context(), req)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, msgs, err := h.service.Create(r.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    service.MsgMissingFields,
			Messages: msgs,
		})
		return
	}
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func quoteFilter(r *http.Request) domain.QuoteFilter {
	q := r.URL.Query()
	return domain.QuoteFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		DateRange: q.Get("range"),
	}
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.List(r.Context(), quoteFilter(r))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (h *QuoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context(), quoteFilter(r))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *QuoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.service.Export(r.Context(), quoteFilter(r))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeCSV(w, name, data)
}

func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Convert(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
