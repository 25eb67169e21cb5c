package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"quote-desk/domain"
	"quote-desk/service"
)

type UserHandler struct {
	service *service.UserService
	logger  *zap.Logger
}

func NewUserHandler(s *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decodeJSON(w, r, &u) {
		return
	}
	created, err := h.service.Create(r.Context(), u)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies only the whitelisted fields; id and unknown keys in the
// body are ignored.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var patch domain.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	u, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		fail(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.service.Export(r.Context())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeCSV(w, name, data)
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
