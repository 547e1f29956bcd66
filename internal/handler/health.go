package handler

import (
	"net/http"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	h.successResponse(w, r, http.StatusOK, "ok", nil)
}
