package handler

import (
	"errors"
	"net/http"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	h.successResponse(w, r, http.StatusOK, "", employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req domain.EmployeeInput
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Employee created successfully", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req domain.EmployeeInput
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Employee updated successfully", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Employee deleted successfully", nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.notFound(w, r, err)
	case errors.As(err, &verr):
		h.badRequest(w, r, verr)
	default:
		h.internalServerError(w, r, err)
	}
}
