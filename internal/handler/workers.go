package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/attendance"
)

func (h *Handler) GetAllWorkers(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "workers retrieved", h.service.Workers())
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,min=2,max=50"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	// trim before validating so "  a  " fails the min check
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// uniqueness is an orchestration concern, checked before the service runs
	if h.service.NameExists(req.Name) {
		h.errorResponse(w, r, "a worker with this name already exists")
		return
	}

	worker, err := h.service.AddWorker(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNameTooShort):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker added", worker)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")
	h.service.RemoveWorker(workerID)
	h.successResponse(w, r, "worker removed", nil)
}
