package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
)

func (h *Handler) GetAllAttendance(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "attendance retrieved", h.service.Records())
}

func (h *Handler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")

	day, ok := domain.ParseWeekday(chi.URLParam(r, "day"))
	if !ok {
		h.errorResponse(w, r, "invalid day of week")
		return
	}

	h.service.ToggleAttendance(workerID, day)
	h.successResponse(w, r, "attendance toggled", nil)
}
