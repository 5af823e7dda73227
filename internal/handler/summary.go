package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/report"
)

// GetSummary backs the settings panel: recipient, worker count, the current
// week range and the total present days.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	weekStart, weekEnd := report.WeekWindow(time.Now())

	h.successResponse(w, r, "summary retrieved", map[string]any{
		"recipient":        h.config.Email.Recipient,
		"workerCount":      len(h.service.Workers()),
		"weekStart":        weekStart.Format("2006-01-02"),
		"weekEnd":          weekEnd.Format("2006-01-02"),
		"totalPresentDays": h.service.TotalPresentDays(),
	})
}

// ClearAllData wipes both collections and their persisted entries. The
// confirm field stands in for the UI's confirmation step; without it the
// request is rejected.
func (h *Handler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirm bool `json:"confirm" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			h.errorResponse(w, r, "confirmation required")
			return
		}
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.service.ClearAllData(r.Context())
	h.successResponse(w, r, "all data cleared", nil)
}
