package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/report"
)

// GenerateReport assembles the weekly report from the current attendance
// snapshot and enqueues it for rendering and delivery. The busy flag keeps a
// second request from piling a duplicate job on top of one in flight.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string `json:"recipient" validate:"omitempty,email"`
	}

	// the body is optional; an empty one means "use the configured recipient"
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	records := h.service.Records()
	if len(records) == 0 {
		h.errorResponse(w, r, "no attendance data, add workers and mark attendance before generating a report")
		return
	}

	acquired, err := h.limiter.TryAcquire(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !acquired {
		h.errorResponse(w, r, "a report is already being generated")
		return
	}

	now := time.Now()
	weekStart, weekEnd := report.WeekWindow(now)
	rows := report.BuildRows(records)

	job := domain.ReportJob{
		To:     h.config.Email.Recipient,
		Report: report.Assemble(rows, weekStart, weekEnd, now),
	}
	if req.Recipient != "" {
		job.To = req.Recipient
	}

	jobData, err := json.Marshal(job)
	if err != nil {
		h.releaseLimiter(r)
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.publisher.PublishWithContext(
		ctx,
		"",
		domain.ReportQueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        jobData,
		},
	); err != nil {
		h.releaseLimiter(r)
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "report queued for delivery", map[string]any{
		"to":        job.To,
		"weekStart": weekStart.Format("2006-01-02"),
		"weekEnd":   weekEnd.Format("2006-01-02"),
	})
}

func (h *Handler) releaseLimiter(r *http.Request) {
	if err := h.limiter.Release(r.Context()); err != nil {
		slog.Error("failed to release report busy flag", "error", err)
	}
}
