package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/attendance"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
)

// Publisher is the part of amqp.Channel used to enqueue report jobs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ReportLimiter is the busy flag around report generation.
type ReportLimiter interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	service    *attendance.Service
	publisher  Publisher
	limiter    ReportLimiter
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, service *attendance.Service, publisher Publisher, limiter ReportLimiter) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		service:    service,
		publisher:  publisher,
		limiter:    limiter,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/workers", func(r chi.Router) {
		r.Get("/", h.GetAllWorkers)
		r.Post("/", h.CreateWorker)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.DeleteWorker)
			r.Post("/attendance/{day}", h.ToggleAttendance)
		})
	})

	h.Mux.Get("/attendance", h.GetAllAttendance)
	h.Mux.Get("/summary", h.GetSummary)
	h.Mux.Post("/reports", h.GenerateReport)
	h.Mux.Delete("/data", h.ClearAllData)
}
