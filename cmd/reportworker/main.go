package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/delivery"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/repository"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * create logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * create mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// make sure the mail server is actually reachable before consuming
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
		return
	}

	deliverer := delivery.NewDeliverer(cfg, client)

	/**********************************************
	 * connect to redis (busy flag)
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	limiter := repository.NewReportLimiter(cfg, rdb)

	/**********************************************
	 * connect to rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		domain.ReportQueueName, // queue name
		true,                   // durable
		false,                  // not auto-deleted while no consumer is attached
		false,                  // not exclusive
		false,                  // wait for the broker to confirm the declare
		nil,                    // no extra arguments
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag assigned by the broker
		false,  // manual ack
		false,  // not exclusive
		false,  // no-local is unsupported by rabbitmq, must be false
		false,  // wait for the broker's response
		nil,    // no extra arguments
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("received report job", slog.Int("bytes", len(msg.Body)))

				job := domain.ReportJob{}
				if err := json.Unmarshal(msg.Body, &job); err != nil {
					logger.Error("failed to decode report job", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					releaseBusyFlag(limiter)
					continue
				}

				if err := deliverer.Deliver(job); err != nil {
					logger.Error("failed to deliver report", slog.String("to", job.To), slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					releaseBusyFlag(limiter)
					continue
				}

				logger.Info("report delivered", slog.String("to", job.To), slog.String("weekStart", job.Report.WeekStart.Format("2006-01-02")))
				_ = msg.Ack(false)
				releaseBusyFlag(limiter)
			}
		}
	}()

	logger.Info("waiting for report jobs... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down report worker...")
	cancel()
	wg.Wait()
	slog.Info("report worker shut down successfully")
}

func releaseBusyFlag(limiter *repository.ReportLimiter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := limiter.Release(ctx); err != nil {
		slog.Error("failed to release report busy flag", slog.String("error", err.Error()))
	}
}
