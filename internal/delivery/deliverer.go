// Package delivery turns a report job into a spreadsheet file and gets it to
// the recipient: email first, share outbox as the fallback.
package delivery

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/export"
	"github.com/wneessen/go-mail"
)

// MailSender is the part of mail.Client the deliverer needs.
type MailSender interface {
	DialAndSend(msgs ...*mail.Msg) error
}

type Deliverer struct {
	cfg    *config.Config
	sender MailSender
}

func NewDeliverer(cfg *config.Config, sender MailSender) *Deliverer {
	return &Deliverer{
		cfg:    cfg,
		sender: sender,
	}
}

// Deliver renders the workbook, writes it under the documents directory and
// emails it. A mail failure is recovered by copying the file into the outbox
// directory; only a failure of that fallback is returned. Render and write
// failures are returned as-is since there is nothing to fall back to.
func (d *Deliverer) Deliver(job domain.ReportJob) error {
	f, err := export.Render(job.Report, d.cfg.Report.SheetTitle)
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}

	path, err := export.WriteFile(f, d.cfg.Report.DocumentsDir, job.Report.WeekStart)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	if err := d.send(job, path); err != nil {
		slog.Error("failed to email report, falling back to outbox", "to", job.To, "error", err)
		if err := d.copyToOutbox(path); err != nil {
			return fmt.Errorf("outbox fallback: %w", err)
		}
	}

	return nil
}

func (d *Deliverer) send(job domain.ReportJob, path string) error {
	weekOf := job.Report.WeekStart.Format("2006-01-02")
	generated := job.Report.GeneratedAt.Format("2006-01-02 15:04:05")

	msg := mail.NewMsg()
	if err := msg.From(d.cfg.Email.SMTP.Username); err != nil {
		return err
	}
	if err := msg.To(job.To); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Weekly Attendance Report - Week of %s", weekOf))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Please find attached the weekly attendance report for the week of %s.\n\nGenerated on: %s\n",
		weekOf, generated,
	))
	msg.AttachFile(path)

	return d.sender.DialAndSend(msg)
}

func (d *Deliverer) copyToOutbox(path string) error {
	if err := os.MkdirAll(d.cfg.Report.OutboxDir, 0o755); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.cfg.Report.OutboxDir, filepath.Base(path)))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
