// Package worker turns disposition payloads into rendered notifications.
// It sits on the far side of the dispatcher boundary: its failures are logged
// and never reach the transition path.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"flock/internal/domain"
	"flock/internal/notify"
)

// Notice is a rendered notification ready for delivery.
type Notice struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers rendered notices. Email delivery infrastructure is an
// external collaborator; LogSender is the built-in default.
type Sender interface {
	Send(ctx context.Context, n Notice) error
}

// LogSender writes notices to the log instead of delivering them. Default in
// environments without a configured delivery collaborator.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, n Notice) error {
	s.Logger.InfoContext(ctx, "notification",
		"to", n.To,
		"subject", n.Subject,
		"body", n.Body,
	)
	return nil
}

// Worker consumes disposition payloads and sends one notice per payload.
type Worker struct {
	sender Sender
	logger *slog.Logger
}

func New(sender Sender, logger *slog.Logger) *Worker {
	return &Worker{sender: sender, logger: logger}
}

// Run drains the inbox until it closes or the context is cancelled.
// Used with the in-process channel dispatcher; the kafka consumer calls
// Handle directly.
func (w *Worker) Run(ctx context.Context, inbox <-chan notify.Payload) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-inbox:
			if !ok {
				return nil
			}
			if err := w.Handle(ctx, payload); err != nil {
				w.logger.ErrorContext(ctx, "notification send failed",
					"registration_id", payload.RegistrationID,
					"email", payload.Email,
					"error", err,
				)
			}
		}
	}
}

// Handle renders and sends the notice for one payload.
func (w *Worker) Handle(ctx context.Context, payload notify.Payload) error {
	return w.sender.Send(ctx, Render(payload))
}

// Render produces the notice text in the payload's domain vocabulary.
func Render(payload notify.Payload) Notice {
	d, ok := domain.ByKey(payload.Domain)
	if !ok {
		d = domain.Events
	}
	label := d.DispositionLabel(payload.Disposition)

	return Notice{
		To:      payload.Email,
		Subject: fmt.Sprintf("Your %s has been %s", d.Entity, label),
		Body: fmt.Sprintf("Hi %s,\n\nYour %s for %s %s has been %s.\n",
			payload.Name, d.Entity, d.SubjectLabel, payload.SubjectID, label),
	}
}
