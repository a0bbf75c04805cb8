package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
)

// Start starts the worker
func (m *Mailer) Start(ctx context.Context) error {
	if m.ctx != nil && m.cancel != nil {
		return fmt.Errorf("Mailer already started")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.worker(m.ctx)
	return nil
}

// Stop stops the worker gracefully
func (m *Mailer) Stop() error {
	if m.cancel == nil {
		return fmt.Errorf("Mailer already stopped or not started")
	}

	m.cancel() // This will cancel the context used by the worker
	<-m.done
	m.cancel = nil
	return nil
}

func (m *Mailer) worker(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case out := <-m.queue:
			if !m.deliver(ctx, out) {
				return
			}
		case <-ctx.Done():
			if n := len(m.queue); n > 0 {
				slog.Default().WarnContext(ctx, "mailer stopped with unsent mails",
					slog.Int("count", n),
				)
			}
			return
		}
	}
}

// deliver sends out, waiting out the provider's rate limit between attempts.
// It returns false once ctx is done.
func (m *Mailer) deliver(ctx context.Context, out *outgoing) bool {
	for {
		out.attempts++
		err := m.send(ctx, out.msg)
		if err == nil {
			return true
		}
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("err", err.Error()),
			slog.String("subject", out.msg.Subject),
			slog.Int("attempt", out.attempts),
		)
		if !errors.Is(err, gerr.MailApiLimitReached) || out.attempts >= maxAttempts {
			return true
		}

		t := time.NewTimer(m.c.WorkerInterval)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return false
		}
	}
}
