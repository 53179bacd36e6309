// Package notify delivers best-effort notifications. Nothing here may block
// or fail the request that triggered a notification.
package notify

import (
	"context"

	applog "snapbook/internal/log"
)

// Sender is a synchronous notification backend.
type Sender interface {
	Notify(ctx context.Context, subject, message string) error
}

// LogSender writes notifications to the application log.
type LogSender struct{}

func NewLog() *LogSender { return &LogSender{} }

func (LogSender) Notify(_ context.Context, subject, message string) error {
	applog.Logger().WithField("subject", subject).WithField("message", message).Info("notify")
	return nil
}
