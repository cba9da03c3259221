// Package comm is the seam to the physical delivery services. The core's
// responsibility ends at code generation and storage; these collaborators
// carry the message the rest of the way.
package comm

import (
	"context"
	"log/slog"
)

// Sender delivers one-time codes over a physical channel.
type Sender interface {
	SendEmailCode(ctx context.Context, email, code string) error
	SendSMSCode(ctx context.Context, phone, code string) error
}

// LogSender is the development Sender: it records that a delivery would have
// happened without leaking the code itself above debug level.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmailCode(ctx context.Context, email, code string) error {
	s.logger.InfoContext(ctx, "email code delivery skipped", "email", email)
	s.logger.DebugContext(ctx, "email code", "email", email, "code", code)
	return nil
}

func (s *LogSender) SendSMSCode(ctx context.Context, phone, code string) error {
	s.logger.InfoContext(ctx, "sms code delivery skipped", "phone", phone)
	s.logger.DebugContext(ctx, "sms code", "phone", phone, "code", code)
	return nil
}
