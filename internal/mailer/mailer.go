package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Mailer is the outbound mail collaborator. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP
// endpoint is configured.
type LogMailer struct{}

var _ Mailer = (*LogMailer)(nil)

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	zap.S().Named("mailer").Infow("mail not sent, no SMTP endpoint configured",
		"to", to,
		"subject", subject,
		"bytes", len(body),
	)
	return nil
}
