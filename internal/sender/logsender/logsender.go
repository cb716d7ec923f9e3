// Package logsender is the development sender: it logs emails instead of
// delivering them.
package logsender

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
)

// Sender logs every email and always succeeds.
type Sender struct {
	logger *slog.Logger
}

// NewSender creates a log sender.
func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

// Name returns the provider name.
func (s *Sender) Name() string {
	return "log"
}

// Send logs the email headers and text body.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	id := uuid.New().String()
	s.logger.InfoContext(ctx, "log sender: email not delivered",
		slog.String("provider_id", id),
		slog.Any("to", msg.To),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text),
	)
	return id, nil
}
