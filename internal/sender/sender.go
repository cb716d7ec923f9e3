// Package sender delivers rendered contact emails through a provider.
package sender

import (
	"context"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
)

// Sender delivers one email and returns the provider's message id, if any.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *domain.EmailMessage) (string, error)
}
