package domain

import (
	"time"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/quote"
)

// DefaultSessionTTL expires quote sessions abandoned by the browser.
const DefaultSessionTTL = 2 * time.Hour

// QuoteSession is the server-side home of one simulator view's selection.
type QuoteSession struct {
	ID        string      `json:"id"`
	State     quote.State `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewQuoteSession returns an Empty session.
func NewQuoteSession(id string, now time.Time) *QuoteSession {
	return &QuoteSession{
		ID:        id,
		State:     quote.State{Options: []string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
