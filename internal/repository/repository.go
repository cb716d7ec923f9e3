package repository

import (
	"context"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
)

// QuoteSessionRepository stores the selection of live simulator views.
// Implementations expire idle sessions after their TTL.
type QuoteSessionRepository interface {
	// Get returns the session or an ErrNotFound error.
	Get(ctx context.Context, id string) (*domain.QuoteSession, error)

	// Save creates or replaces the session and refreshes its TTL.
	Save(ctx context.Context, session *domain.QuoteSession) error

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error
}

// SubmissionFilter narrows a submission listing.
type SubmissionFilter struct {
	// Status keeps only submissions in this status when set.
	Status string
}

// SubmissionRepository records contact submissions and their delivery state.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.ContactSubmission) error

	// GetByID returns the submission or an ErrNotFound error.
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)

	Update(ctx context.Context, s *domain.ContactSubmission) error

	// List returns a page of submissions, newest first, and the total count
	// matching the filter.
	List(ctx context.Context, filter SubmissionFilter, offset, limit int) ([]domain.ContactSubmission, int, error)
}
