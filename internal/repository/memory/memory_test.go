package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/quote"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

var (
	_ repository.QuoteSessionRepository = (*SessionRepository)(nil)
	_ repository.SubmissionRepository   = (*SubmissionRepository)(nil)
)

// --- sessions ---

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	ctx := context.Background()

	s := domain.NewQuoteSession("sess-1", time.Now())
	s.State = quote.State{ProjectType: catalog.ProjectWebsite, SubTypeID: "vitrine", Options: []string{"seo"}}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, s.State, got.State)

	got.State.Options[0] = "mutated"
	again, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "seo", again.State.Options[0], "callers get a copy")

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	_, err = repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(2 * time.Hour)
	repo.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewQuoteSession("old", now)))

	now = now.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, domain.NewQuoteSession("fresh", now)))
	_, err := repo.Get(ctx, "old")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Save(ctx, domain.NewQuoteSession("newer", now)))
	assert.Equal(t, 2, repo.Len())
}

// --- submissions ---

func submission(id string, status string, createdAt time.Time) *domain.ContactSubmission {
	return &domain.ContactSubmission{
		ID:          id,
		Kind:        domain.SubmissionKindMessage,
		Name:        "Ada",
		Email:       "ada@example.com",
		Message:     "Hello",
		Status:      status,
		MaxAttempts: domain.DefaultMaxAttempts,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestSubmissionRepository_CRUD(t *testing.T) {
	repo := NewSubmissionRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	s := submission("sub-1", domain.SubmissionStatusPending, now)
	require.NoError(t, repo.Create(ctx, s))

	err := repo.Create(ctx, s)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	s.MarkSent("log", "log-1", now)
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusSent, got.Status)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.Update(ctx, submission("missing", domain.SubmissionStatusPending, now))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmissionRepository_List(t *testing.T) {
	repo := NewSubmissionRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		status := domain.SubmissionStatusSent
		if i%2 == 0 {
			status = domain.SubmissionStatusFailed
		}
		require.NoError(t, repo.Create(ctx, submission(fmt.Sprintf("sub-%d", i), status, base.Add(time.Duration(i)*time.Minute))))
	}

	page, total, err := repo.List(ctx, repository.SubmissionFilter{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "sub-4", page[0].ID, "newest first")
	assert.Equal(t, "sub-3", page[1].ID)

	failed, total, err := repo.List(ctx, repository.SubmissionFilter{Status: domain.SubmissionStatusFailed}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, failed, 3)

	empty, total, err := repo.List(ctx, repository.SubmissionFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
