package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

// SubmissionRepository keeps contact submissions in memory. Records are lost
// on restart.
type SubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[string]domain.ContactSubmission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{submissions: make(map[string]domain.ContactSubmission)}
}

func (r *SubmissionRepository) Create(_ context.Context, s *domain.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[s.ID]; ok {
		return apperrors.Conflict("contact submission " + s.ID + " already exists")
	}
	r.submissions[s.ID] = *s
	return nil
}

func (r *SubmissionRepository) GetByID(_ context.Context, id string) (*domain.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions[id]
	if !ok {
		return nil, apperrors.NotFound("contact submission", id)
	}
	return &s, nil
}

func (r *SubmissionRepository) Update(_ context.Context, s *domain.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[s.ID]; !ok {
		return apperrors.NotFound("contact submission", s.ID)
	}
	r.submissions[s.ID] = *s
	return nil
}

func (r *SubmissionRepository) List(_ context.Context, filter repository.SubmissionFilter, offset, limit int) ([]domain.ContactSubmission, int, error) {
	r.mu.RLock()
	matched := make([]domain.ContactSubmission, 0, len(r.submissions))
	for _, s := range r.submissions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		matched = append(matched, s)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []domain.ContactSubmission{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}
