package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/database"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

const submissionColumns = `id, kind, name, email, message, quote_summary, quote_session_id, locale,
	subject, status, provider, provider_id, last_error, attempts, max_attempts,
	sent_at, created_at, updated_at`

// SubmissionRepository implements repository.SubmissionRepository on
// PostgreSQL.
type SubmissionRepository struct {
	pool database.DBTX
}

func NewSubmissionRepository(pool database.DBTX) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.ContactSubmission) (err error) {
	query := `INSERT INTO contact_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	ctx, end := database.TraceQuery(ctx, "CreateSubmission", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Kind, s.Name, s.Email, s.Message, s.QuoteSummary, s.QuoteSessionID, s.Locale,
		s.Subject, s.Status, s.Provider, s.ProviderID, s.LastError, s.Attempts, s.MaxAttempts,
		s.SentAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (s *domain.ContactSubmission, err error) {
	query := `SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetSubmission", query)
	defer func() {
		if errors.Is(err, apperrors.ErrNotFound) {
			end(nil)
			return
		}
		end(err)
	}()

	s, err = scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("contact submission", id)
		}
		return nil, fmt.Errorf("get contact submission: %w", err)
	}
	return s, nil
}

// Update writes the delivery state. Identity and content columns are
// immutable once recorded.
func (r *SubmissionRepository) Update(ctx context.Context, s *domain.ContactSubmission) (err error) {
	query := `UPDATE contact_submissions
		SET status = $1, provider = $2, provider_id = $3, last_error = $4,
		    attempts = $5, sent_at = $6, updated_at = $7
		WHERE id = $8`

	ctx, end := database.TraceQuery(ctx, "UpdateSubmission", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		s.Status, s.Provider, s.ProviderID, s.LastError,
		s.Attempts, s.SentAt, s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact submission: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact submission", s.ID)
	}
	return nil
}

func (r *SubmissionRepository) List(ctx context.Context, filter repository.SubmissionFilter, offset, limit int) (_ []domain.ContactSubmission, _ int, err error) {
	query := `SELECT ` + submissionColumns + `, count(*) OVER() AS total_count
		FROM contact_submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	ctx, end := database.TraceQuery(ctx, "ListSubmissions", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, filter.Status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var total int
	submissions := make([]domain.ContactSubmission, 0)
	for rows.Next() {
		var s domain.ContactSubmission
		if err := rows.Scan(append(submissionFields(&s), &total)...); err != nil {
			return nil, 0, fmt.Errorf("scan contact submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contact submission rows: %w", err)
	}

	return submissions, total, nil
}

// Ping reports whether the database answers, for readiness checks.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	var one int
	return r.pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func submissionFields(s *domain.ContactSubmission) []any {
	return []any{
		&s.ID, &s.Kind, &s.Name, &s.Email, &s.Message, &s.QuoteSummary, &s.QuoteSessionID, &s.Locale,
		&s.Subject, &s.Status, &s.Provider, &s.ProviderID, &s.LastError, &s.Attempts, &s.MaxAttempts,
		&s.SentAt, &s.CreatedAt, &s.UpdatedAt,
	}
}

func scanSubmission(row pgx.Row) (*domain.ContactSubmission, error) {
	var s domain.ContactSubmission
	if err := row.Scan(submissionFields(&s)...); err != nil {
		return nil, err
	}
	return &s, nil
}
