package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/event"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/pagination"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/validator"
)

// ContactConfig addresses the relayed emails.
type ContactConfig struct {
	From string
	To   []string
	// EmailLocale is the language of the email chrome (subject, headings).
	EmailLocale i18n.Locale
	MaxAttempts int
}

// SummaryRenderer renders the quote summary of a stored session.
type SummaryRenderer interface {
	Summary(ctx context.Context, id string, l i18n.Locale) (string, error)
}

// ContactService relays contact and quote requests by email and records
// every submission.
type ContactService struct {
	repo     repository.SubmissionRepository
	quotes   SummaryRenderer
	sender   sender.Sender
	producer *event.Producer
	cfg      ContactConfig
	logger   *slog.Logger
	nowFunc  func() time.Time
}

// NewContactService creates a contact service. A nil sender means no email
// provider is configured and every submission is refused.
func NewContactService(
	repo repository.SubmissionRepository,
	quotes SummaryRenderer,
	snd sender.Sender,
	producer *event.Producer,
	cfg ContactConfig,
	logger *slog.Logger,
) *ContactService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = domain.DefaultMaxAttempts
	}
	if cfg.EmailLocale == "" {
		cfg.EmailLocale = i18n.Default
	}
	return &ContactService{
		repo:     repo,
		quotes:   quotes,
		sender:   snd,
		producer: producer,
		cfg:      cfg,
		logger:   logger,
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name           string
	Email          string
	Message        string
	QuoteSummary   string
	QuoteSessionID string
	Locale         i18n.Locale
}

// Submit validates the input, records it and sends the email. The returned
// submission is set even when delivery fails.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactSubmission, error) {
	l := in.Locale
	if l == "" {
		l = i18n.Default
	}

	if s.sender == nil {
		s.logger.ErrorContext(ctx, "no email provider configured")
		return nil, apperrors.NotConfigured(i18n.T(l, i18n.KeyContactNotConfigured))
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, apperrors.InvalidInput(i18n.T(l, i18n.KeyContactNameEmail))
	}

	summary := in.QuoteSummary
	if summary == "" && in.QuoteSessionID != "" {
		rendered, err := s.quotes.Summary(ctx, in.QuoteSessionID, l)
		if err != nil {
			return nil, fmt.Errorf("render quote summary: %w", err)
		}
		summary = rendered
	}

	if summary == "" && strings.TrimSpace(in.Message) == "" {
		return nil, apperrors.InvalidInput(i18n.T(l, i18n.KeyContactMessageRequired))
	}
	if !validator.EmailShape(email) {
		return nil, apperrors.InvalidInput(i18n.T(l, i18n.KeyContactEmailFormat))
	}

	now := s.nowFunc()
	sub := &domain.ContactSubmission{
		ID:             uuid.New().String(),
		Kind:           domain.SubmissionKindMessage,
		Name:           name,
		Email:          email,
		Message:        in.Message,
		QuoteSummary:   summary,
		QuoteSessionID: in.QuoteSessionID,
		Locale:         string(l),
		Status:         domain.SubmissionStatusPending,
		MaxAttempts:    s.cfg.MaxAttempts,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if sub.IsQuoteRequest() {
		sub.Kind = domain.SubmissionKindQuote
	}
	sub.Subject = subjectFor(sub, s.cfg.EmailLocale)

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}

	return sub, s.deliver(ctx, sub)
}

// GetSubmission returns one recorded submission.
func (s *ContactService) GetSubmission(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact submission: %w", err)
	}
	return sub, nil
}

// ListSubmissions returns a page of submissions, optionally filtered by
// status, and the total count.
func (s *ContactService) ListSubmissions(ctx context.Context, status string, page pagination.Params) ([]domain.ContactSubmission, int, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status %q: must be one of %s", status, strings.Join(domain.ValidStatuses(), ", ")))
	}

	subs, total, err := s.repo.List(ctx, repository.SubmissionFilter{Status: status}, page.Offset(), page.Limit())
	if err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	return subs, total, nil
}

// RetrySubmission sends a failed submission again. Resending is safe: the
// email only ever reaches the site owner.
func (s *ContactService) RetrySubmission(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact submission for retry: %w", err)
	}

	switch {
	case sub.Status == domain.SubmissionStatusSent:
		return nil, apperrors.Conflict("submission has already been sent")
	case sub.Status != domain.SubmissionStatusFailed:
		return nil, apperrors.Conflict("submission delivery is still in progress")
	case !sub.CanRetry():
		return nil, apperrors.Conflict(fmt.Sprintf("submission reached the maximum of %d delivery attempts", sub.MaxAttempts))
	}

	if s.sender == nil {
		return nil, apperrors.NotConfigured(i18n.T(i18n.ParseOrDefault(sub.Locale), i18n.KeyContactNotConfigured))
	}

	return sub, s.deliver(ctx, sub)
}

// deliver sends the submission and records the outcome. The returned error
// carries the submitter's localized message.
func (s *ContactService) deliver(ctx context.Context, sub *domain.ContactSubmission) error {
	l := i18n.ParseOrDefault(sub.Locale)

	html, text, err := renderEmail(sub, s.cfg.EmailLocale)
	if err != nil {
		return apperrors.Internal(err)
	}

	sub.Attempts++
	id, sendErr := s.sender.Send(ctx, &domain.EmailMessage{
		From:    s.cfg.From,
		To:      s.cfg.To,
		ReplyTo: sub.Email,
		Subject: sub.Subject,
		HTML:    html,
		Text:    text,
	})

	provider := s.sender.Name()
	if sendErr != nil {
		sub.MarkFailed(provider, sendErr, s.nowFunc())
		contactDeliveriesTotal.WithLabelValues(sub.Kind, provider, domain.SubmissionStatusFailed).Inc()
		s.logger.ErrorContext(ctx, "failed to send contact email",
			slog.String("submission_id", sub.ID),
			slog.String("provider", provider),
			slog.Int("attempt", sub.Attempts),
			slog.String("error", sendErr.Error()),
		)
		s.saveOutcome(ctx, sub)
		if err := s.producer.PublishContactFailed(ctx, sub); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish contact.failed event",
				slog.String("submission_id", sub.ID),
				slog.String("error", err.Error()),
			)
		}
		return deliveryError(sendErr, l)
	}

	sub.MarkSent(provider, id, s.nowFunc())
	contactDeliveriesTotal.WithLabelValues(sub.Kind, provider, domain.SubmissionStatusSent).Inc()
	s.saveOutcome(ctx, sub)
	if err := s.producer.PublishContactSubmitted(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.submitted event",
			slog.String("submission_id", sub.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact email sent",
		slog.String("submission_id", sub.ID),
		slog.String("kind", sub.Kind),
		slog.String("provider", provider),
		slog.String("provider_id", id),
	)
	return nil
}

// saveOutcome persists the delivery state. The email has already left, so a
// storage failure is only logged.
func (s *ContactService) saveOutcome(ctx context.Context, sub *domain.ContactSubmission) {
	if err := s.repo.Update(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to update contact submission",
			slog.String("submission_id", sub.ID),
			slog.String("status", sub.Status),
			slog.String("error", err.Error()),
		)
	}
}

// deliveryError turns a sender error into the response shown to the
// submitter: a rejected provider configuration stays a 500, anything else is
// a 502.
func deliveryError(err error, l i18n.Locale) error {
	if errors.Is(err, apperrors.ErrNotConfigured) {
		appErr := apperrors.NotConfigured(i18n.T(l, i18n.KeyContactNotConfigured))
		appErr.Err = fmt.Errorf("%w: %w", apperrors.ErrNotConfigured, err)
		return appErr
	}
	return apperrors.BadGateway(i18n.T(l, i18n.KeyContactSendFailed), err)
}
