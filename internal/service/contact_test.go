package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/event"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/pagination"
)

// --- Mock Repository ---

type mockSubmissionRepository struct {
	mock.Mock
}

func (m *mockSubmissionRepository) Create(ctx context.Context, s *domain.ContactSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactSubmission), args.Error(1)
}

func (m *mockSubmissionRepository) Update(ctx context.Context, s *domain.ContactSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubmissionRepository) List(ctx context.Context, filter repository.SubmissionFilter, offset, limit int) ([]domain.ContactSubmission, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]domain.ContactSubmission), args.Int(1), args.Error(2)
}

// --- Mock Sender ---

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockSender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

var _ sender.Sender = (*mockSender)(nil)

// --- Test Helpers ---

func testContactConfig() ContactConfig {
	return ContactConfig{
		From: "Portfolio Contact <onboarding@resend.dev>",
		To:   []string{"enzo@example.com"},
	}
}

func newTestContactService(repo *mockSubmissionRepository, snd sender.Sender, quotes SummaryRenderer) *ContactService {
	logger := newTestLogger()
	return NewContactService(repo, quotes, snd, event.NewProducer(nil, logger), testContactConfig(), logger)
}

func newMockSender(name string) *mockSender {
	s := new(mockSender)
	s.On("Name").Return(name)
	return s
}

// --- Submit ---

func TestSubmit_Message(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil)

	var sent *domain.EmailMessage
	snd.On("Send", ctx, mock.AnythingOfType("*domain.EmailMessage")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*domain.EmailMessage) }).
		Return("re_123", nil)

	sub, err := svc.Submit(ctx, ContactInput{
		Name:    " Ada ",
		Email:   "ada@example.com",
		Message: "Bonjour\n<script>alert(1)</script>",
		Locale:  i18n.French,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionKindMessage, sub.Kind)
	assert.Equal(t, domain.SubmissionStatusSent, sub.Status)
	assert.Equal(t, "re_123", sub.ProviderID)
	assert.Equal(t, "resend", sub.Provider)
	assert.Equal(t, 1, sub.Attempts)
	assert.Equal(t, domain.DefaultMaxAttempts, sub.MaxAttempts)
	assert.NotNil(t, sub.SentAt)

	require.NotNil(t, sent)
	assert.Equal(t, "[Portfolio] Nouveau message de Ada", sent.Subject)
	assert.Equal(t, "ada@example.com", sent.ReplyTo)
	assert.Equal(t, []string{"enzo@example.com"}, sent.To)
	assert.Contains(t, sent.HTML, "Nouveau message depuis le portfolio")
	assert.Contains(t, sent.HTML, "Bonjour<br>&lt;script&gt;")
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.Text, "Message:\nBonjour\n<script>alert(1)</script>")

	repo.AssertExpectations(t)
	snd.AssertExpectations(t)
}

func TestSubmit_QuoteFromSession(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("smtp")
	quotes := newTestQuoteService()
	svc := newTestContactService(repo, snd, quotes)
	ctx := context.Background()

	id := newSession(t, quotes)
	_, err := quotes.SelectProjectType(ctx, id, catalog.ProjectWebsite)
	require.NoError(t, err)

	repo.On("Create", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil)

	var sent *domain.EmailMessage
	snd.On("Send", ctx, mock.AnythingOfType("*domain.EmailMessage")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*domain.EmailMessage) }).
		Return("<id@smtp>", nil)

	sub, err := svc.Submit(ctx, ContactInput{
		Name:           "Ada",
		Email:          "ada@example.com",
		QuoteSessionID: id,
		Locale:         i18n.English,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionKindQuote, sub.Kind)
	assert.True(t, strings.HasPrefix(sub.QuoteSummary, "=== QUOTE SIMULATION ==="))
	assert.Equal(t, id, sub.QuoteSessionID)
	assert.Equal(t, "en", sub.Locale)

	require.NotNil(t, sent)
	assert.Equal(t, "[Portfolio] Simulation de devis - Ada", sent.Subject)
	assert.Contains(t, sent.HTML, "<h2>Nouvelle simulation de devis</h2>")
	assert.Contains(t, sent.HTML, "<pre style=")
	assert.NotContains(t, sent.HTML, "Message additionnel", "no extra message section without a message")
}

func TestSubmit_QuoteSummaryWithExtraMessage(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("log")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	var sent *domain.EmailMessage
	snd.On("Send", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*domain.EmailMessage) }).
		Return("x", nil)

	_, err := svc.Submit(ctx, ContactInput{
		Name:         "Ada",
		Email:        "ada@example.com",
		Message:      "line one\nline two",
		QuoteSummary: "=== SIMULATION DE DEVIS ===\nTotal",
	})
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Contains(t, sent.HTML, "<h3>Message additionnel</h3>")
	assert.Contains(t, sent.HTML, "line one<br>line two")
	assert.Contains(t, sent.Text, "Message additionnel\n\nline one\nline two")
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      ContactInput
		message string
	}{
		{"missing name", ContactInput{Email: "a@b.co", Message: "hi"}, "Nom et email requis"},
		{"blank email", ContactInput{Name: "Ada", Email: "  ", Message: "hi"}, "Nom et email requis"},
		{"missing message", ContactInput{Name: "Ada", Email: "a@b.co"}, "Message requis"},
		{"bad email", ContactInput{Name: "Ada", Email: "ada@example", Message: "hi"}, "Format d'email invalide"},
		{"name checked before email format", ContactInput{Email: "nope"}, "Nom et email requis"},
		{"english", ContactInput{Name: "Ada", Email: "a@b.co", Locale: i18n.English}, "Message is required"},
		{"bad email with summary", ContactInput{Name: "Ada", Email: "a b@c.de", QuoteSummary: "x"}, "Format d'email invalide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockSubmissionRepository)
			snd := newMockSender("resend")
			svc := newTestContactService(repo, snd, nil)

			_, err := svc.Submit(context.Background(), tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.message, appErr.Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_NotConfigured(t *testing.T) {
	repo := new(mockSubmissionRepository)
	svc := newTestContactService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Service email non configuré", appErr.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_SendFailure(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Update", ctx, mock.MatchedBy(func(s *domain.ContactSubmission) bool {
		return s.Status == domain.SubmissionStatusFailed
	})).Return(nil)
	snd.On("Send", ctx, mock.Anything).Return("", apperrors.BadGateway("resend: outage", errors.New("503")))

	sub, err := svc.Submit(ctx, ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Erreur lors de l'envoi", appErr.Message)

	require.NotNil(t, sub)
	assert.Equal(t, domain.SubmissionStatusFailed, sub.Status)
	assert.Equal(t, 1, sub.Attempts)
	assert.Contains(t, sub.LastError, "resend: outage")
	repo.AssertExpectations(t)
}

func TestSubmit_ProviderRejectsConfiguration(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	snd.On("Send", ctx, mock.Anything).Return("", apperrors.NotConfigured("resend: API key is invalid"))

	_, err := svc.Submit(ctx, ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi", Locale: i18n.English})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Email service is not configured", appErr.Message)
}

func TestSubmit_CreateError(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Submit(ctx, ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create contact submission")
	snd.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmit_UpdateErrorIsNotFatal(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))
	snd.On("Send", ctx, mock.Anything).Return("re_1", nil)

	sub, err := svc.Submit(ctx, ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusSent, sub.Status)
}

func TestSubmit_UnknownQuoteSession(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, newTestQuoteService())

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Ada", Email: "ada@example.com", QuoteSessionID: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubjectFor_StripsLineBreaks(t *testing.T) {
	s := &domain.ContactSubmission{Name: "Ada\r\nBcc: victim@example.com"}
	assert.Equal(t, "[Portfolio] Nouveau message de Ada  Bcc: victim@example.com", subjectFor(s, i18n.French))
}

// --- Admin ---

func failedSubmission() *domain.ContactSubmission {
	return &domain.ContactSubmission{
		ID:          "sub-1",
		Kind:        domain.SubmissionKindMessage,
		Name:        "Ada",
		Email:       "ada@example.com",
		Message:     "hi",
		Locale:      "fr",
		Subject:     "[Portfolio] Nouveau message de Ada",
		Status:      domain.SubmissionStatusFailed,
		Attempts:    1,
		MaxAttempts: 3,
	}
}

func TestRetrySubmission(t *testing.T) {
	repo := new(mockSubmissionRepository)
	snd := newMockSender("resend")
	svc := newTestContactService(repo, snd, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "sub-1").Return(failedSubmission(), nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	snd.On("Send", ctx, mock.Anything).Return("re_2", nil)

	sub, err := svc.RetrySubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusSent, sub.Status)
	assert.Equal(t, 2, sub.Attempts)
	assert.Empty(t, sub.LastError)
}

func TestRetrySubmission_Refused(t *testing.T) {
	sent := failedSubmission()
	sent.Status = domain.SubmissionStatusSent

	pending := failedSubmission()
	pending.Status = domain.SubmissionStatusPending

	exhausted := failedSubmission()
	exhausted.Attempts = 3

	for name, sub := range map[string]*domain.ContactSubmission{"sent": sent, "pending": pending, "exhausted": exhausted} {
		t.Run(name, func(t *testing.T) {
			repo := new(mockSubmissionRepository)
			snd := newMockSender("resend")
			svc := newTestContactService(repo, snd, nil)
			repo.On("GetByID", mock.Anything, "sub-1").Return(sub, nil)

			_, err := svc.RetrySubmission(context.Background(), "sub-1")
			assert.ErrorIs(t, err, apperrors.ErrConflict)
			snd.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestRetrySubmission_NotFound(t *testing.T) {
	repo := new(mockSubmissionRepository)
	svc := newTestContactService(repo, newMockSender("resend"), nil)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, apperrors.NotFound("contact submission", "nope"))

	_, err := svc.RetrySubmission(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRetrySubmission_NotConfigured(t *testing.T) {
	repo := new(mockSubmissionRepository)
	svc := newTestContactService(repo, nil, nil)
	repo.On("GetByID", mock.Anything, "sub-1").Return(failedSubmission(), nil)

	_, err := svc.RetrySubmission(context.Background(), "sub-1")
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestListSubmissions(t *testing.T) {
	repo := new(mockSubmissionRepository)
	svc := newTestContactService(repo, nil, nil)
	ctx := context.Background()

	repo.On("List", ctx, repository.SubmissionFilter{Status: "failed"}, 20, 10).
		Return([]domain.ContactSubmission{*failedSubmission()}, 21, nil)

	subs, total, err := svc.ListSubmissions(ctx, "failed", pagination.Params{Page: 3, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, 21, total)

	_, _, err = svc.ListSubmissions(ctx, "archived", pagination.DefaultParams())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestGetSubmission(t *testing.T) {
	repo := new(mockSubmissionRepository)
	svc := newTestContactService(repo, nil, nil)
	repo.On("GetByID", mock.Anything, "sub-1").Return(failedSubmission(), nil)

	sub, err := svc.GetSubmission(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", sub.Name)
}
