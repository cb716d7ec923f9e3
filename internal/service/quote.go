package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/event"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/quote"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

// Quote is a stored session with its selection loaded into an engine.
type Quote struct {
	Session *domain.QuoteSession
	Engine  *quote.Engine
}

// QuoteService drives quote sessions. Unlike the engine, which trusts its
// catalog-bound callers, it rejects unknown project types, sub-types and
// options coming from the network.
type QuoteService struct {
	repo     repository.QuoteSessionRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
	locks    sessionLocks
	nowFunc  func() time.Time
}

// NewQuoteService creates a new quote service.
func NewQuoteService(
	repo repository.QuoteSessionRepository,
	cat *catalog.Catalog,
	producer *event.Producer,
	logger *slog.Logger,
) *QuoteService {
	return &QuoteService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns the catalog sessions are priced against.
func (s *QuoteService) Catalog() *catalog.Catalog {
	return s.catalog
}

// CreateSession stores a new Empty session.
func (s *QuoteService) CreateSession(ctx context.Context) (*Quote, error) {
	session := domain.NewQuoteSession(uuid.New().String(), s.nowFunc())
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("create quote session: %w", err)
	}

	s.logger.DebugContext(ctx, "quote session created", slog.String("session_id", session.ID))
	return &Quote{Session: session, Engine: quote.NewEngine(s.catalog)}, nil
}

// GetSession loads a session.
func (s *QuoteService) GetSession(ctx context.Context, id string) (*Quote, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote session: %w", err)
	}
	return &Quote{Session: session, Engine: quote.Restore(s.catalog, session.State)}, nil
}

// SelectProjectType activates t on the session. An empty t resets it.
func (s *QuoteService) SelectProjectType(ctx context.Context, id string, t catalog.ProjectType) (*Quote, error) {
	if t != "" && !s.catalog.IsValidProjectType(t) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown project type %q", t))
	}
	return s.mutate(ctx, id, func(e *quote.Engine) error {
		e.SelectProjectType(t)
		return nil
	})
}

// ToggleProjectType selects t, or resets the session when t is already active.
func (s *QuoteService) ToggleProjectType(ctx context.Context, id string, t catalog.ProjectType) (*Quote, error) {
	if !s.catalog.IsValidProjectType(t) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown project type %q", t))
	}
	return s.mutate(ctx, id, func(e *quote.Engine) error {
		e.ToggleProjectType(t)
		return nil
	})
}

// SetSubType switches the package of the active project type. It leaves an
// Empty session untouched.
func (s *QuoteService) SetSubType(ctx context.Context, id, subTypeID string) (*Quote, error) {
	return s.mutate(ctx, id, func(e *quote.Engine) error {
		if e.IsEmpty() {
			return nil
		}
		if _, ok := s.catalog.SubType(e.ProjectType(), subTypeID); !ok {
			return apperrors.InvalidInput(fmt.Sprintf("unknown sub-type %q for project type %q", subTypeID, e.ProjectType()))
		}
		e.SetSubType(subTypeID)
		return nil
	})
}

// ToggleOption flips an add-on. Included options and Empty sessions are left
// unchanged.
func (s *QuoteService) ToggleOption(ctx context.Context, id, optionID string) (*Quote, error) {
	if _, ok := s.catalog.Option(optionID); !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown option %q", optionID))
	}
	return s.mutate(ctx, id, func(e *quote.Engine) error {
		e.ToggleOption(optionID)
		return nil
	})
}

// Reset returns the session to Empty.
func (s *QuoteService) Reset(ctx context.Context, id string) (*Quote, error) {
	return s.mutate(ctx, id, func(e *quote.Engine) error {
		e.Reset()
		return nil
	})
}

// Summary renders the session's quote text in the locale, "" when Empty.
func (s *QuoteService) Summary(ctx context.Context, id string, l i18n.Locale) (string, error) {
	q, err := s.GetSession(ctx, id)
	if err != nil {
		return "", err
	}

	b, ok := q.Engine.Breakdown(l)
	if !ok {
		return "", nil
	}
	s.recordEstimate(ctx, id, b)
	return quote.RenderSummary(b, l), nil
}

// DeleteSession drops the session when its simulator view goes away.
func (s *QuoteService) DeleteSession(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quote session: %w", err)
	}
	s.logger.DebugContext(ctx, "quote session deleted", slog.String("session_id", id))
	return nil
}

// EstimateInput is a complete selection priced without a session.
type EstimateInput struct {
	ProjectType catalog.ProjectType
	SubTypeID   string
	Options     []string
}

// Estimate prices a selection without storing it. An empty SubTypeID selects
// the first package; included options are accepted and ignored.
func (s *QuoteService) Estimate(ctx context.Context, in EstimateInput, l i18n.Locale) (quote.Breakdown, string, error) {
	if !s.catalog.IsValidProjectType(in.ProjectType) {
		return quote.Breakdown{}, "", apperrors.InvalidInput(fmt.Sprintf("unknown project type %q", in.ProjectType))
	}

	e := quote.NewEngine(s.catalog)
	e.SelectProjectType(in.ProjectType)

	if in.SubTypeID != "" {
		if _, ok := s.catalog.SubType(in.ProjectType, in.SubTypeID); !ok {
			return quote.Breakdown{}, "", apperrors.InvalidInput(fmt.Sprintf("unknown sub-type %q for project type %q", in.SubTypeID, in.ProjectType))
		}
		e.SetSubType(in.SubTypeID)
	}

	for _, id := range in.Options {
		if _, ok := s.catalog.Option(id); !ok {
			return quote.Breakdown{}, "", apperrors.InvalidInput(fmt.Sprintf("unknown option %q", id))
		}
		if !e.IsOptionSelected(id) {
			e.ToggleOption(id)
		}
	}

	b, _ := e.Breakdown(l)
	s.recordEstimate(ctx, "", b)
	return b, quote.RenderSummary(b, l), nil
}

func (s *QuoteService) mutate(ctx context.Context, id string, apply func(e *quote.Engine) error) (*Quote, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	q, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(q.Engine); err != nil {
		return nil, err
	}

	q.Session.State = q.Engine.State()
	q.Session.UpdatedAt = s.nowFunc()
	if err := s.repo.Save(ctx, q.Session); err != nil {
		return nil, fmt.Errorf("save quote session: %w", err)
	}
	return q, nil
}

func (s *QuoteService) recordEstimate(ctx context.Context, sessionID string, b quote.Breakdown) {
	quoteEstimatesTotal.WithLabelValues(string(b.ProjectType)).Inc()

	if err := s.producer.PublishQuoteEstimated(ctx, sessionID, b); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish quote.estimated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}
