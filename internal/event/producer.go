// Package event publishes the portfolio API's domain events.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/quote"
	pkgkafka "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/kafka"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/logger"
)

// Topics.
var (
	TopicQuoteEstimated   = pkgkafka.Topic("quote", "estimated")
	TopicContactSubmitted = pkgkafka.Topic("contact", "submitted")
	TopicContactFailed    = pkgkafka.Topic("contact", "failed")
)

// Subject types.
const (
	SubjectQuoteSession = "quote_session"
	SubjectSubmission   = "contact_submission"
)

// SourcePortfolioAPI identifies events emitted by this service.
const SourcePortfolioAPI = "portfolio-api"

// QuoteEstimatedData is the payload of a quote.estimated event. SessionID is
// empty for stateless estimates.
type QuoteEstimatedData struct {
	SessionID   string   `json:"session_id,omitempty"`
	ProjectType string   `json:"project_type"`
	SubTypeID   string   `json:"sub_type_id"`
	Options     []string `json:"options"`
	Total       int64    `json:"total"`
	Currency    string   `json:"currency"`
}

// ContactSubmittedData is the payload of a contact.submitted event.
type ContactSubmittedData struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Locale     string `json:"locale"`
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id,omitempty"`
	Attempts   int    `json:"attempts"`
}

// ContactFailedData is the payload of a contact.failed event.
type ContactFailedData struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Provider string `json:"provider"`
	Error    string `json:"error"`
	Attempts int    `json:"attempts"`
}

// Publisher is implemented by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events. It is nil-safe: without a publisher every
// event is dropped.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates an event producer. publisher may be nil.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishQuoteEstimated publishes a quote.estimated event.
func (p *Producer) PublishQuoteEstimated(ctx context.Context, sessionID string, b quote.Breakdown) error {
	options := make([]string, 0, len(b.Extras))
	for _, item := range b.Extras {
		options = append(options, item.ID)
	}
	data := QuoteEstimatedData{
		SessionID:   sessionID,
		ProjectType: string(b.ProjectType),
		SubTypeID:   b.SubTypeID,
		Options:     options,
		Total:       b.Total,
		Currency:    b.Currency,
	}
	return p.publish(ctx, TopicQuoteEstimated, sessionID, SubjectQuoteSession, data)
}

// PublishContactSubmitted publishes a contact.submitted event.
func (p *Producer) PublishContactSubmitted(ctx context.Context, s *domain.ContactSubmission) error {
	data := ContactSubmittedData{
		ID:         s.ID,
		Kind:       s.Kind,
		Locale:     s.Locale,
		Provider:   s.Provider,
		ProviderID: s.ProviderID,
		Attempts:   s.Attempts,
	}
	return p.publish(ctx, TopicContactSubmitted, s.ID, SubjectSubmission, data)
}

// PublishContactFailed publishes a contact.failed event.
func (p *Producer) PublishContactFailed(ctx context.Context, s *domain.ContactSubmission) error {
	data := ContactFailedData{
		ID:       s.ID,
		Kind:     s.Kind,
		Provider: s.Provider,
		Error:    s.LastError,
		Attempts: s.Attempts,
	}
	return p.publish(ctx, TopicContactFailed, s.ID, SubjectSubmission, data)
}

func (p *Producer) publish(ctx context.Context, topic, subject, subjectType string, data any) error {
	if p == nil || p.publisher == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(topic, subject, subjectType, SourcePortfolioAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("subject", subject),
	)
	return nil
}
