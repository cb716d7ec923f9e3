// Package resend sends email through the Resend HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httpclient"
)

// DefaultBaseURL is the public Resend API.
const DefaultBaseURL = "https://api.resend.com"

const providerName = "resend"

// Config holds the Resend credentials.
type Config struct {
	APIKey  string
	BaseURL string
}

// Sender posts emails to Resend.
type Sender struct {
	client  httpclient.Doer
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// NewSender creates a Resend sender over client, normally a
// httpclient.CircuitBreakerClient.
func NewSender(cfg Config, client httpclient.Doer, logger *slog.Logger) *Sender {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Sender{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Name returns the provider name.
func (s *Sender) Name() string {
	return providerName
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send posts msg to /emails and returns the Resend message id.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	if s.apiKey == "" {
		return "", apperrors.NotConfigured("resend api key is missing")
	}

	payload, err := json.Marshal(sendRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("marshal resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return "", apperrors.BadGateway("resend: request failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", httpclient.ParseResponseError(resp, providerName)
	}
	defer func() { _ = resp.Body.Close() }()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// The email was accepted; only the id is lost.
		s.logger.WarnContext(ctx, "failed to decode resend response", slog.String("error", err.Error()))
		return "", nil
	}

	s.logger.DebugContext(ctx, "email sent via resend", slog.String("provider_id", out.ID))
	return out.ID, nil
}
