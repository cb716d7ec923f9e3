package domain

import (
	"time"
)

// Submission status constants.
const (
	SubmissionStatusPending = "pending"
	SubmissionStatusSent    = "sent"
	SubmissionStatusFailed  = "failed"
)

// Submission kind constants.
const (
	SubmissionKindMessage = "message"
	SubmissionKindQuote   = "quote"
)

// DefaultMaxAttempts caps delivery attempts, the first one included.
const DefaultMaxAttempts = 5

// ContactSubmission is one contact form or quote request relayed by email.
type ContactSubmission struct {
	ID             string     `json:"id"`
	Kind           string     `json:"kind"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Message        string     `json:"message"`
	QuoteSummary   string     `json:"quote_summary,omitempty"`
	QuoteSessionID string     `json:"quote_session_id,omitempty"`
	Locale         string     `json:"locale"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	Provider       string     `json:"provider,omitempty"`
	ProviderID     string     `json:"provider_id,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	Attempts       int        `json:"attempts"`
	MaxAttempts    int        `json:"max_attempts"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsQuoteRequest reports whether a quote summary is attached.
func (s *ContactSubmission) IsQuoteRequest() bool {
	return s.QuoteSummary != ""
}

// CanRetry reports whether the submission may be sent again. Sent
// submissions are final.
func (s *ContactSubmission) CanRetry() bool {
	return s.Status == SubmissionStatusFailed && s.Attempts < s.MaxAttempts
}

// MarkSent records a successful delivery.
func (s *ContactSubmission) MarkSent(provider, providerID string, now time.Time) {
	s.Status = SubmissionStatusSent
	s.Provider = provider
	s.ProviderID = providerID
	s.LastError = ""
	s.SentAt = &now
	s.UpdatedAt = now
}

// MarkFailed records a failed delivery.
func (s *ContactSubmission) MarkFailed(provider string, err error, now time.Time) {
	s.Status = SubmissionStatusFailed
	s.Provider = provider
	if err != nil {
		s.LastError = err.Error()
	}
	s.UpdatedAt = now
}

// ValidStatuses returns the set of submission statuses.
func ValidStatuses() []string {
	return []string{SubmissionStatusPending, SubmissionStatusSent, SubmissionStatusFailed}
}

// IsValidStatus reports whether status is a known submission status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// EmailMessage is a rendered email ready for a sender.
type EmailMessage struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}
