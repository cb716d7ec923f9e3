// Package smtp sends email through an SMTP relay.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

const providerName = "smtp"

// Config holds the relay address and credentials.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender relays email over SMTP with PLAIN auth when credentials are set.
type Sender struct {
	cfg      Config
	logger   *slog.Logger
	sendMail sendFunc
	nowFunc  func() time.Time
}

// NewSender creates an SMTP sender.
func NewSender(cfg Config, logger *slog.Logger) *Sender {
	return &Sender{
		cfg:      cfg,
		logger:   logger,
		sendMail: smtp.SendMail,
		nowFunc:  time.Now,
	}
}

// Name returns the provider name.
func (s *Sender) Name() string {
	return providerName
}

// Send relays msg and returns the generated Message-ID.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	if s.cfg.Host == "" {
		return "", apperrors.NotConfigured("smtp host is missing")
	}

	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return "", fmt.Errorf("parse from address: %w", err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.cfg.Host)
	raw, err := buildMessage(msg, messageID, s.nowFunc())
	if err != nil {
		return "", fmt.Errorf("build smtp message: %w", err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	// net/smtp has no context support; run it aside so cancellation still
	// releases the caller.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(s.cfg.addr(), auth, from.Address, msg.To, raw)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		return "", apperrors.BadGateway("smtp: request cancelled", ctx.Err())
	}
	if err != nil {
		return "", apperrors.BadGateway("smtp: delivery failed", err)
	}

	s.logger.DebugContext(ctx, "email sent via smtp",
		slog.String("addr", s.cfg.addr()),
		slog.String("message_id", messageID),
	)
	return messageID, nil
}

// buildMessage renders a multipart/alternative message with a plain text and
// an HTML part, both quoted-printable.
func buildMessage(msg *domain.EmailMessage, messageID string, now time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&out, "%s: %s\r\n", k, v)
	}
	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		header("Reply-To", msg.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")
	header("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
