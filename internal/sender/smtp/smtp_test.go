package smtp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	netsmtp "net/smtp"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

var _ sender.Sender = (*Sender)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testMessage() *domain.EmailMessage {
	return &domain.EmailMessage{
		From:    "Portfolio Contact <contact@example.com>",
		To:      []string{"enzo@example.com"},
		ReplyTo: "ada@example.com",
		Subject: "[Portfolio] Simulation de devis - Adélaïde",
		HTML:    "<h2>Nouvelle simulation de devis</h2>",
		Text:    "Nouvelle simulation de devis",
	}
}

type capture struct {
	addr string
	auth netsmtp.Auth
	from string
	to   []string
	msg  []byte
}

func newCapturingSender(cfg Config, c *capture, err error) *Sender {
	s := NewSender(cfg, testLogger())
	s.nowFunc = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	s.sendMail = func(addr string, a netsmtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.auth, c.from, c.to, c.msg = addr, a, from, to, msg
		return err
	}
	return s
}

func TestSender_Send(t *testing.T) {
	var c capture
	s := newCapturingSender(Config{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"}, &c, nil)

	id, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@smtp.example.com>"))
	assert.Equal(t, "smtp", s.Name())

	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.NotNil(t, c.auth)
	assert.Equal(t, "contact@example.com", c.from)
	assert.Equal(t, []string{"enzo@example.com"}, c.to)

	parsed, err := mail.ReadMessage(strings.NewReader(string(c.msg)))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", parsed.Header.Get("Reply-To"))
	assert.Equal(t, id, parsed.Header.Get("Message-ID"))

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "[Portfolio] Simulation de devis - Adélaïde", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var types []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		types = append(types, p.Header.Get("Content-Type"))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
}

func TestSender_NoAuthWithoutCredentials(t *testing.T) {
	var c capture
	s := newCapturingSender(Config{Host: "localhost", Port: 1025}, &c, nil)

	_, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Nil(t, c.auth)
	assert.Equal(t, "localhost:1025", c.addr)
}

func TestSender_NotConfigured(t *testing.T) {
	s := NewSender(Config{}, testLogger())
	_, err := s.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestSender_DeliveryFailure(t *testing.T) {
	var c capture
	s := newCapturingSender(Config{Host: "smtp.example.com", Port: 587}, &c, errors.New("554 rejected"))

	_, err := s.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, apperrors.ErrBadGateway)
	assert.Contains(t, err.Error(), "554 rejected")
}

func TestSender_InvalidFrom(t *testing.T) {
	var c capture
	s := newCapturingSender(Config{Host: "smtp.example.com", Port: 587}, &c, nil)
	msg := testMessage()
	msg.From = "not an address"

	_, err := s.Send(context.Background(), msg)
	assert.Error(t, err)
	assert.Nil(t, c.msg)
}

func TestSender_ContextCancelled(t *testing.T) {
	s := NewSender(Config{Host: "smtp.example.com", Port: 587}, testLogger())
	release := make(chan struct{})
	defer close(release)
	s.sendMail = func(string, netsmtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Send(ctx, testMessage())
	assert.ErrorIs(t, err, context.Canceled)
}
