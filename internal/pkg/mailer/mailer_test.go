package mailer

import (
	"context"
	"errors"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"freelahub/internal/config"
	"freelahub/internal/pkg/logger"
)

type sent struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestSMTP(t *testing.T, fail error) (*SMTPMailer, *[]sent) {
	t.Helper()
	var out []sent
	m := NewSMTPMailer(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "FreelaHub <no-reply@freelahub.local>",
	})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		out = append(out, sent{addr: addr, from: from, to: to, msg: string(msg)})
		return fail
	}
	return m, &out
}

func TestNew_PicksImplementation(t *testing.T) {
	_, isLog := New(config.SMTPConfig{}).(LogMailer)
	assert.True(t, isLog)

	_, isSMTP := New(config.SMTPConfig{Host: "smtp.example.com", Port: 25}).(*SMTPMailer)
	assert.True(t, isSMTP)
}

func TestSMTPMailer_PasswordReset(t *testing.T) {
	m, out := newTestSMTP(t, nil)

	require.NoError(t, m.SendPasswordReset(context.Background(), "ana@example.com", "https://app/redefinir?token=abc"))
	require.Len(t, *out, 1)

	got := (*out)[0]
	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "no-reply@freelahub.local", got.from)
	assert.Equal(t, []string{"ana@example.com"}, got.to)
	assert.Equal(t, "Redefinição de senha", decodedSubject(t, got.msg))
	assert.Contains(t, got.msg, "https://app/redefinir?token=abc")
}

func TestSMTPMailer_Errors(t *testing.T) {
	m, _ := newTestSMTP(t, errors.New("connection refused"))
	err := m.SendWelcome(context.Background(), "ana@example.com", "Ana", "freelancer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp.example.com")

	m, out := newTestSMTP(t, nil)
	assert.Error(t, m.SendWelcome(context.Background(), "a@example.com\r\nBcc: x@y", "Ana", "freelancer"))
	assert.Empty(t, *out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendWelcome(ctx, "ana@example.com", "Ana", "freelancer"), context.Canceled)
}

func TestLogMailer_DoesNotLogResetLink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	require.NoError(t, LogMailer{}.SendPasswordReset(context.Background(), "ana@example.com", "https://app/redefinir?token=secret"))
	require.NoError(t, LogMailer{}.SendWelcome(context.Background(), "ana@example.com", "Ana", "empresa"))

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		for _, f := range e.Context {
			assert.NotContains(t, f.String, "secret")
		}
	}
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "a@b.c", envelopeAddress("Name <a@b.c>"))
	assert.Equal(t, "a@b.c", envelopeAddress("a@b.c"))
}

func decodedSubject(t *testing.T, raw string) string {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	return subject
}

func TestSMTPMailer_SubjectIsEncodedWord(t *testing.T) {
	m, out := newTestSMTP(t, nil)

	require.NoError(t, m.SendWelcome(context.Background(), "ana@example.com", "Ana", "freelancer"))
	require.Len(t, *out, 1)

	msg := (*out)[0].msg
	header := msg[:strings.Index(msg, "\r\n\r\n")]
	for _, r := range header {
		assert.Less(t, r, rune(128), "header must be 7-bit")
	}
	assert.Contains(t, header, "Subject: =?utf-8?q?")
	assert.Equal(t, "Bem-vindo à FreelaHub", decodedSubject(t, msg))
}
