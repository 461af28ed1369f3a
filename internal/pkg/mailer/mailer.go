package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"freelahub/internal/config"
	"freelahub/internal/pkg/logger"
)

// Mailer sends the transactional emails of the signup and recovery flows.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name, role string) error
	SendPasswordReset(ctx context.Context, to, link string) error
}

// New returns an SMTP mailer when a host is configured, otherwise a mailer
// that only logs.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return LogMailer{}
}

// LogMailer writes each message to the process log instead of sending it.
// The reset link is never logged in full.
type LogMailer struct{}

func (LogMailer) SendWelcome(ctx context.Context, to, name, role string) error {
	logger.Info(ctx, "[dev-email] welcome", zap.String("to", to), zap.String("tipo", role))
	return nil
}

func (LogMailer) SendPasswordReset(ctx context.Context, to, _ string) error {
	logger.Info(ctx, "[dev-email] password reset", zap.String("to", to))
	return nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr string
	host string
	auth smtp.Auth
	from string
	send sendFunc
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host: cfg.Host,
		from: cfg.From,
		send: smtp.SendMail,
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name, role string) error {
	body := fmt.Sprintf("Olá, %s!\r\n\r\nSua conta de %s na FreelaHub foi criada. Complete seu perfil para começar.\r\n", name, role)
	return m.deliver(ctx, to, "Bem-vindo à FreelaHub", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	body := "Recebemos um pedido para redefinir sua senha.\r\n\r\n" +
		"Use o link abaixo. Ele expira em breve e só pode ser usado uma vez.\r\n\r\n" +
		link + "\r\n\r\nSe não foi você, ignore este email.\r\n"
	return m.deliver(ctx, to, "Redefinição de senha", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.from, to, subject, body)
	if err := m.send(m.addr, m.auth, envelopeAddress(m.from), []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.host, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// envelopeAddress extracts the bare address from "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return from
}
