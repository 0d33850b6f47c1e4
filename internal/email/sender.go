package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"creatorhub_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Sender delivers account emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
	SendVerification(ctx context.Context, to, name, role, token string) error
}

// NewSender returns an SMTP sender, or a log-only sender when no SMTP host is set.
func NewSender(cfg Config) (Sender, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}
	if cfg.SMTPHost == "" {
		return &LogSender{config: cfg, templates: tm}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}
	return &SMTPSender{
		config:    cfg,
		templates: tm,
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}, nil
}

// SMTPSender sends through gomail.
type SMTPSender struct {
	config    Config
	templates *TemplateManager
	dialer    *gomail.Dialer
}

func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := buildMessage(s.config, email)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.CtxInfo(ctx, "Email sent", "to", strings.Join(email.To, ","), "subject", email.Subject)
	return nil
}

func (s *SMTPSender) SendVerification(ctx context.Context, to, name, role, token string) error {
	email, err := verificationEmail(s.config, s.templates, to, name, role, token)
	if err != nil {
		return err
	}
	return s.Send(ctx, email)
}

// LogSender writes emails to the log instead of sending them.
type LogSender struct {
	config    Config
	templates *TemplateManager
}

func (s *LogSender) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "Email not sent, SMTP is not configured",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (s *LogSender) SendVerification(ctx context.Context, to, name, role, token string) error {
	email, err := verificationEmail(s.config, s.templates, to, name, role, token)
	if err != nil {
		return err
	}
	return s.Send(ctx, email)
}

// VerifyURL is the link a new user follows to confirm the address.
func VerifyURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/verify?token=" + url.QueryEscape(token)
}

func verificationEmail(cfg Config, tm *TemplateManager, to, name, role, token string) (*Email, error) {
	subject := "Confirm your email"
	link := VerifyURL(cfg.VerifyBaseURL, token)

	html, err := tm.Render("verification", VerificationData{
		TemplateData: TemplateData{
			UserName:     name,
			Subject:      subject,
			ActionURL:    link,
			ActionText:   "Confirm email",
			SupportEmail: cfg.FromEmail,
			CompanyName:  cfg.CompanyName,
		},
		Role: role,
	})
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       []string{to},
		Subject:  subject,
		Body:     "Confirm your email address: " + link,
		HTMLBody: html,
	}, nil
}

func buildMessage(cfg Config, email *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", cfg.FromEmail, cfg.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}
	return m
}
