package notify

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/budget-hub/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Mailer delivers a plain-text message to one recipient
type Mailer interface {
	Send(to, subject, body string) error
}

// EmailSender handles sending emails via SMTP
type EmailSender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewEmailSender creates a new email sender
func NewEmailSender(cfg *config.Config, logger *logrus.Logger) *EmailSender {
	return &EmailSender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send sends a plain-text email
func (s *EmailSender) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body + "\n\nBest regards,\nBudget Hub")

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, subject)
	return nil
}
