package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"

	"github.com/hushbox/hushauth/config"
)

// Mailer sends the account lifecycle emails. Sends happen on the request
// path; callers decide whether a failed send fails the operation.
type Mailer struct {
	configProvider *config.Provider
	logger         *slog.Logger
}

func New(configProvider *config.Provider, logger *slog.Logger) *Mailer {
	return &Mailer{
		configProvider: configProvider,
		logger:         logger,
	}
}

func (m *Mailer) newMail(to string) (*mailyak.MailYak, *config.Smtp) {
	cfg := &m.configProvider.Get().Smtp

	mail := mailyak.New(
		fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	)
	mail.To(to)
	mail.From(cfg.FromAddress)
	mail.FromName(cfg.FromName)
	if cfg.LocalName != "" {
		mail.LocalName(cfg.LocalName)
	}
	return mail, cfg
}

// send delivers the message, honoring context cancellation. mailyak has no
// context support, so the send runs in a goroutine.
func (m *Mailer) send(ctx context.Context, mail *mailyak.MailYak) error {
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// SendVerificationCodeEmail mails the 6 digit code a credentials signup must
// echo back to become verified.
func (m *Mailer) SendVerificationCodeEmail(ctx context.Context, email, username, code string) error {
	mail, cfg := m.newMail(email)

	mail.Subject(fmt.Sprintf("Verify your %s email", cfg.FromName))
	mail.HTML().Set(fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Thank you for registering. Please use the following verification code to complete your registration:</p>
		<p style="font-size: 2em; letter-spacing: 0.2em;"><strong>%s</strong></p>
		<p>If you did not request this code, please ignore this email.</p>
	`, username, code))
	mail.Plain().Set(fmt.Sprintf(
		"Hello %s,\n\nThank you for registering. Please use the following verification code to complete your registration: %s\n\nIf you did not request this code, please ignore this email.\n",
		username, code))

	if err := m.send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	m.logger.Info("sent verification code email", "email", email)
	return nil
}

// SendPasswordResetEmail mails the single use recovery link.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, username, link string) error {
	mail, cfg := m.newMail(email)

	mail.Subject(fmt.Sprintf("Reset your %s password", cfg.FromName))
	mail.HTML().Set(fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We received a request to reset your password. Click the link below to choose a new one:</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, username, link))
	mail.Plain().Set(fmt.Sprintf(
		"Hello %s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nIf you did not request a password reset, you can safely ignore this email.\n",
		username, link))

	if err := m.send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	m.logger.Info("sent password reset email", "email", email)
	return nil
}
