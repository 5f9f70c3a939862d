package service

import (
	"fmt"

	"github.com/lshigami/Cryptoquest/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// EmailService sends the contest's transactional emails. Sending is disabled
// unless SMTP configuration is present; failures are logged and returned to
// the caller, never retried here.
type EmailService interface {
	Enabled() bool
	SendNewAccountEmail(to, username string) error
	SendResetPasswordEmail(to, token string) error
	SendTestEmail(to string) error
}

type emailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) Enabled() bool {
	return s.cfg.EmailsEnabled()
}

func (s *emailService) send(to, subject, htmlBody string) error {
	if !s.Enabled() {
		return fmt.Errorf("email sending is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.SMTP.FromEmail, s.cfg.SMTP.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.SMTP.Host, s.cfg.SMTP.Port, s.cfg.SMTP.User, s.cfg.SMTP.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("email", to).Str("subject", subject).Msg("Failed to send email")
		return err
	}

	log.Info().Str("email", to).Str("subject", subject).Msg("Email sent")
	return nil
}

func (s *emailService) SendNewAccountEmail(to, username string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account has been created. Log in at <a href=%q>%s</a> with your email address.</p>",
		username, s.cfg.Server.Host, s.cfg.Server.Host,
	)
	return s.send(to, "Cryptoquest - New account for user "+username, body)
}

func (s *emailService) SendResetPasswordEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Server.Host, token)
	body := fmt.Sprintf(
		"<p>A password reset was requested for %s.</p><p><a href=%q>Reset your password</a> (valid for %d hours). If you did not request this, ignore this email.</p>",
		to, link, s.cfg.Auth.EmailResetTokenExpireHours,
	)
	return s.send(to, "Cryptoquest - Password recovery for user "+to, body)
}

func (s *emailService) SendTestEmail(to string) error {
	return s.send(to, "Cryptoquest - Test email", "<p>This is a test email.</p>")
}
