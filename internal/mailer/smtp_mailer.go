package mailer

import (
	"fmt"

	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const verificationSubject = "Your membership has been verified"

// SMTPMailer implements Mailer over SMTP using gomail.
type SMTPMailer struct {
	dialer     *gomail.Dialer
	from       string
	senderName string
	logger     *logger.Logger
}

func NewSMTPMailer(host string, port int, username, password, from, senderName string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		senderName: senderName,
		logger:     log.Named("SMTPMailer"),
	}
}

func (s *SMTPMailer) SendVerificationNotice(toEmail, toName string) error {
	s.logger.Info("Sending verification notice", zap.String("to", toEmail))

	m := s.verificationMessage(toEmail, toName)
	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send verification notice", zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("send verification notice: %w", err)
	}
	return nil
}

func (s *SMTPMailer) verificationMessage(toEmail, toName string) *gomail.Message {
	if toName == "" {
		toName = "Member"
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.senderName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", verificationSubject)
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour membership has been verified by an administrator. You now have full access.\n", toName))
	m.AddAlternative("text/html", fmt.Sprintf(
		"<p>Hello %s,</p><p>Your membership has been verified by an administrator. You now have full access.</p>", toName))
	return m
}
