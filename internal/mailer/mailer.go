package mailer

// Mailer sends member notifications.
type Mailer interface {
	SendVerificationNotice(toEmail, toName string) error
}

// NoopMailer is used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) SendVerificationNotice(string, string) error { return nil }
