package mailer

import (
	"strings"

	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock

// Mailer is the outbound transport boundary. Implementations may block;
// callers that must not wait go through the notification dispatcher.
type Mailer interface {
	Send(recipients []string, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTP builds a Mailer backed by an SMTP dialer (STARTTLS on the
// usual submission ports is handled by gomail).
func NewSMTP(host string, port int, username, password, sender string) Mailer {
	if sender == "" {
		sender = username
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

func (m *smtpMailer) Send(recipients []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)

	if isHTML(body) {
		msg.SetBody("text/html", body)
	} else {
		msg.SetBody("text/plain", body)
	}

	return m.dialer.DialAndSend(msg)
}

func isHTML(body string) bool {
	return strings.HasPrefix(strings.TrimSpace(body), "<")
}
