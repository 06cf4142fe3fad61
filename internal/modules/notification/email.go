package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers notification emails over SMTP.
type EmailSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s *EmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}
	return nil
}

// SendWithRetry retries sending with exponential backoff.
func (s *EmailSender) SendWithRetry(ctx context.Context, to, subject, body string, retries int) error {
	operation := func() error {
		return s.Send(to, subject, body)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = time.Duration(retries) * time.Second

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
