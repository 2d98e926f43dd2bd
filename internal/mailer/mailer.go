// Package mailer sends the notification emails of the job board.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/garnizeh/boards/internal/config"
	"gopkg.in/gomail.v2"
)

// Email is a single HTML message to one recipient.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, e Email) error
}

// New returns an SMTP sender when cfg has a host and a LogSender otherwise.
func New(cfg config.SMTPConfig, logger *slog.Logger) Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(logger)
}

// SMTPSender delivers mail through an SMTP server with gomail.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return fmt.Errorf("no recipient specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.dialer.DialAndSend(s.message(e))
}

func (s *SMTPSender) message(e Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)

	if e.HTML != "" {
		msg.SetBody("text/html", e.HTML)
		if e.Text != "" {
			msg.AddAlternative("text/plain", e.Text)
		}
	} else {
		msg.SetBody("text/plain", e.Text)
	}

	return msg
}

// LogSender writes messages to the log instead of sending them. Used when no SMTP
// server is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return fmt.Errorf("no recipient specified")
	}

	s.logger.InfoContext(ctx, "email",
		slog.String("to", e.To),
		slog.String("subject", e.Subject),
		slog.String("text", e.Text),
	)

	return nil
}

// Recorder keeps sent messages in memory. Err, when set, is returned instead.
type Recorder struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (r *Recorder) Send(ctx context.Context, e Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, e)
	return nil
}

// Last returns the most recent message and whether there was one.
func (r *Recorder) Last() (Email, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return Email{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}
