package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

var (
	// ErrNoRecipients is returned when an email has no To addresses.
	ErrNoRecipients = errors.New("no recipients specified")

	// ErrSendTimeout is returned when the SMTP exchange does not finish in time.
	ErrSendTimeout = errors.New("email delivery timed out")
)

// Sender delivers emails.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Config holds SMTP configuration for sending emails.
type Config struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT"     envDefault:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT"  envDefault:"10s"`
}

// Validate checks if the Mailer configuration is valid.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}

// Email represents an email message.
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// Mailer represents an email sender backed by SMTP.
type Mailer struct {
	config Config
	logger *zerolog.Logger
	send   func(msg *gomail.Message) error
}

// NewMailer creates a new Mailer instance with the given configuration.
func NewMailer(cfg Config, logger *zerolog.Logger) *Mailer {
	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		logger: logger,
		send: func(msg *gomail.Message) error {
			return dialer.DialAndSend(msg)
		},
	}
}

// Send sends a single email. The SMTP exchange is bounded by the configured
// timeout and by ctx, whichever ends first.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	msg := m.newMessage(email)

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	// gomail has no context support; the dial continues in the background
	// after a timeout and its result is dropped.
	done := make(chan error, 1)
	go func() {
		done <- m.send(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Error().Err(err).Strs("to", email.To).Msg("failed to send email")
			return err
		}
		return nil
	case <-ctx.Done():
		m.logger.Error().Err(ctx.Err()).Strs("to", email.To).Msg("email delivery timed out")
		return ErrSendTimeout
	}
}

func (m *Mailer) newMessage(email Email) *gomail.Message {
	msg := gomail.NewMessage()

	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return msg
}
