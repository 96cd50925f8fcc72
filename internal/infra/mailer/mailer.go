package mailer

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Dauletnazarr/donation-project/config"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers one message. Implementations make a single attempt.
type Sender interface {
	Send(msg Message) error
}

// New picks the transport named by EMAIL_BACKEND.
func New() Sender {
	switch config.EMAIL_BACKEND {
	case "file":
		return FileSender{Dir: config.EMAIL_FILE_PATH, From: config.DEFAULT_FROM_EMAIL}
	default:
		return SMTPSender{
			Host:     config.SMTP_HOST,
			Port:     config.SMTP_PORT,
			User:     config.SMTP_USER,
			Password: config.SMTP_PASSWORD,
			UseTLS:   config.SMTP_USE_TLS,
			From:     config.DEFAULT_FROM_EMAIL,
		}
	}
}

func build(from string, msg Message) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("message %q has no recipients", msg.Subject)
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m, nil
}

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
	From     string
}

func (s SMTPSender) Send(msg Message) error {
	if s.Host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	m, err := build(s.From, msg)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if s.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: s.Host}
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %v: %w", msg.To, err)
	}
	return nil
}

// FileSender writes each message as an .eml file, for development.
type FileSender struct {
	Dir  string
	From string
}

func (s FileSender) Send(msg Message) error {
	m, err := build(s.From, msg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create mail dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.eml", time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:8])
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("create mail file: %w", err)
	}
	defer f.Close()

	if _, err := m.WriteTo(f); err != nil {
		return fmt.Errorf("write mail file: %w", err)
	}
	return nil
}
