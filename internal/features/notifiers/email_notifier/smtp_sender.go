package email_notifier

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const (
	implicitTLSPort = 465
	dialTimeout     = 10 * time.Second
)

var sendTimeout = 30 * time.Second

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	if s.Host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	address := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	message := buildMessage(s.From, to, subject, body)

	var auth smtp.Auth
	if s.User != "" {
		auth = newLoginAuth(s.User, s.Password)
	}

	client, err := s.dial(address)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return s.deliver(client, auth, to, message)
}

// dial connects with implicit TLS on port 465 and upgrades with STARTTLS
// elsewhere when the server offers it.
func (s *SMTPSender) dial(address string) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	tlsConfig := &tls.Config{ServerName: s.Host}

	var conn net.Conn
	var err error
	if s.Port == implicitTLSPort {
		conn, err = tls.DialWithDialer(dialer, "tcp", address, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", address)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(sendTimeout)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set SMTP deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if s.Port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	return client, nil
}

func (s *SMTPSender) deliver(
	client *smtp.Client,
	auth smtp.Auth,
	to string,
	message []byte,
) error {
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}

	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + headerValue(from) + "\r\n")
	builder.WriteString("To: " + headerValue(to) + "\r\n")
	builder.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerValue(subject)) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)

	return []byte(builder.String())
}

// headerValue folds line breaks into spaces so a value stays on its header line.
func headerValue(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, value)
}
