package email_notifier

import (
	"fmt"
	"net/smtp"
	"strings"
)

// loginAuth implements the LOGIN mechanism that smtp.PlainAuth lacks and
// that several hosted SMTP relays still require.
type loginAuth struct {
	username string
	password string
}

func newLoginAuth(username, password string) smtp.Auth {
	return &loginAuth{username: username, password: password}
}

func (a *loginAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}

	challenge := strings.ToLower(strings.TrimSpace(string(fromServer)))

	switch {
	case strings.HasPrefix(challenge, "username"):
		return []byte(a.username), nil
	case strings.HasPrefix(challenge, "password"):
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unknown LOGIN challenge: %q", string(fromServer))
	}
}
