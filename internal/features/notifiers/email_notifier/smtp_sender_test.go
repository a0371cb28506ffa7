package email_notifier

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildMessage_KeepsHeaderValuesOnOneLine(t *testing.T) {
	message := string(buildMessage(
		"PickTask <noreply@picktask.test>",
		"newcomer@example.com",
		"Invitation to join Acme\r\nBcc: attacker@evil.test on PickTask",
		"Hello",
	))

	headers, body, found := strings.Cut(message, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "Hello", body)

	lines := strings.Split(headers, "\r\n")
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "unexpected header line %q", line)
	}
	assert.Len(t, lines, 5)
	assert.Contains(t, headers, "Subject: Invitation to join Acme  Bcc: attacker@evil.test on PickTask")
}

func Test_BuildMessage_EncodesNonASCIISubject(t *testing.T) {
	message := string(buildMessage("from@test", "to@test", "Invitation to join Café", "body"))

	assert.Contains(t, message, "Subject: =?utf-8?q?")
	assert.NotContains(t, message, "Café")
}

func Test_Send_WithUnresponsiveServer_TimesOut(t *testing.T) {
	previousTimeout := sendTimeout
	sendTimeout = 500 * time.Millisecond
	defer func() { sendTimeout = previousTimeout }()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()

	// accepts the connection but never sends a greeting
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		_, _ = io.Copy(io.Discard, conn)
	}()

	address := listener.Addr().(*net.TCPAddr)
	sender := &SMTPSender{Host: "127.0.0.1", Port: address.Port, From: "from@test"}

	done := make(chan error, 1)
	go func() {
		done <- sender.Send("to@test", "subject", "body")
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("send did not time out")
	}
}
