package sender

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrianprakoso/movie-catalog/internal/lib/smtp"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fakeWriteCloser struct {
	buf *bytes.Buffer
}

func (f *fakeWriteCloser) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *fakeWriteCloser) Close() error                { return nil }

type fakeClient struct {
	from    string
	rcpts   []string
	body    bytes.Buffer
	rcptErr error
}

func (c *fakeClient) Mail(from string) error {
	c.from = from
	return nil
}

func (c *fakeClient) Rcpt(to string) error {
	if c.rcptErr != nil {
		return c.rcptErr
	}
	c.rcpts = append(c.rcpts, to)
	return nil
}

func (c *fakeClient) Data() (io.WriteCloser, error) { return &fakeWriteCloser{buf: &c.body}, nil }
func (c *fakeClient) Quit() error                   { return nil }
func (c *fakeClient) Close() error                  { return nil }

type fakeTransport struct {
	client     *fakeClient
	connectErr error
	delay      time.Duration
}

func (t *fakeTransport) Connect() (smtp.Client, error) {
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.client, nil
}

func (t *fakeTransport) GetSMTPUser() string { return "noreply@movie-catalog.io" }

func newService(t *fakeTransport, timeout time.Duration) *SenderService {
	return NewSenderService(t, "http://localhost:8080", timeout, newNoopLogger())
}

func TestSendVerificationEmail(t *testing.T) {
	client := &fakeClient{}
	transport := &fakeTransport{client: client}
	svc := newService(transport, time.Second)

	err := svc.SendVerificationEmail(context.Background(), "n@e.com", "nia")
	require.NoError(t, err)

	assert.Equal(t, "noreply@movie-catalog.io", client.from)
	assert.Equal(t, []string{"n@e.com"}, client.rcpts)
	assert.Contains(t, client.body.String(), "/user/verify/nia")
	assert.Contains(t, client.body.String(), "Subject: Verify your email")
}

func TestSendPasswordResetEmail(t *testing.T) {
	client := &fakeClient{}
	transport := &fakeTransport{client: client}
	svc := newService(transport, time.Second)

	err := svc.SendPasswordResetEmail(context.Background(), "n@e.com", "nia", "123456")
	require.NoError(t, err)

	assert.Contains(t, client.body.String(), "/user/forgot/nia/123456")
}

func TestSend_ConnectError(t *testing.T) {
	transport := &fakeTransport{connectErr: errors.New("dial tcp: refused")}
	svc := newService(transport, time.Second)

	err := svc.SendVerificationEmail(context.Background(), "n@e.com", "nia")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}

func TestSend_RcptError(t *testing.T) {
	client := &fakeClient{rcptErr: errors.New("550 mailbox unavailable")}
	transport := &fakeTransport{client: client}
	svc := newService(transport, time.Second)

	err := svc.SendVerificationEmail(context.Background(), "n@e.com", "nia")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}

func TestSend_Timeout(t *testing.T) {
	client := &fakeClient{}
	transport := &fakeTransport{client: client, delay: 200 * time.Millisecond}
	svc := newService(transport, 20*time.Millisecond)

	err := svc.SendVerificationEmail(context.Background(), "n@e.com", "nia")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}
