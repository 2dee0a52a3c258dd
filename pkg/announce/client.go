package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single webhook post.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 512

// ErrNoWebhook is returned when an announcement has nowhere to go.
var ErrNoWebhook = errors.New("no webhook configured")

// DeliveryError reports a webhook that answered with a non-2xx status.
type DeliveryError struct {
	// Host is the webhook host. The full URL is not kept because webhook
	// paths embed credentials.
	Host       string
	StatusCode int
	Status     string
	Body       string
}

// Error implements error.
func (e *DeliveryError) Error() string {
	msg := fmt.Sprintf("webhook %s returned %s", e.Host, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client posts JSON payloads to webhooks. It does not retry.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the client's logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client whose requests time out after timeout.
// A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "announcer",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post marshals payload as JSON and POSTs it to webhookURL.
func (c *Client) Post(ctx context.Context, webhookURL string, payload any) error {
	body, err := EncodePayload(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	host := webhookHost(webhookURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", host, redactURLError(err))
	}
	defer resp.Body.Close()

	c.logger.Debug("webhook responded",
		"host", host,
		"status_code", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &DeliveryError{
			Host:       host,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// EncodePayload marshals payload as JSON. Markup characters are kept
// literal since both chat services read them as message text.
func EncodePayload(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return buf.Bytes(), nil
}

// webhookHost returns the host part of raw, or "webhook" when raw does not
// parse.
func webhookHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "webhook"
	}
	return u.Host
}

// redactURLError strips the request URL from transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
