package loops

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/utils/safe"
)

const defaultBaseURL = "https://app.loops.so/api/v1"

// ErrRequestFailed is returned when Loops answers with a non-2xx status or success=false
var ErrRequestFailed = goerr.New("loops request failed")

// client implements Service interface
type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Service = &client{}

type Option func(*client)

func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Loops client with the provided API key
func New(apiKey string, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("Loops API key is required")
	}

	c := &client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type response struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (c *client) UpsertContact(ctx context.Context, contact *Contact) error {
	if err := c.send(ctx, http.MethodPut, "/contacts/update", contact); err != nil {
		return goerr.Wrap(err, "failed to upsert contact", goerr.V("user_id", contact.UserID))
	}
	return nil
}

func (c *client) SendTransactional(ctx context.Context, email *TransactionalEmail) error {
	if err := c.send(ctx, http.MethodPost, "/transactional", email); err != nil {
		return goerr.Wrap(err, "failed to send transactional email", goerr.V("transactional_id", email.TransactionalID))
	}
	return nil
}

func (c *client) send(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal loops request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create loops request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send loops request", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return goerr.Wrap(err, "failed to read loops response", goerr.V("path", path))
	}

	var result response
	_ = json.Unmarshal(raw, &result)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Success {
		return goerr.Wrap(ErrRequestFailed, "loops returned an error",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("message", result.Message),
		)
	}
	return nil
}
