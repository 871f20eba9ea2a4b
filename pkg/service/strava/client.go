package strava

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/utils/safe"
	"golang.org/x/oauth2"
)

const (
	defaultAPIBaseURL   = "https://www.strava.com/api/v3"
	defaultOAuthBaseURL = "https://www.strava.com/oauth"

	// maxErrorBody bounds how much of an error response is kept for logging
	maxErrorBody = 4096
)

// client implements Service interface
type client struct {
	clientID     string
	clientSecret string
	apiBaseURL   string
	oauthBaseURL string
	httpClient   *http.Client
	oauth        *oauth2.Config
}

var _ Service = &client{}

// Option configures the client
type Option func(*client)

// WithAPIBaseURL overrides the REST API base URL
func WithAPIBaseURL(url string) Option {
	return func(c *client) {
		c.apiBaseURL = url
	}
}

// WithOAuthBaseURL overrides the OAuth base URL
func WithOAuthBaseURL(url string) Option {
	return func(c *client) {
		c.oauthBaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for every request
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Strava API client for an application
func New(clientID, clientSecret string, opts ...Option) (Service, error) {
	if clientID == "" || clientSecret == "" {
		return nil, goerr.New("Strava client ID and secret are required")
	}

	c := &client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiBaseURL:   defaultAPIBaseURL,
		oauthBaseURL: defaultOAuthBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.oauth = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.oauthBaseURL + "/authorize",
			TokenURL:  c.oauthBaseURL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return c, nil
}

// oauthContext makes x/oauth2 use our HTTP client
func (c *client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// bearer returns an HTTP client that sends the access token
func (c *client) bearer(ctx context.Context, accessToken string) *http.Client {
	return oauth2.NewClient(c.oauthContext(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

// do sends the request and decodes a 2xx JSON body into out
func (c *client) do(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request to strava",
			goerr.V("method", req.Method),
			goerr.V("path", req.URL.Path),
		)
	}
	defer safe.Close(req.Context(), resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return goerr.Wrap(ErrNotFound, "strava returned 404",
			goerr.V("method", req.Method),
			goerr.V("path", req.URL.Path),
		)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return goerr.Wrap(ErrUnexpectedStatus, "strava request failed",
			goerr.V("method", req.Method),
			goerr.V("path", req.URL.Path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode strava response", goerr.V("path", req.URL.Path))
	}
	return nil
}
