package config

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/urfave/cli/v3"
)

const stravaHTTPTimeout = 30 * time.Second

type Strava struct {
	clientID     string
	clientSecret string
	verifyToken  string
	baseURL      string
	apiBaseURL   string
}

func (x *Strava) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "strava-client-id",
			Usage:       "Strava API application client ID",
			Category:    "Strava",
			Destination: &x.clientID,
			Sources:     cli.EnvVars("TIMESHIFT_STRAVA_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "strava-client-secret",
			Usage:       "Strava API application client secret",
			Category:    "Strava",
			Destination: &x.clientSecret,
			Sources:     cli.EnvVars("TIMESHIFT_STRAVA_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "strava-verify-token",
			Usage:       "Token echoed by the push subscription challenge",
			Category:    "Strava",
			Destination: &x.verifyToken,
			Sources:     cli.EnvVars("TIMESHIFT_STRAVA_VERIFY_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public URL of this service (e.g., https://timeshift.example.com)",
			Category:    "Strava",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("TIMESHIFT_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "strava-api-url",
			Usage:       "Strava API base URL (for testing)",
			Category:    "Strava",
			Destination: &x.apiBaseURL,
			Sources:     cli.EnvVars("TIMESHIFT_STRAVA_API_URL"),
		},
	}
}

func (x Strava) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client-id", x.clientID),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.Int("verify-token.len", len(x.verifyToken)),
		slog.String("base-url", x.baseURL),
	)
}

// IsConfigured reports whether the application credentials are set
func (x *Strava) IsConfigured() bool {
	return x.clientID != "" && x.clientSecret != ""
}

// VerifyToken returns the push subscription verify token
func (x *Strava) VerifyToken() string {
	return x.verifyToken
}

// CallbackURL returns the push subscription endpoint served by this process
func (x *Strava) CallbackURL() string {
	if x.baseURL == "" {
		return ""
	}
	return strings.TrimSuffix(x.baseURL, "/") + "/hooks/strava"
}

// RedirectURL returns the OAuth redirect URI served by this process
func (x *Strava) RedirectURL() string {
	if x.baseURL == "" {
		return ""
	}
	return strings.TrimSuffix(x.baseURL, "/") + "/auth/strava/callback"
}

// ClientID returns the application client ID
func (x *Strava) ClientID() string {
	return x.clientID
}

// Configure creates the API client
func (x *Strava) Configure() (strava.Service, error) {
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingFlag, "strava-client-id and strava-client-secret are required",
			goerr.V(FlagKey, "strava-client-id"))
	}

	opts := []strava.Option{
		strava.WithHTTPClient(&http.Client{Timeout: stravaHTTPTimeout}),
	}
	if x.apiBaseURL != "" {
		opts = append(opts, strava.WithAPIBaseURL(x.apiBaseURL))
	}

	svc, err := strava.New(x.clientID, x.clientSecret, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create strava client")
	}
	return svc, nil
}
