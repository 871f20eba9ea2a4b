package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/service/loops"
	"github.com/urfave/cli/v3"
)

type Loops struct {
	apiKey          string
	transactionalID string
}

func (x *Loops) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "loops-api-key",
			Usage:       "Loops API key for notification emails",
			Category:    "Notification",
			Destination: &x.apiKey,
			Sources:     cli.EnvVars("TIMESHIFT_LOOPS_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "loops-transactional-id",
			Usage:       "Loops transactional email template ID",
			Category:    "Notification",
			Destination: &x.transactionalID,
			Sources:     cli.EnvVars("TIMESHIFT_LOOPS_TRANSACTIONAL_ID"),
		},
	}
}

func (x Loops) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("transactional-id", x.transactionalID),
	)
}

// TransactionalID returns the template ID of the notification email
func (x *Loops) TransactionalID() string {
	return x.transactionalID
}

// Configure returns nil when no API key is set, which disables notification
func (x *Loops) Configure() (loops.Service, error) {
	if x.apiKey == "" {
		return nil, nil
	}
	if x.transactionalID == "" {
		return nil, goerr.Wrap(ErrMissingFlag, "loops-transactional-id is required with loops-api-key",
			goerr.V(FlagKey, "loops-transactional-id"))
	}

	svc, err := loops.New(x.apiKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create loops client")
	}
	return svc, nil
}
