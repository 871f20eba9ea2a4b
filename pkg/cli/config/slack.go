package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack configures operator alerts on failed uploads. An incoming webhook
// takes precedence over a bot token.
type Slack struct {
	webhookURL string
	botToken   string
	channelID  string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for operator alerts",
			Category:    "Slack",
			Destination: &x.webhookURL,
			Sources:     cli.EnvVars("TIMESHIFT_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for operator alerts",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("TIMESHIFT_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post alerts to (with --slack-bot-token)",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("TIMESHIFT_SLACK_CHANNEL_ID"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("webhook", x.webhookURL != ""),
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// Configure returns nil when alerts are not configured
func (x *Slack) Configure() (slack.Service, error) {
	if x.webhookURL != "" {
		svc, err := slack.NewWebhook(x.webhookURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create slack webhook client")
		}
		return svc, nil
	}

	if x.botToken == "" {
		return nil, nil
	}
	if x.channelID == "" {
		return nil, goerr.Wrap(ErrMissingFlag, "slack-channel-id is required with slack-bot-token",
			goerr.V(FlagKey, "slack-channel-id"))
	}

	svc, err := slack.New(x.botToken, x.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create slack client")
	}
	return svc, nil
}
