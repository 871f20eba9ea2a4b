package slack

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxTextBytes keeps a section block below the Block Kit text limit
const maxTextBytes = 2900

// client implements Service interface
type client struct {
	api        *slack.Client
	apiURL     string
	channelID  string
	webhookURL string
}

var _ Service = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL points the bot client at another endpoint
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// New creates an alert service posting to channelID with a bot token
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)
	return c, nil
}

// NewWebhook creates an alert service posting to an incoming webhook
func NewWebhook(webhookURL string) (Service, error) {
	if webhookURL == "" {
		return nil, goerr.New("Slack webhook URL is required")
	}
	return &client{webhookURL: webhookURL}, nil
}

func (c *client) PostAlert(ctx context.Context, alert *Alert) error {
	blocks := buildAlertBlocks(alert)
	fallback := alert.Title

	if c.webhookURL != "" {
		msg := &slack.WebhookMessage{
			Text:   fallback,
			Blocks: &slack.Blocks{BlockSet: blocks},
		}
		if err := slack.PostWebhookContext(ctx, c.webhookURL, msg); err != nil {
			return goerr.Wrap(err, "failed to post alert to webhook")
		}
		return nil
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post alert", goerr.V("channel_id", c.channelID))
	}
	return nil
}

func buildAlertBlocks(alert *Alert) []slack.Block {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, truncateToMaxBytes(alert.Title, 150), false, false))

	var fields []*slack.TextBlockObject
	if alert.AthleteID != 0 {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Athlete*\n%d", alert.AthleteID), false, false))
	}
	if alert.ActivityID != 0 {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Activity*\n%d", alert.ActivityID), false, false))
	}
	if alert.UploadID != 0 {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Upload*\n%d", alert.UploadID), false, false))
	}
	if alert.RunID != "" {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, "*Run*\n"+alert.RunID, false, false))
	}

	blocks := []slack.Block{header}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}
	if alert.Message != "" {
		text := slack.NewTextBlockObject(slack.MarkdownType, "```"+truncateToMaxBytes(alert.Message, maxTextBytes)+"```", false, false)
		blocks = append(blocks, slack.NewSectionBlock(text, nil, nil))
	}
	return blocks
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8 rune
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
