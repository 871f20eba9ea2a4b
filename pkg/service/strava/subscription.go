package strava

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

func (c *client) appCredentials() url.Values {
	v := url.Values{}
	v.Set("client_id", c.clientID)
	v.Set("client_secret", c.clientSecret)
	return v
}

func (c *client) CreateSubscription(ctx context.Context, callbackURL, verifyToken string) (*Subscription, error) {
	form := c.appCredentials()
	form.Set("callback_url", callbackURL)
	form.Set("verify_token", verifyToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/push_subscriptions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create subscription request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var sub Subscription
	if err := c.do(c.httpClient, req, &sub); err != nil {
		return nil, goerr.Wrap(err, "failed to create push subscription", goerr.V("callback_url", callbackURL))
	}
	return &sub, nil
}

func (c *client) ListSubscriptions(ctx context.Context) ([]*Subscription, error) {
	endpoint := c.apiBaseURL + "/push_subscriptions?" + c.appCredentials().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create subscription list request")
	}

	var subs []*Subscription
	if err := c.do(c.httpClient, req, &subs); err != nil {
		return nil, goerr.Wrap(err, "failed to list push subscriptions")
	}
	return subs, nil
}

func (c *client) DeleteSubscription(ctx context.Context, id int64) error {
	endpoint := c.apiBaseURL + "/push_subscriptions/" + strconv.FormatInt(id, 10) + "?" + c.appCredentials().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create subscription delete request")
	}

	if err := c.do(c.httpClient, req, nil); err != nil {
		return goerr.Wrap(err, "failed to delete push subscription", goerr.V("id", id))
	}
	return nil
}
