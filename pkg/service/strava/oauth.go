package strava

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"golang.org/x/oauth2"
)

// AuthCodeURL returns the authorization page URL with the scopes the
// pipeline needs
func AuthCodeURL(clientID, redirectURL, state string) string {
	cfg := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURL,
		Scopes:      []string{RequiredScope},
		Endpoint:    oauth2.Endpoint{AuthURL: defaultOAuthBaseURL + "/authorize"},
	}
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

// RequiredScope is the scope granted for reading activities and uploading
// shifted ones
const RequiredScope = "read,activity:write,activity:read_all"

func (c *client) ExchangeCode(ctx context.Context, code string) (*Authorization, error) {
	token, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange authorization code")
	}

	auth := &Authorization{
		Credentials: credentialsFromToken(token),
	}

	athlete, ok := token.Extra("athlete").(map[string]any)
	if !ok {
		return nil, goerr.New("token response has no athlete")
	}
	if id, ok := athlete["id"].(float64); ok {
		auth.Athlete.ID = int64(id)
	}
	auth.Athlete.FirstName, _ = athlete["firstname"].(string)
	auth.Athlete.LastName, _ = athlete["lastname"].(string)
	if auth.Athlete.ID == 0 {
		return nil, goerr.New("token response has no athlete ID")
	}

	return auth, nil
}

func (c *client) RefreshToken(ctx context.Context, refreshToken string) (*model.Credentials, error) {
	if refreshToken == "" {
		return nil, goerr.New("refresh token is empty")
	}

	// An empty access token is never valid, so Token() always hits the endpoint
	src := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to refresh token")
	}

	creds := credentialsFromToken(token)
	return &creds, nil
}

func credentialsFromToken(token *oauth2.Token) model.Credentials {
	creds := model.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry.UTC(),
	}
	// expires_at is authoritative when present
	if expiresAt, ok := token.Extra("expires_at").(float64); ok && expiresAt > 0 {
		creds.ExpiresAt = time.Unix(int64(expiresAt), 0).UTC()
	}
	return creds
}
