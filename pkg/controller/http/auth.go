package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/secmon-lab/timeshift/pkg/utils/errutil"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

const stateCookieName = "oauth_state"

// AuthUseCase connects athletes through the platform's authorization flow
type AuthUseCase interface {
	GetAuthURL(state string) (string, error)
	HandleCallback(ctx context.Context, code, scope string) (*model.User, error)
}

// generateState generates a random state parameter for OAuth
func generateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", goerr.Wrap(err, "failed to generate random state")
	}
	return hex.EncodeToString(bytes), nil
}

// authLoginHandler handles the OAuth login initiation
func authLoginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Generate state parameter to prevent CSRF
		state, err := generateState()
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		authURL, err := authUC.GetAuthURL(state)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})

		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// authCallbackHandler handles the OAuth callback
func authCallbackHandler(authUC AuthUseCase, redirectTo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		// Verify state parameter
		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrInvalidState, "no state cookie"), http.StatusBadRequest)
			return
		}
		if state := q.Get("state"); state == "" || state != stateCookie.Value {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrInvalidState, "invalid state parameter"), http.StatusBadRequest)
			return
		}

		// Clear state cookie
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		// the athlete pressed cancel on the authorization page
		if reason := q.Get("error"); reason != "" {
			errutil.HandleHTTP(ctx, w, goerr.New("authorization denied", goerr.V("reason", reason)), http.StatusBadRequest)
			return
		}

		code := q.Get("code")
		if code == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("missing authorization code"), http.StatusBadRequest)
			return
		}

		user, err := authUC.HandleCallback(ctx, code, q.Get("scope"))
		if err != nil {
			if errors.Is(err, usecase.ErrInsufficientScope) {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "Must authorize read, activity:write, and activity:read_all"), http.StatusBadRequest)
				return
			}
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		logging.From(ctx).Info("authorization completed", "athlete_id", user.AthleteID)
		http.Redirect(w, r, redirectTo, http.StatusFound)
	}
}
