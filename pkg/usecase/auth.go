package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

type AuthUseCase struct {
	*UseCases
}

func newAuthUseCase(uc *UseCases) *AuthUseCase {
	return &AuthUseCase{UseCases: uc}
}

// WithOAuthApp sets the application used to build the authorization page URL
func WithOAuthApp(clientID, redirectURL string) Option {
	return func(uc *UseCases) {
		uc.clientID = clientID
		uc.redirectURL = redirectURL
	}
}

// GetAuthURL returns the authorization page URL carrying state
func (uc *AuthUseCase) GetAuthURL(state string) (string, error) {
	if uc.clientID == "" || uc.redirectURL == "" {
		return "", goerr.Wrap(ErrServiceNotConfigured, "oauth client ID and redirect URL are required")
	}
	return strava.AuthCodeURL(uc.clientID, uc.redirectURL, state), nil
}

// HandleCallback completes the authorization flow. A user that already exists
// keeps its ID and email; names and credentials are replaced.
func (uc *AuthUseCase) HandleCallback(ctx context.Context, code, scope string) (*model.User, error) {
	if uc.strava == nil {
		return nil, goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}
	if missing := missingScopes(scope); len(missing) > 0 {
		return nil, goerr.Wrap(ErrInsufficientScope, "granted scope is not enough",
			goerr.V("granted", scope),
			goerr.V("missing", missing),
		)
	}

	auth, err := uc.strava.ExchangeCode(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange authorization code")
	}

	now := uc.now().UTC()
	user, err := uc.repo.User().GetByAthleteID(ctx, auth.Athlete.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(AthleteIDKey, auth.Athlete.ID))
	}
	if user == nil {
		user = &model.User{
			ID:        model.NewUserID(),
			AthleteID: auth.Athlete.ID,
			CreatedAt: now,
		}
	}
	user.FirstName = auth.Athlete.FirstName
	user.LastName = auth.Athlete.LastName
	user.Credentials = auth.Credentials
	user.UpdatedAt = now

	if err := uc.repo.User().Put(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to save user", goerr.V(AthleteIDKey, auth.Athlete.ID))
	}

	logging.From(ctx).Info("athlete connected", AthleteIDKey, user.AthleteID, UserIDKey, user.ID)
	return user, nil
}

// SetEmail stores the notification address of a user. An empty email turns
// notifications off.
func (uc *AuthUseCase) SetEmail(ctx context.Context, athleteID int64, email string) (*model.User, error) {
	user, err := uc.repo.User().GetByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(AthleteIDKey, athleteID))
	}
	if user == nil {
		return nil, goerr.Wrap(ErrUserNotFound, "no user for athlete", goerr.V(AthleteIDKey, athleteID))
	}

	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, goerr.New("invalid email address", goerr.V("email", email))
	}

	user.Email = email
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.User().Put(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to save user", goerr.V(AthleteIDKey, athleteID))
	}
	return user, nil
}

func missingScopes(granted string) []string {
	have := make(map[string]bool)
	for _, s := range strings.Split(granted, ",") {
		have[strings.TrimSpace(s)] = true
	}

	var missing []string
	for _, s := range strings.Split(strava.RequiredScope, ",") {
		if !have[s] {
			missing = append(missing, s)
		}
	}
	return missing
}
