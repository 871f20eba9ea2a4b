package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

// SubscriptionAction tells what Ensure did
type SubscriptionAction string

const (
	SubscriptionExists   SubscriptionAction = "exists"
	SubscriptionCreated  SubscriptionAction = "created"
	SubscriptionReplaced SubscriptionAction = "replaced"
)

type SubscriptionUseCase struct {
	*UseCases
}

func newSubscriptionUseCase(uc *UseCases) *SubscriptionUseCase {
	return &SubscriptionUseCase{UseCases: uc}
}

// Ensure makes callbackURL the push subscription of the application. The
// platform allows a single subscription per application, so one pointing
// elsewhere is an ErrSubscriptionMismatch unless replace is set.
func (uc *SubscriptionUseCase) Ensure(ctx context.Context, callbackURL, verifyToken string, replace bool) (SubscriptionAction, *strava.Subscription, error) {
	if uc.strava == nil {
		return "", nil, goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}
	if callbackURL == "" || verifyToken == "" {
		return "", nil, goerr.New("callback URL and verify token are required")
	}

	subs, err := uc.strava.ListSubscriptions(ctx)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to list subscriptions")
	}

	action := SubscriptionCreated
	for _, sub := range subs {
		if sub.CallbackURL == callbackURL {
			return SubscriptionExists, sub, nil
		}
		if !replace {
			return "", nil, goerr.Wrap(ErrSubscriptionMismatch, "another callback is registered",
				goerr.V("existing", sub.CallbackURL),
				goerr.V("requested", callbackURL),
			)
		}
		if err := uc.strava.DeleteSubscription(ctx, sub.ID); err != nil {
			return "", nil, goerr.Wrap(err, "failed to delete subscription", goerr.V("subscription_id", sub.ID))
		}
		logging.From(ctx).Info("deleted subscription", "subscription_id", sub.ID, "callback_url", sub.CallbackURL)
		action = SubscriptionReplaced
	}

	// the platform calls back the endpoint synchronously while this request is open
	sub, err := uc.strava.CreateSubscription(ctx, callbackURL, verifyToken)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to create subscription", goerr.V("callback_url", callbackURL))
	}
	return action, sub, nil
}

func (uc *SubscriptionUseCase) List(ctx context.Context) ([]*strava.Subscription, error) {
	if uc.strava == nil {
		return nil, goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}
	subs, err := uc.strava.ListSubscriptions(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions")
	}
	return subs, nil
}

func (uc *SubscriptionUseCase) Delete(ctx context.Context, id int64) error {
	if uc.strava == nil {
		return goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}
	if err := uc.strava.DeleteSubscription(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete subscription", goerr.V("subscription_id", id))
	}
	return nil
}
