package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/mock"
	"github.com/secmon-lab/timeshift/pkg/repository/memory"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/usecase"
)

const callbackURL = "https://example.com/hooks/strava"

func newSubscriptionMock(existing ...*strava.Subscription) *mock.StravaServiceMock {
	return &mock.StravaServiceMock{
		ListSubscriptionsFunc: func(ctx context.Context) ([]*strava.Subscription, error) {
			return existing, nil
		},
		CreateSubscriptionFunc: func(ctx context.Context, callbackURL, verifyToken string) (*strava.Subscription, error) {
			return &strava.Subscription{ID: 42, CallbackURL: callbackURL}, nil
		},
		DeleteSubscriptionFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
}

func TestEnsureSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when none", func(t *testing.T) {
		sm := newSubscriptionMock()
		uc := newUseCases(memory.New(), usecase.WithStrava(sm))

		action, sub, err := uc.Subscription.Ensure(ctx, callbackURL, "token", false)
		gt.NoError(t, err).Required()
		gt.Value(t, action).Equal(usecase.SubscriptionCreated)
		gt.Value(t, sub.ID).Equal(int64(42))
		gt.Array(t, sm.CreateSubscriptionCalls()).Length(1).Required()
		gt.Value(t, sm.CreateSubscriptionCalls()[0].VerifyToken).Equal("token")
	})

	t.Run("keeps matching one", func(t *testing.T) {
		sm := newSubscriptionMock(&strava.Subscription{ID: 7, CallbackURL: callbackURL})
		uc := newUseCases(memory.New(), usecase.WithStrava(sm))

		action, sub, err := uc.Subscription.Ensure(ctx, callbackURL, "token", false)
		gt.NoError(t, err).Required()
		gt.Value(t, action).Equal(usecase.SubscriptionExists)
		gt.Value(t, sub.ID).Equal(int64(7))
		gt.Array(t, sm.CreateSubscriptionCalls()).Length(0)
	})

	t.Run("mismatch without replace", func(t *testing.T) {
		sm := newSubscriptionMock(&strava.Subscription{ID: 7, CallbackURL: "https://old.example.com/hook"})
		uc := newUseCases(memory.New(), usecase.WithStrava(sm))

		_, _, err := uc.Subscription.Ensure(ctx, callbackURL, "token", false)
		gt.Error(t, err).Is(usecase.ErrSubscriptionMismatch)
		gt.Array(t, sm.DeleteSubscriptionCalls()).Length(0)
		gt.Array(t, sm.CreateSubscriptionCalls()).Length(0)
	})

	t.Run("replaces", func(t *testing.T) {
		sm := newSubscriptionMock(&strava.Subscription{ID: 7, CallbackURL: "https://old.example.com/hook"})
		uc := newUseCases(memory.New(), usecase.WithStrava(sm))

		action, sub, err := uc.Subscription.Ensure(ctx, callbackURL, "token", true)
		gt.NoError(t, err).Required()
		gt.Value(t, action).Equal(usecase.SubscriptionReplaced)
		gt.Value(t, sub.CallbackURL).Equal(callbackURL)
		gt.Array(t, sm.DeleteSubscriptionCalls()).Length(1).Required()
		gt.Value(t, sm.DeleteSubscriptionCalls()[0].ID).Equal(int64(7))
	})

	t.Run("requires verify token", func(t *testing.T) {
		uc := newUseCases(memory.New(), usecase.WithStrava(&mock.StravaServiceMock{}))
		_, _, err := uc.Subscription.Ensure(ctx, callbackURL, "", false)
		gt.Value(t, err).NotNil()
	})
}
