package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

const subscribeMode = "subscribe"

// WebhookEvent is a push notification sent by the fitness platform
type WebhookEvent struct {
	AspectType     types.AspectType `json:"aspect_type"`
	EventTime      int64            `json:"event_time"`
	ObjectID       int64            `json:"object_id"`
	ObjectType     types.ObjectType `json:"object_type"`
	OwnerID        int64            `json:"owner_id"`
	SubscriptionID int64            `json:"subscription_id"`
	// Updates is accepted as-is and never inspected
	Updates map[string]any `json:"updates"`
}

// Validate checks the event shape. Unknown keys in Updates are not an error.
func (e *WebhookEvent) Validate() error {
	if !e.AspectType.IsValid() {
		return goerr.Wrap(ErrInvalidEvent, "unknown aspect_type", goerr.V("aspect_type", e.AspectType))
	}
	if !e.ObjectType.IsValid() {
		return goerr.Wrap(ErrInvalidEvent, "unknown object_type", goerr.V("object_type", e.ObjectType))
	}
	if e.ObjectID == 0 || e.OwnerID == 0 {
		return goerr.Wrap(ErrInvalidEvent, "object_id and owner_id are required",
			goerr.V("object_id", e.ObjectID),
			goerr.V("owner_id", e.OwnerID),
		)
	}
	return nil
}

// WebhookAction is the result of classifying a webhook event
type WebhookAction int

const (
	WebhookActionSkip WebhookAction = iota
	WebhookActionProcess
)

func (a WebhookAction) String() string {
	if a == WebhookActionProcess {
		return "process"
	}
	return "skip"
}

// Classify decides whether an event starts the time-shift pipeline. Only
// newly created activities are processed.
func (e *WebhookEvent) Classify() WebhookAction {
	if e.AspectType != types.AspectTypeCreate || e.ObjectType != types.ObjectTypeActivity {
		return WebhookActionSkip
	}
	return WebhookActionProcess
}

// VerifyChallenge answers a subscription verification request. It returns the
// challenge unchanged when mode is "subscribe" and verifyToken matches expected.
func VerifyChallenge(mode, verifyToken, challenge, expected string) (string, error) {
	if mode != subscribeMode {
		return "", goerr.Wrap(ErrChallengeForbidden, "unexpected hub.mode", goerr.V("mode", mode))
	}
	if expected == "" || verifyToken != expected {
		return "", goerr.Wrap(ErrChallengeForbidden, "verify token mismatch")
	}
	return challenge, nil
}
