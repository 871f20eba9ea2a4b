package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

func TestWebhookEvent_Classify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.WebhookAction
	}{
		{
			name: "activity create",
			body: `{"aspect_type":"create","event_time":1704902400,"object_id":1001,"object_type":"activity","owner_id":7,"subscription_id":3,"updates":{}}`,
			want: model.WebhookActionProcess,
		},
		{
			name: "activity update with unknown updates",
			body: `{"aspect_type":"update","event_time":1704902400,"object_id":1001,"object_type":"activity","owner_id":7,"subscription_id":3,"updates":{"title":"x","private":"true","something":{"nested":1}}}`,
			want: model.WebhookActionSkip,
		},
		{
			name: "activity delete",
			body: `{"aspect_type":"delete","event_time":1704902400,"object_id":1001,"object_type":"activity","owner_id":7,"subscription_id":3}`,
			want: model.WebhookActionSkip,
		},
		{
			name: "athlete deauthorization",
			body: `{"aspect_type":"update","event_time":1704902400,"object_id":7,"object_type":"athlete","owner_id":7,"subscription_id":3,"updates":{"authorized":"false"}}`,
			want: model.WebhookActionSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev model.WebhookEvent
			gt.NoError(t, json.Unmarshal([]byte(tt.body), &ev)).Required()
			gt.NoError(t, ev.Validate())
			gt.Value(t, ev.Classify()).Equal(tt.want)
		})
	}
}

func TestWebhookEvent_Validate(t *testing.T) {
	ev := model.WebhookEvent{AspectType: "rename", ObjectType: types.ObjectTypeActivity, ObjectID: 1, OwnerID: 1}
	gt.Error(t, ev.Validate()).Is(model.ErrInvalidEvent)

	ev = model.WebhookEvent{AspectType: types.AspectTypeCreate, ObjectType: types.ObjectTypeActivity}
	gt.Error(t, ev.Validate()).Is(model.ErrInvalidEvent)
}

func TestVerifyChallenge(t *testing.T) {
	got, err := model.VerifyChallenge("subscribe", "secret", "abc123", "secret")
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal("abc123")

	_, err = model.VerifyChallenge("subscribe", "wrong", "abc123", "secret")
	gt.Error(t, err).Is(model.ErrChallengeForbidden)

	_, err = model.VerifyChallenge("unsubscribe", "secret", "abc123", "secret")
	gt.Error(t, err).Is(model.ErrChallengeForbidden)

	_, err = model.VerifyChallenge("subscribe", "", "abc123", "")
	gt.Error(t, err).Is(model.ErrChallengeForbidden)
}
