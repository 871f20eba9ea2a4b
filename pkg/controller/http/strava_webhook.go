package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/secmon-lab/timeshift/pkg/utils/async"
	"github.com/secmon-lab/timeshift/pkg/utils/errutil"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/secmon-lab/timeshift/pkg/utils/safe"
)

const maxEventBodySize = 64 * 1024

// TimeShiftUseCase is the pipeline behind the push subscription endpoint
type TimeShiftUseCase interface {
	HandleEvent(ctx context.Context, event *model.WebhookEvent) (*usecase.EventResult, error)
	StartWatch(ctx context.Context, pending *usecase.PendingUpload) *async.Task
}

// StravaWebhookHandler answers subscription challenges and receives events
type StravaWebhookHandler struct {
	uc          TimeShiftUseCase
	verifyToken string
}

func NewStravaWebhookHandler(uc TimeShiftUseCase, verifyToken string) *StravaWebhookHandler {
	return &StravaWebhookHandler{
		uc:          uc,
		verifyToken: verifyToken,
	}
}

type challengeResponse struct {
	Challenge string `json:"hub.challenge"`
}

// Verify echoes hub.challenge when the verify token matches, otherwise it
// answers 403 with an empty body
func (h *StravaWebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	challenge, err := model.VerifyChallenge(q.Get("hub.mode"), q.Get("hub.verify_token"), q.Get("hub.challenge"), h.verifyToken)
	if err != nil {
		logging.From(ctx).Warn("subscription challenge rejected", "error", err.Error())
		w.WriteHeader(http.StatusForbidden)
		return
	}

	data, err := json.Marshal(challengeResponse{Challenge: challenge})
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal challenge response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, data)
}

// Receive runs the synchronous part of the pipeline and acknowledges with 200
// and an empty body. Failures of a single event are logged and reported but
// still acknowledged, so the sender does not retry into a duplicate upload.
// The upload watch is handed to the runner after the pipeline returns.
func (h *StravaWebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBodySize))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse webhook event"), http.StatusBadRequest)
		return
	}

	logger := logging.From(ctx).With(
		"aspect_type", event.AspectType,
		"object_type", event.ObjectType,
		"object_id", event.ObjectID,
		"owner_id", event.OwnerID,
	)
	ctx = logging.With(ctx, logger)

	if err := event.Validate(); err != nil {
		logger.Warn("ignoring malformed event", "error", err.Error())
		w.WriteHeader(http.StatusOK)
		return
	}

	result, err := h.uc.HandleEvent(ctx, &event)
	if err != nil {
		errutil.Handle(ctx, err, "failed to process webhook event")
		w.WriteHeader(http.StatusOK)
		return
	}
	logger.Info("webhook event handled", "outcome", result.Outcome)

	w.WriteHeader(http.StatusOK)

	if result.Upload != nil {
		h.uc.StartWatch(ctx, result.Upload)
	}
}
