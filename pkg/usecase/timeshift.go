package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/model/gpx"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

// Outcome tells how a webhook event ended
type Outcome string

const (
	OutcomeIgnored          Outcome = "ignored"
	OutcomeUnknownUser      Outcome = "unknown_user"
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeActivityNotFound Outcome = "activity_not_found"
	OutcomeOutsideWindow    Outcome = "outside_work_window"
	OutcomeUploaded         Outcome = "uploaded"
)

// EventResult is the result of the synchronous part of the pipeline
type EventResult struct {
	Outcome Outcome
	// set only when Outcome is OutcomeUploaded
	Upload *PendingUpload
}

// PendingUpload is a submitted upload waiting for the platform to process it
type PendingUpload struct {
	User        *model.User
	Run         *model.ShiftRun
	Job         *model.UploadJob
	AccessToken string
}

type TimeShiftUseCase struct {
	*UseCases

	mu       sync.Mutex
	watching map[model.ShiftRunID]struct{}
}

func newTimeShiftUseCase(uc *UseCases) *TimeShiftUseCase {
	return &TimeShiftUseCase{
		UseCases: uc,
		watching: make(map[model.ShiftRunID]struct{}),
	}
}

// HandleEvent runs the pipeline from credential refresh up to the upload
// submission. Benign terminations are reported through the Outcome with a nil
// error. Any error is fatal for the event only.
func (uc *TimeShiftUseCase) HandleEvent(ctx context.Context, event *model.WebhookEvent) (*EventResult, error) {
	if event.Classify() != model.WebhookActionProcess {
		return &EventResult{Outcome: OutcomeIgnored}, nil
	}
	if uc.strava == nil {
		return nil, goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}

	logger := logging.From(ctx).With(AthleteIDKey, event.OwnerID, ActivityIDKey, event.ObjectID)
	ctx = logging.With(ctx, logger)

	user, err := uc.repo.User().GetByAthleteID(ctx, event.OwnerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(AthleteIDKey, event.OwnerID))
	}
	if user == nil {
		logger.Info("event for unknown athlete, skipping")
		return &EventResult{Outcome: OutcomeUnknownUser}, nil
	}

	existing, err := uc.repo.ShiftRun().GetByActivityID(ctx, event.ObjectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up shift run", goerr.V(ActivityIDKey, event.ObjectID))
	}
	if existing != nil {
		logger.Info("activity already processed, skipping", RunIDKey, existing.ID, "status", existing.Status)
		return &EventResult{Outcome: OutcomeAlreadyProcessed}, nil
	}

	creds, err := uc.refreshCredentials(ctx, user)
	if err != nil {
		return nil, err
	}

	activity, err := uc.strava.GetActivity(ctx, creds.AccessToken, event.ObjectID)
	if err != nil {
		if errors.Is(err, strava.ErrNotFound) {
			logger.Info("activity not found, stale event or deleted activity")
			return &EventResult{Outcome: OutcomeActivityNotFound}, nil
		}
		return nil, goerr.Wrap(err, "failed to fetch activity", goerr.V(ActivityIDKey, event.ObjectID))
	}

	plan := uc.shiftConfig.WorkWindow.Plan(activity, uc.rnd)
	if !plan.WithinWorkWindow {
		logger.Info("activity is outside work window",
			"start_local", activity.StartTimeLocal.Format("2006-01-02T15:04:05"),
			"work_window", uc.shiftConfig.WorkWindow.String(),
		)
		return &EventResult{Outcome: OutcomeOutsideWindow}, nil
	}
	logger.Info("shifting activity",
		"start_local", activity.StartTimeLocal.Format("2006-01-02T15:04:05"),
		"new_start_local", plan.NewStartTimeLocal.Format("2006-01-02T15:04:05"),
		"new_end_local", plan.NewEndTimeLocal.Format("2006-01-02T15:04:05"),
		"delta_seconds", plan.DeltaSeconds(),
	)

	streams, err := uc.strava.GetStreams(ctx, creds.AccessToken, activity.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch streams", goerr.V(ActivityIDKey, activity.ID))
	}

	doc, err := gpx.Encode(activity, streams, plan.Delta)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode track", goerr.V(ActivityIDKey, activity.ID))
	}

	status, err := uc.strava.CreateUpload(ctx, creds.AccessToken, &strava.UploadRequest{
		FileName:    gpx.FileName(activity.ID),
		ContentType: gpx.ContentType,
		DataType:    gpx.DataType,
		Data:        doc,
		Name:        activity.Name,
		Description: activity.Description,
		Commute:     activity.Commute,
		Trainer:     activity.Trainer,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to submit upload", goerr.V(ActivityIDKey, activity.ID))
	}
	if status.Error != "" {
		return nil, goerr.Wrap(ErrUploadFailed, "upload rejected on submission",
			goerr.V(ActivityIDKey, activity.ID),
			goerr.V(UploadIDKey, status.ID),
			goerr.V("reason", status.Error),
		)
	}

	job := model.NewUploadJob(status)
	run := model.NewShiftRun(user, activity, plan, uc.now().UTC())
	run.UploadID = job.UploadID
	run.Status = types.RunStatusUploading
	if err := uc.repo.ShiftRun().Put(ctx, run); err != nil {
		return nil, goerr.Wrap(err, "failed to record shift run", goerr.V(RunIDKey, run.ID))
	}
	logger.Info("upload submitted", UploadIDKey, job.UploadID, RunIDKey, run.ID)

	uc.archiveTrack(ctx, user, activity, doc)

	return &EventResult{
		Outcome: OutcomeUploaded,
		Upload: &PendingUpload{
			User:        user,
			Run:         run,
			Job:         job,
			AccessToken: creds.AccessToken,
		},
	}, nil
}

// refreshCredentials exchanges the stored refresh token and persists the new
// pair before anything else uses it
func (uc *TimeShiftUseCase) refreshCredentials(ctx context.Context, user *model.User) (*model.Credentials, error) {
	creds, err := uc.strava.RefreshToken(ctx, user.Credentials.RefreshToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to refresh token", goerr.V(UserIDKey, user.ID))
	}
	if err := uc.repo.User().UpdateCredentials(ctx, user.ID, *creds); err != nil {
		return nil, goerr.Wrap(err, "failed to persist refreshed token", goerr.V(UserIDKey, user.ID))
	}
	user.Credentials = *creds
	return creds, nil
}

// archiveTrack keeps a copy of the generated file. Failures are only logged.
func (uc *TimeShiftUseCase) archiveTrack(ctx context.Context, user *model.User, activity *model.Activity, doc []byte) {
	if uc.archive == nil {
		return
	}
	uri, err := uc.archive.Put(ctx, user.AthleteID, activity.ID, gpx.ContentType, doc)
	if err != nil {
		logging.From(ctx).Warn("failed to archive track", "error", err.Error())
		return
	}
	logging.From(ctx).Info("track archived", "uri", uri)
}
