package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/service/slack"
	"github.com/secmon-lab/timeshift/pkg/utils/async"
	"github.com/secmon-lab/timeshift/pkg/utils/errutil"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

const resumeBatchSize = 50

// StartWatch polls the upload in a detached task owned by the runner. It
// returns nil when the run is already being watched.
func (uc *TimeShiftUseCase) StartWatch(ctx context.Context, pending *PendingUpload) *async.Task {
	if !uc.claim(pending.Run.ID) {
		return nil
	}

	return uc.runner.Go(ctx, "watch_upload", func(ctx context.Context) error {
		defer uc.release(pending.Run.ID)
		return uc.WatchUpload(ctx, pending)
	})
}

func (uc *TimeShiftUseCase) claim(id model.ShiftRunID) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.watching[id]; ok {
		return false
	}
	uc.watching[id] = struct{}{}
	return true
}

func (uc *TimeShiftUseCase) release(id model.ShiftRunID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.watching, id)
}

// WatchUpload polls the upload status until it is ready, failed, or the
// attempt budget runs out, then records the outcome and notifies the user
// on success. Failures are logged and alerted but never notified by email.
func (uc *TimeShiftUseCase) WatchUpload(ctx context.Context, pending *PendingUpload) error {
	job := pending.Job
	run := pending.Run
	logger := logging.From(ctx).With(RunIDKey, run.ID, UploadIDKey, job.UploadID, ActivityIDKey, run.ActivityID)
	ctx = logging.With(ctx, logger)

	if err := uc.poll(ctx, pending); err != nil {
		return err
	}

	run.Finish(job, uc.now().UTC())
	if err := uc.repo.ShiftRun().Put(ctx, run); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to record upload result", goerr.V(RunIDKey, run.ID)), "failed to update shift run")
	}

	switch job.State {
	case types.UploadStateReady:
		logger.Info("upload is ready", "new_activity_id", job.ActivityID, "attempts", job.Attempts)
		uc.notify(ctx, pending.User, run.ActivityID, job.ActivityID)
		return nil

	case types.UploadStateFailed:
		err := goerr.Wrap(ErrUploadFailed, "platform rejected the upload",
			goerr.V(UploadIDKey, job.UploadID),
			goerr.V("reason", job.Error),
		)
		uc.reportFailure(ctx, run, "Upload failed", err)
		return err

	default:
		err := goerr.Wrap(ErrUploadTimeout, "upload still processing after all attempts",
			goerr.V(UploadIDKey, job.UploadID),
			goerr.V("attempts", job.Attempts),
			goerr.V("last_status", job.Status),
		)
		uc.reportFailure(ctx, run, "Upload timed out", err)
		return err
	}
}

// poll advances the job until it reaches a terminal state. A failed poll
// request uses up an attempt but does not end the loop.
func (uc *TimeShiftUseCase) poll(ctx context.Context, pending *PendingUpload) error {
	job := pending.Job
	timer := time.NewTimer(uc.shiftConfig.PollInterval)
	defer timer.Stop()

	for tries := 0; !job.State.IsTerminal(); tries++ {
		if tries >= uc.shiftConfig.PollMaxAttempts {
			job.Exhaust()
			return nil
		}

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "upload watch cancelled",
				goerr.V(UploadIDKey, job.UploadID),
				goerr.V("attempts", tries),
			)
		case <-timer.C:
			timer.Reset(uc.shiftConfig.PollInterval)
		}

		status, err := uc.strava.GetUpload(ctx, pending.AccessToken, job.UploadID)
		if err != nil {
			logging.From(ctx).Warn("failed to poll upload status", "error", err.Error(), "try", tries+1)
			continue
		}

		state := job.Apply(status)
		logging.From(ctx).Debug("polled upload", "state", state, "status", status.Status)
	}
	return nil
}

func (uc *TimeShiftUseCase) reportFailure(ctx context.Context, run *model.ShiftRun, title string, err error) {
	errutil.Handle(ctx, err, title)

	if uc.alert == nil {
		return
	}
	alert := &slack.Alert{
		Title:      title,
		Message:    err.Error(),
		AthleteID:  run.AthleteID,
		ActivityID: run.ActivityID,
		UploadID:   run.UploadID,
		RunID:      run.ID.String(),
	}
	if alertErr := uc.alert.PostAlert(ctx, alert); alertErr != nil {
		logging.From(ctx).Warn("failed to post alert", "error", alertErr.Error())
	}
}

// ResumeUploads restarts watchers for runs left in uploading state by a
// previous process. Only runs older than the longest possible watch are
// picked, so a live watcher elsewhere is not duplicated.
func (uc *TimeShiftUseCase) ResumeUploads(ctx context.Context) (int, error) {
	if uc.strava == nil {
		return 0, goerr.Wrap(ErrServiceNotConfigured, "strava client is not set")
	}

	before := uc.now().UTC().Add(-uc.shiftConfig.watchDeadline())
	runs, err := uc.repo.ShiftRun().ListByStatus(ctx, types.RunStatusUploading, before, resumeBatchSize)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list stalled uploads")
	}

	resumed := 0
	for _, run := range runs {
		logger := logging.From(ctx).With(RunIDKey, run.ID, UploadIDKey, run.UploadID)

		user, err := uc.repo.User().Get(ctx, run.UserID)
		if err != nil {
			errutil.Handle(ctx, goerr.Wrap(err, "failed to get user of stalled run", goerr.V(RunIDKey, run.ID)), "cannot resume upload")
			continue
		}

		creds, err := uc.refreshCredentials(ctx, user)
		if err != nil {
			errutil.Handle(ctx, err, "cannot resume upload")
			continue
		}

		// the watch budget starts over, so bump the run out of the next scan
		run.UpdatedAt = uc.now().UTC()
		if err := uc.repo.ShiftRun().Put(ctx, run); err != nil {
			errutil.Handle(ctx, goerr.Wrap(err, "failed to touch stalled run", goerr.V(RunIDKey, run.ID)), "cannot resume upload")
			continue
		}

		pending := &PendingUpload{
			User: user,
			Run:  run,
			Job: &model.UploadJob{
				UploadID: run.UploadID,
				State:    types.UploadStateProcessing,
			},
			AccessToken: creds.AccessToken,
		}
		if task := uc.StartWatch(logging.With(ctx, logger), pending); task != nil {
			logger.Info("resumed upload watch")
			resumed++
		}
	}

	return resumed, nil
}
