package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/mock"
	"github.com/secmon-lab/timeshift/pkg/repository/memory"
	"github.com/secmon-lab/timeshift/pkg/service/loops"
	"github.com/secmon-lab/timeshift/pkg/service/slack"
	"github.com/secmon-lab/timeshift/pkg/usecase"
)

func newLoopsMock() *mock.LoopsServiceMock {
	return &mock.LoopsServiceMock{
		UpsertContactFunc: func(ctx context.Context, contact *loops.Contact) error {
			return nil
		},
		SendTransactionalFunc: func(ctx context.Context, email *loops.TransactionalEmail) error {
			return nil
		},
	}
}

func newSlackMock() *mock.SlackServiceMock {
	return &mock.SlackServiceMock{
		PostAlertFunc: func(ctx context.Context, alert *slack.Alert) error {
			return nil
		},
	}
}

func submit(t *testing.T, uc *usecase.UseCases) *usecase.PendingUpload {
	t.Helper()
	result, err := uc.TimeShift.HandleEvent(context.Background(), createEvent(100, 555))
	gt.NoError(t, err).Required()
	gt.Value(t, result.Outcome).Equal(usecase.OutcomeUploaded)
	return result.Upload
}

func TestWatchUpload_ReadySendsEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	user := seedUser(t, repo, 100, "jane@example.com")
	sm := newStravaMock(testActivity(555), processing(), processing(), ready(9001))
	lm := newLoopsMock()
	alert := &mock.SlackServiceMock{}
	uc := newUseCases(repo,
		usecase.WithStrava(sm),
		usecase.WithLoops(lm, "tmpl-1"),
		usecase.WithAlert(alert),
	)

	pending := submit(t, uc)
	gt.NoError(t, uc.TimeShift.WatchUpload(ctx, pending)).Required()

	gt.Array(t, sm.GetUploadCalls()).Length(3)
	gt.Value(t, sm.GetUploadCalls()[0].UploadID).Equal(int64(777))
	gt.Value(t, sm.GetUploadCalls()[0].AccessToken).Equal("new-access")

	gt.Array(t, lm.UpsertContactCalls()).Length(1).Required()
	contact := lm.UpsertContactCalls()[0].Contact
	gt.Value(t, contact.Email).Equal("jane@example.com")
	gt.Value(t, contact.FirstName).Equal("Jane")
	gt.Bool(t, contact.Subscribed).True()
	gt.Value(t, contact.UserID).Equal(user.ID.String())

	gt.Array(t, lm.SendTransactionalCalls()).Length(1).Required()
	email := lm.SendTransactionalCalls()[0].Email
	gt.Value(t, email.TransactionalID).Equal("tmpl-1")
	gt.Value(t, email.DataVariables["newActivityURL"]).Equal("https://www.strava.com/activities/9001")
	gt.Value(t, email.DataVariables["oldActivityURL"]).Equal("https://www.strava.com/activities/555")
	gt.Value(t, email.DataVariables["lastName"]).Equal("Doe")

	run, err := repo.ShiftRun().Get(ctx, pending.Run.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, run.Status).Equal(types.RunStatusCompleted)
	gt.Value(t, run.NewActivityID).Equal(int64(9001))
}

func TestWatchUpload_ReadyWithoutEmail(t *testing.T) {
	repo := memory.New()
	seedUser(t, repo, 100, "")
	uc := newUseCases(repo,
		usecase.WithStrava(newStravaMock(testActivity(555), ready(9001))),
		// no call may reach the email service
		usecase.WithLoops(&mock.LoopsServiceMock{}, "tmpl-1"),
	)

	pending := submit(t, uc)
	gt.NoError(t, uc.TimeShift.WatchUpload(context.Background(), pending)).Required()
}

func TestWatchUpload_EmailFailureIsSwallowed(t *testing.T) {
	repo := memory.New()
	seedUser(t, repo, 100, "jane@example.com")
	lm := newLoopsMock()
	lm.UpsertContactFunc = func(ctx context.Context, contact *loops.Contact) error {
		return goerr.New("loops is down")
	}
	uc := newUseCases(repo,
		usecase.WithStrava(newStravaMock(testActivity(555), ready(9001))),
		usecase.WithLoops(lm, "tmpl-1"),
	)

	pending := submit(t, uc)
	gt.NoError(t, uc.TimeShift.WatchUpload(context.Background(), pending)).Required()
	gt.Array(t, lm.SendTransactionalCalls()).Length(0)
}

func TestWatchUpload_FailedAlertsAndSkipsEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedUser(t, repo, 100, "jane@example.com")
	failed := &model.UploadStatus{ID: 777, Status: "There was an error processing your activity.", Error: "file is empty"}
	alert := newSlackMock()
	uc := newUseCases(repo,
		usecase.WithStrava(newStravaMock(testActivity(555), processing(), failed)),
		usecase.WithLoops(&mock.LoopsServiceMock{}, "tmpl-1"),
		usecase.WithAlert(alert),
	)

	pending := submit(t, uc)
	err := uc.TimeShift.WatchUpload(ctx, pending)
	gt.Error(t, err).Is(usecase.ErrUploadFailed)

	gt.Array(t, alert.PostAlertCalls()).Length(1).Required()
	gt.Value(t, alert.PostAlertCalls()[0].Alert.UploadID).Equal(int64(777))
	gt.Value(t, alert.PostAlertCalls()[0].Alert.ActivityID).Equal(int64(555))

	run, err := repo.ShiftRun().Get(ctx, pending.Run.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, run.Status).Equal(types.RunStatusFailed)
	gt.Value(t, run.Error).Equal("file is empty")
}

func TestWatchUpload_TimesOut(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedUser(t, repo, 100, "jane@example.com")
	sm := newStravaMock(testActivity(555), processing())
	alert := newSlackMock()
	uc := newUseCases(repo,
		usecase.WithStrava(sm),
		usecase.WithLoops(&mock.LoopsServiceMock{}, "tmpl-1"),
		usecase.WithAlert(alert),
	)

	pending := submit(t, uc)
	err := uc.TimeShift.WatchUpload(ctx, pending)
	gt.Error(t, err).Is(usecase.ErrUploadTimeout)

	// bounded by PollMaxAttempts of the test config
	gt.Array(t, sm.GetUploadCalls()).Length(5)
	gt.Array(t, alert.PostAlertCalls()).Length(1)

	run, err := repo.ShiftRun().Get(ctx, pending.Run.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, run.Status).Equal(types.RunStatusTimedOut)
}

func TestWatchUpload_PollErrorsAreRetried(t *testing.T) {
	repo := memory.New()
	seedUser(t, repo, 100, "")
	sm := newStravaMock(testActivity(555))
	calls := 0
	sm.GetUploadFunc = func(ctx context.Context, accessToken string, uploadID int64) (*model.UploadStatus, error) {
		calls++
		if calls < 3 {
			return nil, goerr.New("connection reset")
		}
		return ready(9001), nil
	}
	uc := newUseCases(repo, usecase.WithStrava(sm))

	pending := submit(t, uc)
	gt.NoError(t, uc.TimeShift.WatchUpload(context.Background(), pending)).Required()
	gt.Value(t, calls).Equal(3)
	gt.Value(t, pending.Job.State).Equal(types.UploadStateReady)
}

func TestWatchUpload_Cancelled(t *testing.T) {
	repo := memory.New()
	seedUser(t, repo, 100, "")
	cfg := testShiftConfig()
	cfg.PollInterval = time.Hour
	uc := newUseCases(repo,
		usecase.WithStrava(newStravaMock(testActivity(555), processing())),
		usecase.WithShiftConfig(cfg),
	)

	pending := submit(t, uc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := uc.TimeShift.WatchUpload(ctx, pending)
	gt.Error(t, err).Is(context.Canceled)

	run, err := repo.ShiftRun().Get(context.Background(), pending.Run.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, run.Status).Equal(types.RunStatusUploading)
}

func TestStartWatch(t *testing.T) {
	repo := memory.New()
	seedUser(t, repo, 100, "")
	uc := newUseCases(repo, usecase.WithStrava(newStravaMock(testActivity(555), processing(), ready(9001))))

	pending := submit(t, uc)
	task := uc.TimeShift.StartWatch(context.Background(), pending)
	gt.Value(t, task).NotNil().Required()

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not finish")
	}
	gt.NoError(t, task.Err()).Required()
	gt.NoError(t, uc.Runner().WaitTimeout(time.Second)).Required()

	run, err := repo.ShiftRun().Get(context.Background(), pending.Run.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, run.Status).Equal(types.RunStatusCompleted)
}

func TestResumeUploads(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	user := seedUser(t, repo, 100, "")

	stale := &model.ShiftRun{
		ID:         model.NewShiftRunID(),
		UserID:     user.ID,
		AthleteID:  100,
		ActivityID: 555,
		UploadID:   777,
		Status:     types.RunStatusUploading,
		CreatedAt:  testNow.Add(-time.Hour),
		UpdatedAt:  testNow.Add(-time.Hour),
	}
	fresh := &model.ShiftRun{
		ID:         model.NewShiftRunID(),
		UserID:     user.ID,
		AthleteID:  100,
		ActivityID: 556,
		UploadID:   778,
		Status:     types.RunStatusUploading,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	gt.NoError(t, repo.ShiftRun().Put(ctx, stale)).Required()
	gt.NoError(t, repo.ShiftRun().Put(ctx, fresh)).Required()

	sm := newStravaMock(nil, ready(9001))
	uc := newUseCases(repo, usecase.WithStrava(sm))

	resumed, err := uc.TimeShift.ResumeUploads(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, resumed).Equal(1)
	gt.NoError(t, uc.Runner().WaitTimeout(5*time.Second)).Required()

	gt.Array(t, sm.GetUploadCalls()).Length(1).Required()
	gt.Value(t, sm.GetUploadCalls()[0].UploadID).Equal(int64(777))

	got, err := repo.ShiftRun().Get(ctx, stale.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.RunStatusCompleted)

	got, err = repo.ShiftRun().Get(ctx, fresh.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.RunStatusUploading)
}
