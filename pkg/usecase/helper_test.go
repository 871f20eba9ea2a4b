package usecase_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/mock"
	"github.com/secmon-lab/timeshift/pkg/repository/memory"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/usecase"
)

type fixedRand int64

func (r fixedRand) Int64N(int64) int64 { return int64(r) }

var testNow = time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

func testShiftConfig() usecase.ShiftConfig {
	cfg := usecase.DefaultShiftConfig()
	cfg.PollInterval = time.Millisecond
	cfg.PollMaxAttempts = 5
	return cfg
}

// testActivity started at 10:00 local (UTC-5) and lasted one hour
func testActivity(id int64) *model.Activity {
	return &model.Activity{
		ID:             id,
		Name:           "Lunch Ride",
		Description:    "easy spin",
		Type:           "Ride",
		Commute:        true,
		ElapsedTime:    time.Hour,
		StartTime:      time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC),
		StartTimeLocal: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		UTCOffset:      -5 * time.Hour,
	}
}

func testStreams() *model.StreamSet {
	return &model.StreamSet{
		Time:      []int64{0, 1800, 3600},
		LatLng:    []model.LatLng{{35.0, 139.0}, {35.1, 139.1}, {35.2, 139.2}},
		HeartRate: model.NewChannel(110, 140, 120),
	}
}

func seedUser(t *testing.T, repo *memory.Memory, athleteID int64, email string) *model.User {
	t.Helper()
	user := &model.User{
		ID:        model.NewUserID(),
		AthleteID: athleteID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Credentials: model.Credentials{
			AccessToken:  "old-access",
			RefreshToken: "old-refresh",
			ExpiresAt:    testNow.Add(-time.Hour),
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	gt.NoError(t, repo.User().Put(context.Background(), user)).Required()
	return user
}

// newStravaMock answers the full happy path. uploadStatuses are returned by
// GetUpload in order; the last one repeats.
func newStravaMock(activity *model.Activity, uploadStatuses ...*model.UploadStatus) *mock.StravaServiceMock {
	var polls atomic.Int32
	return &mock.StravaServiceMock{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*model.Credentials, error) {
			return &model.Credentials{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				ExpiresAt:    testNow.Add(6 * time.Hour),
			}, nil
		},
		GetActivityFunc: func(ctx context.Context, accessToken string, activityID int64) (*model.Activity, error) {
			return activity, nil
		},
		GetStreamsFunc: func(ctx context.Context, accessToken string, activityID int64) (*model.StreamSet, error) {
			return testStreams(), nil
		},
		CreateUploadFunc: func(ctx context.Context, accessToken string, req *strava.UploadRequest) (*model.UploadStatus, error) {
			return &model.UploadStatus{ID: 777, Status: "Your activity is still being processed."}, nil
		},
		GetUploadFunc: func(ctx context.Context, accessToken string, uploadID int64) (*model.UploadStatus, error) {
			i := int(polls.Add(1)) - 1
			if i >= len(uploadStatuses) {
				i = len(uploadStatuses) - 1
			}
			return uploadStatuses[i], nil
		},
	}
}

func processing() *model.UploadStatus {
	return &model.UploadStatus{ID: 777, Status: "Your activity is still being processed."}
}

func ready(activityID int64) *model.UploadStatus {
	return &model.UploadStatus{ID: 777, Status: model.UploadReadyStatus, ActivityID: activityID}
}

func createEvent(athleteID, activityID int64) *model.WebhookEvent {
	return &model.WebhookEvent{
		AspectType: types.AspectTypeCreate,
		ObjectType: types.ObjectTypeActivity,
		ObjectID:   activityID,
		OwnerID:    athleteID,
		EventTime:  testNow.Unix(),
	}
}
