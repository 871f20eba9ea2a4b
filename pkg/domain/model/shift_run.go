package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

// ShiftRunID is a UUID-based identifier for ShiftRun
type ShiftRunID string

// NewShiftRunID generates a new UUID v7 ShiftRunID
func NewShiftRunID() ShiftRunID {
	return ShiftRunID(uuid.Must(uuid.NewV7()).String())
}

func (id ShiftRunID) String() string {
	return string(id)
}

// ShiftRun records one processed activity from planning to the terminal
// upload state
type ShiftRun struct {
	ID            ShiftRunID
	UserID        UserID
	AthleteID     int64
	ActivityID    int64
	UploadID      int64
	NewActivityID int64
	Status        types.RunStatus
	OriginalStart time.Time // UTC
	ShiftedStart  time.Time // local wall clock
	ShiftedEnd    time.Time // local wall clock
	DeltaSeconds  int64
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewShiftRun creates a planned run for an activity
func NewShiftRun(user *User, activity *Activity, plan *ShiftPlan, now time.Time) *ShiftRun {
	return &ShiftRun{
		ID:            NewShiftRunID(),
		UserID:        user.ID,
		AthleteID:     user.AthleteID,
		ActivityID:    activity.ID,
		Status:        types.RunStatusPlanned,
		OriginalStart: activity.StartTime,
		ShiftedStart:  plan.NewStartTimeLocal,
		ShiftedEnd:    plan.NewEndTimeLocal,
		DeltaSeconds:  plan.DeltaSeconds(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Finish moves the run to the status matching the job's terminal state
func (r *ShiftRun) Finish(job *UploadJob, now time.Time) {
	switch job.State {
	case types.UploadStateReady:
		r.Status = types.RunStatusCompleted
		r.NewActivityID = job.ActivityID
	case types.UploadStateFailed:
		r.Status = types.RunStatusFailed
		r.Error = job.Error
	case types.UploadStateTimedOut:
		r.Status = types.RunStatusTimedOut
		r.Error = "upload did not finish: " + job.Status
	default:
		return
	}
	r.UpdatedAt = now
}
