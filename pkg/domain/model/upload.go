package model

import (
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

// UploadReadyStatus is the literal status the platform reports once an
// uploaded file has been turned into an activity
const UploadReadyStatus = "Your activity is ready."

// UploadStatus is a single response of the upload endpoint
type UploadStatus struct {
	ID         int64
	Status     string
	Error      string
	ActivityID int64 // zero until the activity is created
}

// UploadJob tracks a submitted upload until it reaches a terminal state
type UploadJob struct {
	UploadID   int64
	State      types.UploadState
	Status     string
	Error      string
	ActivityID int64
	Attempts   int
}

// NewUploadJob starts a job from the submission response. The submission
// itself may already carry an error or the ready status.
func NewUploadJob(initial *UploadStatus) *UploadJob {
	job := &UploadJob{
		UploadID: initial.ID,
		State:    types.UploadStateProcessing,
	}
	job.absorb(initial)
	return job
}

// Apply folds one poll result into the job and returns the next state.
// Terminal jobs ignore further results.
func (j *UploadJob) Apply(status *UploadStatus) types.UploadState {
	if j.State.IsTerminal() {
		return j.State
	}
	j.Attempts++
	j.absorb(status)
	return j.State
}

// Exhaust marks a still processing job as timed out
func (j *UploadJob) Exhaust() types.UploadState {
	if !j.State.IsTerminal() {
		j.State = types.UploadStateTimedOut
	}
	return j.State
}

func (j *UploadJob) absorb(status *UploadStatus) {
	j.Status = status.Status
	j.Error = status.Error
	if status.ActivityID != 0 {
		j.ActivityID = status.ActivityID
	}

	switch {
	case status.Error != "":
		j.State = types.UploadStateFailed
	case status.Status == UploadReadyStatus:
		j.State = types.UploadStateReady
	}
}
