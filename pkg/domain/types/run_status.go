package types

import "fmt"

// RunStatus represents the progress of a single time-shift run
type RunStatus string

const (
	RunStatusPlanned   RunStatus = "planned"
	RunStatusUploading RunStatus = "uploading"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusTimedOut  RunStatus = "timed_out"
)

// AllRunStatuses returns all valid run statuses
func AllRunStatuses() []RunStatus {
	return []RunStatus{
		RunStatusPlanned,
		RunStatusUploading,
		RunStatusCompleted,
		RunStatusFailed,
		RunStatusTimedOut,
	}
}

// IsValid checks if the run status is valid
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusPlanned,
		RunStatusUploading,
		RunStatusCompleted,
		RunStatusFailed,
		RunStatusTimedOut:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the run will not change anymore
func (s RunStatus) IsFinal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed || s == RunStatusTimedOut
}

func (s RunStatus) String() string {
	return string(s)
}

// ParseRunStatus parses a string into a RunStatus
func ParseRunStatus(s string) (RunStatus, error) {
	status := RunStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid run status: %s", s)
	}
	return status, nil
}
