package slack

import (
	"context"
)

// Service posts operator alerts for failures that cannot be reported to
// the webhook sender
type Service interface {
	PostAlert(ctx context.Context, alert *Alert) error
}

// Alert is a single failure report
type Alert struct {
	Title      string
	Message    string
	AthleteID  int64
	ActivityID int64
	UploadID   int64
	RunID      string
}
