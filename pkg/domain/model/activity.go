package model

import (
	"fmt"
	"time"
)

const activityURLBase = "https://www.strava.com/activities/"

// Activity is a read-only snapshot of an uploaded exercise activity
type Activity struct {
	ID          int64
	Name        string
	Description string
	Commute     bool
	Trainer     bool
	Type        string
	UploadID    int64
	ElapsedTime time.Duration
	// StartTime is the absolute start time in UTC
	StartTime time.Time
	// StartTimeLocal is the wall clock start time where the activity happened,
	// expressed in the UTC location (its zone carries no meaning).
	StartTimeLocal time.Time
	UTCOffset      time.Duration
}

// EndTimeLocal returns the wall clock time the activity finished
func (a *Activity) EndTimeLocal() time.Time {
	return a.StartTimeLocal.Add(a.ElapsedTime)
}

// ActivityURL returns the public URL of an activity
func ActivityURL(id int64) string {
	return fmt.Sprintf("%s%d", activityURLBase, id)
}
