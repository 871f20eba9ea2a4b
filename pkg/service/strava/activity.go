package strava

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

type activityResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Commute        bool    `json:"commute"`
	Trainer        bool    `json:"trainer"`
	Type           string  `json:"type"`
	UploadID       int64   `json:"upload_id"`
	ElapsedTime    int64   `json:"elapsed_time"`
	StartDate      string  `json:"start_date"`
	StartDateLocal string  `json:"start_date_local"`
	UTCOffset      float64 `json:"utc_offset"`
}

func (c *client) GetActivity(ctx context.Context, accessToken string, activityID int64) (*model.Activity, error) {
	url := c.apiBaseURL + "/activities/" + strconv.FormatInt(activityID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create activity request", goerr.V("activity_id", activityID))
	}

	var resp activityResponse
	if err := c.do(c.bearer(ctx, accessToken), req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get activity", goerr.V("activity_id", activityID))
	}

	return resp.toModel()
}

func (r *activityResponse) toModel() (*model.Activity, error) {
	start, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid start_date", goerr.V("start_date", r.StartDate))
	}
	// start_date_local carries a Z suffix but is a wall clock time
	startLocal, err := time.Parse(time.RFC3339, r.StartDateLocal)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid start_date_local", goerr.V("start_date_local", r.StartDateLocal))
	}

	a := &model.Activity{
		ID:             r.ID,
		Name:           r.Name,
		Commute:        r.Commute,
		Trainer:        r.Trainer,
		Type:           r.Type,
		UploadID:       r.UploadID,
		ElapsedTime:    time.Duration(r.ElapsedTime) * time.Second,
		StartTime:      start.UTC(),
		StartTimeLocal: time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), startLocal.Hour(), startLocal.Minute(), startLocal.Second(), 0, time.UTC),
		UTCOffset:      time.Duration(math.Round(r.UTCOffset)) * time.Second,
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	return a, nil
}
