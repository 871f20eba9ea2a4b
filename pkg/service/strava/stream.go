package strava

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

// StreamKeys are the channels requested for every activity
var StreamKeys = []string{"time", "latlng", "altitude", "heartrate", "cadence", "watts", "temp"}

type streamResponse struct {
	Type         string          `json:"type"`
	Data         json.RawMessage `json:"data"`
	OriginalSize int             `json:"original_size"`
	Resolution   string          `json:"resolution"`
	SeriesType   string          `json:"series_type"`
}

func (c *client) GetStreams(ctx context.Context, accessToken string, activityID int64) (*model.StreamSet, error) {
	q := url.Values{}
	q.Set("keys", strings.Join(StreamKeys, ","))
	endpoint := c.apiBaseURL + "/activities/" + strconv.FormatInt(activityID, 10) + "/streams?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create streams request", goerr.V("activity_id", activityID))
	}

	var resp []streamResponse
	if err := c.do(c.bearer(ctx, accessToken), req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get streams", goerr.V("activity_id", activityID))
	}

	streams, err := demuxStreams(resp)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode streams", goerr.V("activity_id", activityID))
	}
	if err := streams.Validate(); err != nil {
		return nil, goerr.Wrap(err, "incomplete streams", goerr.V("activity_id", activityID))
	}
	return streams, nil
}

// demuxStreams assigns each element of the heterogeneous stream list to its
// field by type. Unrequested types such as distance are ignored.
func demuxStreams(resp []streamResponse) (*model.StreamSet, error) {
	var streams model.StreamSet

	for _, s := range resp {
		var (
			size int
			err  error
		)

		switch s.Type {
		case "time":
			err = json.Unmarshal(s.Data, &streams.Time)
			size = len(streams.Time)
		case "latlng":
			err = json.Unmarshal(s.Data, &streams.LatLng)
			size = len(streams.LatLng)
		case "altitude":
			streams.Altitude, err = decodeChannel(s.Data)
			size = len(streams.Altitude)
		case "heartrate":
			streams.HeartRate, err = decodeChannel(s.Data)
			size = len(streams.HeartRate)
		case "cadence":
			streams.Cadence, err = decodeChannel(s.Data)
			size = len(streams.Cadence)
		case "watts":
			streams.Power, err = decodeChannel(s.Data)
			size = len(streams.Power)
		case "temp":
			streams.Temp, err = decodeChannel(s.Data)
			size = len(streams.Temp)
		default:
			continue
		}

		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal stream data", goerr.V(model.StreamKey, s.Type))
		}
		if s.OriginalSize > 0 && size != s.OriginalSize {
			return nil, goerr.Wrap(ErrStreamSize, "stream is truncated",
				goerr.V(model.StreamKey, s.Type),
				goerr.V(model.ExpectedKey, s.OriginalSize),
				goerr.V(model.ActualKey, size),
			)
		}
	}

	return &streams, nil
}

func decodeChannel(data json.RawMessage) (model.Channel, error) {
	ch := model.Channel{}
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, err
	}
	return ch, nil
}
