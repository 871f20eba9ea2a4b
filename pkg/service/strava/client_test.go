package strava_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
)

func newTestClient(t *testing.T, handler http.Handler) strava.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := strava.New("client-id", "client-secret",
		strava.WithAPIBaseURL(srv.URL+"/api/v3"),
		strava.WithOAuthBaseURL(srv.URL+"/oauth"),
		strava.WithHTTPClient(srv.Client()),
	)
	gt.NoError(t, err).Required()
	return svc
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	_, err := strava.New("", "secret")
	gt.Error(t, err)

	svc, err := strava.New("id", "secret")
	gt.NoError(t, err).Required()
	gt.Value(t, svc).NotNil()
}

func TestRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm()).Required()
		gt.Value(t, r.PostForm.Get("grant_type")).Equal("refresh_token")
		gt.Value(t, r.PostForm.Get("refresh_token")).Equal("old-refresh")
		gt.Value(t, r.PostForm.Get("client_id")).Equal("client-id")
		gt.Value(t, r.PostForm.Get("client_secret")).Equal("client-secret")

		writeJSON(w, map[string]any{
			"token_type":    "Bearer",
			"access_token":  "new-access",
			"refresh_token": "new-refresh",
			"expires_at":    1704924000,
			"expires_in":    21600,
		})
	})
	svc := newTestClient(t, mux)

	creds, err := svc.RefreshToken(context.Background(), "old-refresh")
	gt.NoError(t, err).Required()
	gt.Value(t, creds.AccessToken).Equal("new-access")
	gt.Value(t, creds.RefreshToken).Equal("new-refresh")
	gt.Value(t, creds.ExpiresAt).Equal(time.Unix(1704924000, 0).UTC())
}

func TestRefreshToken_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Bad Request","errors":[{"resource":"RefreshToken","field":"refresh_token","code":"invalid"}]}`)
	})
	svc := newTestClient(t, mux)

	_, err := svc.RefreshToken(context.Background(), "revoked")
	gt.Error(t, err)
}

func TestExchangeCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm()).Required()
		gt.Value(t, r.PostForm.Get("grant_type")).Equal("authorization_code")
		gt.Value(t, r.PostForm.Get("code")).Equal("auth-code")

		writeJSON(w, map[string]any{
			"token_type":    "Bearer",
			"access_token":  "access",
			"refresh_token": "refresh",
			"expires_at":    1704924000,
			"expires_in":    21600,
			"athlete": map[string]any{
				"id":        227615,
				"firstname": "Ada",
				"lastname":  "Lovelace",
			},
		})
	})
	svc := newTestClient(t, mux)

	auth, err := svc.ExchangeCode(context.Background(), "auth-code")
	gt.NoError(t, err).Required()
	gt.Value(t, auth.Athlete.ID).Equal(int64(227615))
	gt.Value(t, auth.Athlete.FirstName).Equal("Ada")
	gt.Value(t, auth.Credentials.RefreshToken).Equal("refresh")
}

func TestGetActivity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/activities/1001", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer access")
		writeJSON(w, map[string]any{
			"id":               1001,
			"name":             "Lunch Ride",
			"description":      nil,
			"commute":          true,
			"trainer":          false,
			"type":             "Ride",
			"upload_id":        555,
			"elapsed_time":     3600,
			"start_date":       "2024-01-10T15:00:00Z",
			"start_date_local": "2024-01-10T10:00:00Z",
			"utc_offset":       -18000.0,
		})
	})
	mux.HandleFunc("GET /api/v3/activities/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Record Not Found"}`)
	})
	mux.HandleFunc("GET /api/v3/activities/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := newTestClient(t, mux)
	ctx := context.Background()

	a, err := svc.GetActivity(ctx, "access", 1001)
	gt.NoError(t, err).Required()
	gt.Value(t, a.Name).Equal("Lunch Ride")
	gt.Value(t, a.Description).Equal("")
	gt.Bool(t, a.Commute).True()
	gt.Value(t, a.ElapsedTime).Equal(time.Hour)
	gt.Value(t, a.StartTime).Equal(time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))
	gt.Value(t, a.StartTimeLocal).Equal(time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))
	gt.Value(t, a.UTCOffset).Equal(-5 * time.Hour)

	_, err = svc.GetActivity(ctx, "access", 404)
	gt.Bool(t, errors.Is(err, strava.ErrNotFound)).True()

	_, err = svc.GetActivity(ctx, "access", 500)
	gt.Bool(t, errors.Is(err, strava.ErrUnexpectedStatus)).True()
	gt.Bool(t, errors.Is(err, strava.ErrNotFound)).False()
}

func TestGetStreams(t *testing.T) {
	t.Run("demultiplexes by type", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v3/activities/1001/streams", func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Query().Get("keys")).Equal("time,latlng,altitude,heartrate,cadence,watts,temp")
			gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer access")
			_, _ = io.WriteString(w, `[
				{"type":"latlng","data":[[35.1,139.1],[35.2,139.2],[35.3,139.3]],"series_type":"distance","original_size":3,"resolution":"high"},
				{"type":"time","data":[0,1,3],"series_type":"distance","original_size":3,"resolution":"high"},
				{"type":"distance","data":[0,5.2,10.1],"series_type":"distance","original_size":3,"resolution":"high"},
				{"type":"heartrate","data":[96,null,98],"series_type":"distance","original_size":3,"resolution":"high"},
				{"type":"watts","data":[110,0,130],"series_type":"distance","original_size":3,"resolution":"high"}
			]`)
		})
		svc := newTestClient(t, mux)

		s, err := svc.GetStreams(context.Background(), "access", 1001)
		gt.NoError(t, err).Required()
		gt.Value(t, s.Time).Equal([]int64{0, 1, 3})
		gt.Value(t, s.LatLng[2]).Equal(model.LatLng{35.3, 139.3})
		gt.Array(t, s.HeartRate).Length(3)
		_, ok := s.HeartRate.At(1)
		gt.Bool(t, ok).False()
		v, ok := s.Power.At(1)
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal(0.0)
		gt.Value(t, s.Altitude).Nil()
	})

	t.Run("missing latlng", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v3/activities/1001/streams", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{"type":"time","data":[0,1,2],"original_size":3}]`)
		})
		svc := newTestClient(t, mux)

		_, err := svc.GetStreams(context.Background(), "access", 1001)
		gt.Error(t, err).Is(model.ErrMissingStream)
	})

	t.Run("truncated stream", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v3/activities/1001/streams", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{"type":"time","data":[0,1],"original_size":3}]`)
		})
		svc := newTestClient(t, mux)

		_, err := svc.GetStreams(context.Background(), "access", 1001)
		gt.Error(t, err).Is(strava.ErrStreamSize)
	})
}

func TestCreateUpload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/uploads", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer access")
		gt.NoError(t, r.ParseMultipartForm(1<<20)).Required()

		gt.Value(t, r.FormValue("name")).Equal("Lunch Ride")
		gt.Value(t, r.FormValue("description")).Equal("windy")
		gt.Value(t, r.FormValue("commute")).Equal("1")
		gt.Value(t, r.FormValue("trainer")).Equal("0")
		gt.Value(t, r.FormValue("data_type")).Equal("gpx")

		f, header, err := r.FormFile("file")
		gt.NoError(t, err).Required()
		defer f.Close()
		gt.Value(t, header.Filename).Equal("1001-shifted.gpx")
		gt.Value(t, header.Header.Get("Content-Type")).Equal("application/gpx+xml")
		data, err := io.ReadAll(f)
		gt.NoError(t, err).Required()
		gt.Value(t, string(data)).Equal("<gpx/>")

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":9,"id_str":"9","external_id":"1001-shifted.gpx","error":null,"status":"Your activity is still being processed.","activity_id":null}`)
	})
	svc := newTestClient(t, mux)

	status, err := svc.CreateUpload(context.Background(), "access", &strava.UploadRequest{
		FileName:    "1001-shifted.gpx",
		ContentType: "application/gpx+xml",
		DataType:    "gpx",
		Data:        []byte("<gpx/>"),
		Name:        "Lunch Ride",
		Description: "windy",
		Commute:     true,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, status.ID).Equal(int64(9))
	gt.Value(t, status.Error).Equal("")
	gt.Value(t, status.ActivityID).Equal(int64(0))
}

func TestGetUpload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/uploads/9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":9,"id_str":"9","error":null,"status":"Your activity is ready.","activity_id":777}`)
	})
	svc := newTestClient(t, mux)

	status, err := svc.GetUpload(context.Background(), "access", 9)
	gt.NoError(t, err).Required()
	gt.Value(t, status.Status).Equal(model.UploadReadyStatus)
	gt.Value(t, status.ActivityID).Equal(int64(777))
}

func TestSubscriptions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/push_subscriptions", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm()).Required()
		gt.Value(t, r.PostForm.Get("client_id")).Equal("client-id")
		gt.Value(t, r.PostForm.Get("callback_url")).Equal("https://example.com/hooks/strava")
		gt.Value(t, r.PostForm.Get("verify_token")).Equal("STRAVA")
		gt.Value(t, r.Header.Get("Authorization")).Equal("")
		writeJSON(w, map[string]any{"id": 1})
	})
	mux.HandleFunc("GET /api/v3/push_subscriptions", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("client_secret")).Equal("client-secret")
		writeJSON(w, []map[string]any{{"id": 1, "callback_url": "https://example.com/hooks/strava"}})
	})
	mux.HandleFunc("DELETE /api/v3/push_subscriptions/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	svc := newTestClient(t, mux)
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, "https://example.com/hooks/strava", "STRAVA")
	gt.NoError(t, err).Required()
	gt.Value(t, sub.ID).Equal(int64(1))

	subs, err := svc.ListSubscriptions(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, subs).Length(1).Required()
	gt.Value(t, subs[0].CallbackURL).Equal("https://example.com/hooks/strava")

	gt.NoError(t, svc.DeleteSubscription(ctx, 1))
}

func TestAuthCodeURL(t *testing.T) {
	u := strava.AuthCodeURL("client-id", "https://example.com/auth/strava/callback", "state")
	gt.String(t, u).Contains("client_id=client-id")
	gt.String(t, u).Contains("scope=read%2Cactivity%3Awrite%2Cactivity%3Aread_all")
	gt.String(t, u).Contains("response_type=code")
}
