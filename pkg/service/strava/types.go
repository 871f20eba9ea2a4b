package strava

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

var (
	// ErrNotFound is returned when the API answers 404
	ErrNotFound = goerr.New("resource not found on strava")
	// ErrUnexpectedStatus is returned for any other non-2xx answer
	ErrUnexpectedStatus = goerr.New("unexpected status from strava")
	// ErrStreamSize is returned when a stream's data does not match its reported size
	ErrStreamSize = goerr.New("stream data count does not match original size")
)

// Service is the subset of the Strava API used to shift activities
type Service interface {
	// ExchangeCode trades an authorization code for the first token pair
	ExchangeCode(ctx context.Context, code string) (*Authorization, error)

	// RefreshToken trades a refresh token for a new token pair
	RefreshToken(ctx context.Context, refreshToken string) (*model.Credentials, error)

	// GetActivity returns ErrNotFound when the activity is gone
	GetActivity(ctx context.Context, accessToken string, activityID int64) (*model.Activity, error)

	// GetStreams fetches every telemetry channel of an activity in one call
	GetStreams(ctx context.Context, accessToken string, activityID int64) (*model.StreamSet, error)

	// CreateUpload submits a track file as a new activity
	CreateUpload(ctx context.Context, accessToken string, req *UploadRequest) (*model.UploadStatus, error)

	// GetUpload returns the current state of an upload
	GetUpload(ctx context.Context, accessToken string, uploadID int64) (*model.UploadStatus, error)

	// Push subscription management, authenticated by the application credentials
	CreateSubscription(ctx context.Context, callbackURL, verifyToken string) (*Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// Athlete is the account that granted access
type Athlete struct {
	ID        int64
	FirstName string
	LastName  string
}

// Authorization is the result of an authorization code exchange
type Authorization struct {
	Credentials model.Credentials
	Athlete     Athlete
}

// UploadRequest carries a generated track file and the activity fields that
// are copied over from the original
type UploadRequest struct {
	FileName    string
	ContentType string
	DataType    string
	Data        []byte
	Name        string
	Description string
	Commute     bool
	Trainer     bool
}

// Subscription is a registered push subscription
type Subscription struct {
	ID          int64  `json:"id"`
	CallbackURL string `json:"callback_url"`
}
