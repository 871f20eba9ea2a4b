package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrUserNotFound     = goerr.New("user not found")
	ErrActivityNotFound = goerr.New("activity not found")

	// Upload errors
	ErrUploadFailed  = goerr.New("upload was rejected")
	ErrUploadTimeout = goerr.New("upload did not finish in time")

	// Authorization errors
	ErrInsufficientScope = goerr.New("required scope was not granted")
	ErrInvalidState      = goerr.New("oauth state mismatch")

	// Subscription errors
	ErrSubscriptionMismatch = goerr.New("existing subscription has another callback URL")

	// Other errors
	ErrServiceNotConfigured = goerr.New("service is not configured")
)

// Context keys for error values
const (
	AthleteIDKey  = "athlete_id"
	ActivityIDKey = "activity_id"
	UploadIDKey   = "upload_id"
	RunIDKey      = "run_id"
	UserIDKey     = "user_id"
)
