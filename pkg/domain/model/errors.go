package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrChallengeForbidden = goerr.New("subscription challenge rejected")
	ErrInvalidEvent       = goerr.New("invalid webhook event")
	ErrMissingStream      = goerr.New("required telemetry stream is missing")
	ErrStreamMisaligned   = goerr.New("telemetry stream length does not match time stream")
	ErrInvalidWorkWindow  = goerr.New("invalid work window")
)

// Context keys for error values
const (
	StreamKey   = "stream"
	ExpectedKey = "expected"
	ActualKey   = "actual"
)
