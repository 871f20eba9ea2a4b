package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Channel is an optional telemetry sequence. A nil element means the sensor
// had no value at that sample.
type Channel []*float64

// At returns the value at index i and whether one exists
func (c Channel) At(i int) (float64, bool) {
	if i < 0 || i >= len(c) || c[i] == nil {
		return 0, false
	}
	return *c[i], true
}

// NewChannel builds a Channel where every sample has a value
func NewChannel(values ...float64) Channel {
	c := make(Channel, len(values))
	for i := range values {
		v := values[i]
		c[i] = &v
	}
	return c
}

// LatLng is a [latitude, longitude] pair in degrees
type LatLng [2]float64

// StreamSet holds the telemetry channels of one activity, aligned by index.
// Time holds the elapsed seconds of each sample from the activity start.
type StreamSet struct {
	Time      []int64
	LatLng    []LatLng
	Altitude  Channel
	Cadence   Channel
	HeartRate Channel
	Power     Channel
	Temp      Channel
}

// Len returns the number of samples
func (s *StreamSet) Len() int {
	return len(s.Time)
}

// Validate checks that time and latlng exist and that every present channel
// has the same number of samples as time.
func (s *StreamSet) Validate() error {
	if len(s.Time) == 0 {
		return goerr.Wrap(ErrMissingStream, "no time stream", goerr.V(StreamKey, "time"))
	}
	if len(s.LatLng) == 0 {
		return goerr.Wrap(ErrMissingStream, "no latlng stream", goerr.V(StreamKey, "latlng"))
	}

	n := len(s.Time)
	lengths := []struct {
		name string
		size int
		set  bool
	}{
		{"latlng", len(s.LatLng), true},
		{"altitude", len(s.Altitude), s.Altitude != nil},
		{"cadence", len(s.Cadence), s.Cadence != nil},
		{"heartrate", len(s.HeartRate), s.HeartRate != nil},
		{"watts", len(s.Power), s.Power != nil},
		{"temp", len(s.Temp), s.Temp != nil},
	}
	for _, l := range lengths {
		if l.set && l.size != n {
			return goerr.Wrap(ErrStreamMisaligned, "stream length mismatch",
				goerr.V(StreamKey, l.name),
				goerr.V(ExpectedKey, n),
				goerr.V(ActualKey, l.size),
			)
		}
	}

	return nil
}
