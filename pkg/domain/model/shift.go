package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// shifted activities finish within [start-earliestEndOffset, start-latestEndOffset)
	earliestEndOffset = 10 * time.Minute
	latestEndOffset   = 1 * time.Minute
)

// HourMinute is a wall clock time of day
type HourMinute struct {
	Hour   int
	Minute int
}

// ParseHourMinute parses "HH:MM"
func ParseHourMinute(s string) (HourMinute, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return HourMinute{}, goerr.Wrap(err, "invalid time of day, expected HH:MM", goerr.V("value", s))
	}
	return HourMinute{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (hm HourMinute) String() string {
	return fmt.Sprintf("%02d:%02d", hm.Hour, hm.Minute)
}

func (hm HourMinute) minutes() int {
	return hm.Hour*60 + hm.Minute
}

// On returns the time of day on the calendar day of t, in t's location
func (hm HourMinute) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hm.Hour, hm.Minute, 0, 0, t.Location())
}

// MarshalText implements encoding.TextMarshaler
func (hm HourMinute) MarshalText() ([]byte, error) {
	return []byte(hm.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (hm *HourMinute) UnmarshalText(b []byte) error {
	parsed, err := ParseHourMinute(string(b))
	if err != nil {
		return err
	}
	*hm = parsed
	return nil
}

// WorkWindow is the local time interval during which an activity is
// considered to have happened at work. It never spans midnight.
type WorkWindow struct {
	Start HourMinute
	End   HourMinute
}

// DefaultWorkWindow is 09:00-17:00
var DefaultWorkWindow = WorkWindow{
	Start: HourMinute{Hour: 9},
	End:   HourMinute{Hour: 17},
}

// Validate checks that the window is ordered, stays within one day and leaves
// room for the shifted end time before the window starts.
func (w WorkWindow) Validate() error {
	if w.Start.Hour < 0 || w.Start.Hour > 23 || w.Start.Minute < 0 || w.Start.Minute > 59 ||
		w.End.Hour < 0 || w.End.Hour > 23 || w.End.Minute < 0 || w.End.Minute > 59 {
		return goerr.Wrap(ErrInvalidWorkWindow, "hour or minute out of range", goerr.V("window", w.String()))
	}
	if w.Start.minutes() >= w.End.minutes() {
		return goerr.Wrap(ErrInvalidWorkWindow, "start must be before end", goerr.V("window", w.String()))
	}
	if time.Duration(w.Start.minutes())*time.Minute < earliestEndOffset {
		return goerr.Wrap(ErrInvalidWorkWindow, "start is too close to midnight", goerr.V("window", w.String()))
	}
	return nil
}

func (w WorkWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Contains reports whether local is strictly between the window bounds on its own calendar day
func (w WorkWindow) Contains(local time.Time) bool {
	return local.After(w.Start.On(local)) && local.Before(w.End.On(local))
}

// Rand is the source of randomness used to pick the shifted end time.
// *rand.Rand of math/rand/v2 satisfies it.
type Rand interface {
	Int64N(n int64) int64
}

type globalRand struct{}

func (globalRand) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

// ShiftPlan is the outcome of planning one activity
type ShiftPlan struct {
	WithinWorkWindow  bool
	NewStartTimeLocal time.Time
	NewEndTimeLocal   time.Time
	// Delta is added to every sample timestamp. It is negative since the
	// activity moves earlier.
	Delta time.Duration
}

// DeltaSeconds returns Delta in whole seconds
func (p *ShiftPlan) DeltaSeconds() int64 {
	return int64(p.Delta / time.Second)
}

// Plan decides whether the activity needs shifting and computes the shifted
// timeline. The new end time is drawn uniformly from
// [start-10m, start-1m) on the activity's calendar day, at second precision.
// rnd may be nil to use the global source.
func (w WorkWindow) Plan(activity *Activity, rnd Rand) *ShiftPlan {
	startLocal := activity.StartTimeLocal
	if !w.Contains(startLocal) {
		return &ShiftPlan{WithinWorkWindow: false}
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	lower := w.Start.On(startLocal)
	earliest := lower.Add(-earliestEndOffset)
	latest := lower.Add(-latestEndOffset)

	offset := time.Duration(rnd.Int64N(int64(latest.Sub(earliest))))
	newEnd := earliest.Add(offset).Truncate(time.Second)
	newStart := newEnd.Add(-activity.ElapsedTime)

	return &ShiftPlan{
		WithinWorkWindow:  true,
		NewStartTimeLocal: newStart,
		NewEndTimeLocal:   newEnd,
		Delta:             newStart.Sub(startLocal),
	}
}
