package usecase

import (
	"time"

	"github.com/secmon-lab/timeshift/pkg/domain/interfaces"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/service/archive"
	"github.com/secmon-lab/timeshift/pkg/service/loops"
	"github.com/secmon-lab/timeshift/pkg/service/slack"
	"github.com/secmon-lab/timeshift/pkg/service/strava"
	"github.com/secmon-lab/timeshift/pkg/utils/async"
)

const (
	DefaultPollInterval    = 5 * time.Second
	DefaultPollMaxAttempts = 120
)

// ShiftConfig holds the tunables of the time-shift pipeline
type ShiftConfig struct {
	WorkWindow      model.WorkWindow
	PollInterval    time.Duration
	PollMaxAttempts int
}

// DefaultShiftConfig returns 09:00-17:00, polling every 5 seconds up to 120 times
func DefaultShiftConfig() ShiftConfig {
	return ShiftConfig{
		WorkWindow:      model.DefaultWorkWindow,
		PollInterval:    DefaultPollInterval,
		PollMaxAttempts: DefaultPollMaxAttempts,
	}
}

// watchDeadline is the longest a single upload watcher can run
func (c ShiftConfig) watchDeadline() time.Duration {
	return c.PollInterval * time.Duration(c.PollMaxAttempts+1)
}

type UseCases struct {
	repo interfaces.Repository

	clientID        string
	redirectURL     string
	strava          strava.Service
	loops           loops.Service
	transactionalID string
	archive         archive.Service
	alert           slack.Service
	runner          *async.Runner
	shiftConfig     ShiftConfig
	now             func() time.Time
	rnd             model.Rand

	TimeShift    *TimeShiftUseCase
	Auth         *AuthUseCase
	Subscription *SubscriptionUseCase
	Run          *RunUseCase
}

type Option func(*UseCases)

func WithStrava(svc strava.Service) Option {
	return func(uc *UseCases) {
		uc.strava = svc
	}
}

// WithLoops enables email notification with the transactional template ID
func WithLoops(svc loops.Service, transactionalID string) Option {
	return func(uc *UseCases) {
		uc.loops = svc
		uc.transactionalID = transactionalID
	}
}

func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archive = svc
	}
}

func WithAlert(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.alert = svc
	}
}

// WithRunner sets the owner of detached upload watchers
func WithRunner(runner *async.Runner) Option {
	return func(uc *UseCases) {
		uc.runner = runner
	}
}

func WithShiftConfig(cfg ShiftConfig) Option {
	return func(uc *UseCases) {
		uc.shiftConfig = cfg
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithRand replaces the source used to pick shifted end times. rnd must be
// safe for concurrent use.
func WithRand(rnd model.Rand) Option {
	return func(uc *UseCases) {
		uc.rnd = rnd
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		shiftConfig: DefaultShiftConfig(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.runner == nil {
		uc.runner = async.NewRunner()
	}

	uc.TimeShift = newTimeShiftUseCase(uc)
	uc.Auth = newAuthUseCase(uc)
	uc.Subscription = newSubscriptionUseCase(uc)
	uc.Run = newRunUseCase(uc)

	return uc
}

// Runner returns the owner of detached tasks so the process can await them
func (uc *UseCases) Runner() *async.Runner {
	return uc.runner
}
