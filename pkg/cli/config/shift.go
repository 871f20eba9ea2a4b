package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Shift holds the work window and upload polling settings. Values are taken
// from the defaults, then the TOML file, then the flags.
type Shift struct {
	path            string
	workStart       string
	workEnd         string
	pollInterval    time.Duration
	pollMaxAttempts int
}

// ShiftFile is the layout of the TOML configuration file
type ShiftFile struct {
	WorkWindow struct {
		Start *model.HourMinute `toml:"start"`
		End   *model.HourMinute `toml:"end"`
	} `toml:"work_window"`
	Upload struct {
		PollInterval string `toml:"poll_interval"`
		MaxAttempts  int    `toml:"max_attempts"`
	} `toml:"upload"`
}

func (x *Shift) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Category:    "Shift",
			Destination: &x.path,
			Sources:     cli.EnvVars("TIMESHIFT_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "work-start",
			Usage:       "Start of the work window in HH:MM (default 09:00)",
			Category:    "Shift",
			Destination: &x.workStart,
			Sources:     cli.EnvVars("TIMESHIFT_WORK_START"),
		},
		&cli.StringFlag{
			Name:        "work-end",
			Usage:       "End of the work window in HH:MM (default 17:00)",
			Category:    "Shift",
			Destination: &x.workEnd,
			Sources:     cli.EnvVars("TIMESHIFT_WORK_END"),
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Interval between upload status polls (default 5s)",
			Category:    "Shift",
			Destination: &x.pollInterval,
			Sources:     cli.EnvVars("TIMESHIFT_POLL_INTERVAL"),
		},
		&cli.IntFlag{
			Name:        "poll-max-attempts",
			Usage:       "Upload status polls before giving up (default 120)",
			Category:    "Shift",
			Destination: &x.pollMaxAttempts,
			Sources:     cli.EnvVars("TIMESHIFT_POLL_MAX_ATTEMPTS"),
		},
	}
}

func (x Shift) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.path),
		slog.String("work-start", x.workStart),
		slog.String("work-end", x.workEnd),
		slog.Duration("poll-interval", x.pollInterval),
		slog.Int("poll-max-attempts", x.pollMaxAttempts),
	)
}

// Configure builds the pipeline settings
func (x *Shift) Configure() (usecase.ShiftConfig, error) {
	cfg := usecase.DefaultShiftConfig()

	if x.path != "" {
		file, err := LoadShiftFile(x.path)
		if err != nil {
			return cfg, err
		}
		if err := file.apply(&cfg); err != nil {
			return cfg, goerr.Wrap(err, "invalid config file", goerr.V(ConfigPathKey, x.path))
		}
	}

	if x.workStart != "" {
		hm, err := model.ParseHourMinute(x.workStart)
		if err != nil {
			return cfg, goerr.Wrap(err, "invalid work-start", goerr.V(FlagKey, "work-start"))
		}
		cfg.WorkWindow.Start = hm
	}
	if x.workEnd != "" {
		hm, err := model.ParseHourMinute(x.workEnd)
		if err != nil {
			return cfg, goerr.Wrap(err, "invalid work-end", goerr.V(FlagKey, "work-end"))
		}
		cfg.WorkWindow.End = hm
	}
	if x.pollInterval > 0 {
		cfg.PollInterval = x.pollInterval
	}
	if x.pollMaxAttempts > 0 {
		cfg.PollMaxAttempts = x.pollMaxAttempts
	}

	if err := cfg.WorkWindow.Validate(); err != nil {
		return cfg, goerr.Wrap(err, "invalid work window")
	}
	return cfg, nil
}

// LoadShiftFile loads the TOML configuration file
func LoadShiftFile(path string) (*ShiftFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file ShiftFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()),
		)
	}
	return &file, nil
}

func (f *ShiftFile) apply(cfg *usecase.ShiftConfig) error {
	if f.WorkWindow.Start != nil {
		cfg.WorkWindow.Start = *f.WorkWindow.Start
	}
	if f.WorkWindow.End != nil {
		cfg.WorkWindow.End = *f.WorkWindow.End
	}
	if f.Upload.PollInterval != "" {
		d, err := time.ParseDuration(f.Upload.PollInterval)
		if err != nil || d <= 0 {
			return goerr.Wrap(ErrInvalidConfig, "invalid upload.poll_interval", goerr.V("value", f.Upload.PollInterval))
		}
		cfg.PollInterval = d
	}
	if f.Upload.MaxAttempts < 0 {
		return goerr.Wrap(ErrInvalidConfig, "upload.max_attempts must be positive", goerr.V("value", f.Upload.MaxAttempts))
	}
	if f.Upload.MaxAttempts > 0 {
		cfg.PollMaxAttempts = f.Upload.MaxAttempts
	}
	return nil
}
