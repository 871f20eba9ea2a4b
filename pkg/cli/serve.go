package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/timeshift/pkg/cli/config"
	httpctrl "github.com/secmon-lab/timeshift/pkg/controller/http"
	"github.com/secmon-lab/timeshift/pkg/service/worker"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var postAuthRedirect string
	var shutdownTimeout time.Duration
	var recoveryInterval time.Duration
	var repoCfg config.Repository
	var stravaCfg config.Strava
	var loopsCfg config.Loops
	var shiftCfg config.Shift
	var archiveCfg config.Archive
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TIMESHIFT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "post-auth-redirect",
			Usage:       "Where the browser goes after connecting a Strava account",
			Value:       "/",
			Sources:     cli.EnvVars("TIMESHIFT_POST_AUTH_REDIRECT"),
			Destination: &postAuthRedirect,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "How long to wait for in-flight upload watchers on shutdown",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("TIMESHIFT_SHUTDOWN_TIMEOUT"),
			Destination: &shutdownTimeout,
		},
		&cli.DurationFlag{
			Name:        "recovery-interval",
			Usage:       "Interval of resuming uploads left unfinished by a previous process (0 to disable)",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("TIMESHIFT_RECOVERY_INTERVAL"),
			Destination: &recoveryInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, stravaCfg.Flags()...)
	flags = append(flags, loopsCfg.Flags()...)
	flags = append(flags, shiftCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving Strava push events",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if stravaCfg.VerifyToken() == "" {
				return goerr.Wrap(config.ErrMissingFlag, "strava-verify-token is required",
					goerr.V(config.FlagKey, "strava-verify-token"))
			}

			shift, err := shiftCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure shift settings")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			stravaSvc, err := stravaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure strava client")
			}

			ucOpts := []usecase.Option{
				usecase.WithStrava(stravaSvc),
				usecase.WithShiftConfig(shift),
				usecase.WithOAuthApp(stravaCfg.ClientID(), stravaCfg.RedirectURL()),
			}

			loopsSvc, err := loopsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notification")
			}
			if loopsSvc != nil {
				ucOpts = append(ucOpts, usecase.WithLoops(loopsSvc, loopsCfg.TransactionalID()))
				logger.Info("Email notification enabled")
			} else {
				logger.Info("Loops API key not configured, users will not be notified")
			}

			archiveSvc, err := archiveCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure archive")
			}
			if archiveSvc != nil {
				ucOpts = append(ucOpts, usecase.WithArchive(archiveSvc))
				logger.Info("Track archive enabled", "archive", archiveCfg)
			}

			alertSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack alert")
			}
			if alertSvc != nil {
				ucOpts = append(ucOpts, usecase.WithAlert(alertSvc))
				logger.Info("Slack alert enabled", "slack", slackCfg)
			}

			uc := usecase.New(repo, ucOpts...)

			logger.Info("Shift configuration",
				"work_window", shift.WorkWindow.String(),
				"poll_interval", shift.PollInterval.String(),
				"poll_max_attempts", shift.PollMaxAttempts,
				"strava", stravaCfg,
			)

			var recovery *worker.UploadRecoveryWorker
			if recoveryInterval > 0 {
				recovery = worker.NewUploadRecoveryWorker(uc.TimeShift, recoveryInterval)
				if err := recovery.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start upload recovery worker")
				}
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithStravaWebhook(httpctrl.NewStravaWebhookHandler(uc.TimeShift, stravaCfg.VerifyToken())),
			}
			if stravaCfg.RedirectURL() != "" {
				httpOpts = append(httpOpts, httpctrl.WithAuth(uc.Auth, postAuthRedirect))
			} else {
				logger.Warn("base-url not configured, athlete authorization endpoints are disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			serveErr := eg.Wait()

			if recovery != nil {
				recovery.Stop()
			}

			logger.Info("Waiting for upload watchers", "running", uc.Runner().Running(), "timeout", shutdownTimeout.String())
			if err := uc.Runner().WaitTimeout(shutdownTimeout); err != nil {
				logger.Warn("upload watchers abandoned", "error", err.Error())
			}

			if serveErr != nil {
				return serveErr
			}
			logger.Info("Server shutdown completed")
			return nil
		},
	}
}
