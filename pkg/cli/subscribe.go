package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/timeshift/pkg/cli/config"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSubscribe() *cli.Command {
	var list bool
	var replace bool
	var deleteID int64
	var repoCfg config.Repository
	var stravaCfg config.Strava

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "list",
			Usage:       "Only show the current push subscription",
			Destination: &list,
		},
		&cli.BoolFlag{
			Name:        "replace",
			Usage:       "Delete a subscription pointing to another callback before creating ours",
			Destination: &replace,
		},
		&cli.Int64Flag{
			Name:        "delete",
			Usage:       "Delete the push subscription with this ID",
			Destination: &deleteID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, stravaCfg.Flags()...)

	return &cli.Command{
		Name:  "subscribe",
		Usage: "Register the webhook callback as the Strava push subscription",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			stravaSvc, err := stravaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure strava client")
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

			uc := usecase.New(repo, usecase.WithStrava(stravaSvc))

			switch {
			case list:
				subs, err := uc.Subscription.List(ctx)
				if err != nil {
					return err
				}
				if len(subs) == 0 {
					fmt.Println("No push subscription")
					return nil
				}
				for _, sub := range subs {
					fmt.Printf("%s %d  %s\n", color.GreenString("●"), sub.ID, sub.CallbackURL)
				}
				return nil

			case deleteID != 0:
				if err := uc.Subscription.Delete(ctx, deleteID); err != nil {
					return err
				}
				fmt.Printf("%s subscription %d\n", color.YellowString("deleted"), deleteID)
				return nil
			}

			callbackURL := stravaCfg.CallbackURL()
			if callbackURL == "" {
				return goerr.Wrap(config.ErrMissingFlag, "base-url is required to build the callback URL",
					goerr.V(config.FlagKey, "base-url"))
			}

			action, sub, err := uc.Subscription.Ensure(ctx, callbackURL, stravaCfg.VerifyToken(), replace)
			if err != nil {
				return err
			}

			label := color.GreenString(string(action))
			if action == usecase.SubscriptionExists {
				label = color.CyanString(string(action))
			}
			fmt.Printf("%s subscription %d  %s\n", label, sub.ID, sub.CallbackURL)
			return nil
		},
	}
}
