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

func cmdUser() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage connected athletes",
		Commands: []*cli.Command{
			cmdUserSetEmail(),
		},
	}
}

func cmdUserSetEmail() *cli.Command {
	var athleteID int64
	var email string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "athlete-id",
			Aliases:     []string{"a"},
			Usage:       "Strava athlete ID",
			Required:    true,
			Destination: &athleteID,
		},
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Notification address, empty to stop notifications",
			Destination: &email,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "set-email",
		Usage: "Set the address notified when an activity has been moved",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			user, err := uc.Auth.SetEmail(ctx, athleteID, email)
			if err != nil {
				return err
			}

			if user.Email == "" {
				fmt.Printf("%s notifications for athlete %d\n", color.YellowString("disabled"), user.AthleteID)
				return nil
			}
			fmt.Printf("%s athlete %d -> %s\n", color.GreenString("updated"), user.AthleteID, user.Email)
			return nil
		},
	}
}
