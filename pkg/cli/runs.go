package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/timeshift/pkg/cli/config"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/usecase"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdRuns() *cli.Command {
	var athleteID int64
	var limit int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "athlete-id",
			Aliases:     []string{"a"},
			Usage:       "Strava athlete ID",
			Required:    true,
			Destination: &athleteID,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of runs to show",
			Value:       20,
			Destination: &limit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "runs",
		Usage: "Show recent time-shift runs of an athlete",
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
			runs, err := uc.Run.ListByAthlete(ctx, athleteID, limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs")
				return nil
			}
			printRuns(runs)
			return nil
		},
	}
}

func printRuns(runs []*model.ShiftRun) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tSTATUS\tACTIVITY\tNEW ACTIVITY\tSHIFTED START\tDELTA\tERROR")
	for _, run := range runs {
		newActivity := "-"
		if run.NewActivityID != 0 {
			newActivity = fmt.Sprintf("%d", run.NewActivityID)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			run.CreatedAt.Format(time.DateTime),
			colorStatus(run.Status),
			run.ActivityID,
			newActivity,
			run.ShiftedStart.Format(time.DateTime),
			(time.Duration(run.DeltaSeconds) * time.Second).String(),
			run.Error,
		)
	}
	_ = w.Flush()
}

func colorStatus(s types.RunStatus) string {
	switch s {
	case types.RunStatusCompleted:
		return color.GreenString(string(s))
	case types.RunStatusFailed, types.RunStatusTimedOut:
		return color.RedString(string(s))
	case types.RunStatusUploading:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}
