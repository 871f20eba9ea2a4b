package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/cli/config"
	"github.com/secmon-lab/timeshift/pkg/repository/firestore"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: append(repoCfg.Flags(),
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if repoCfg.ProjectID() == "" {
				return goerr.Wrap(config.ErrMissingFlag, "firestore-project-id is required",
					goerr.V(config.FlagKey, "firestore-project-id"))
			}
			databaseID := repoCfg.DatabaseID()
			if databaseID == "" {
				databaseID = "(default)"
			}

			logger.Info("Migrate configuration",
				"projectID", repoCfg.ProjectID(),
				"databaseID", databaseID,
				"collectionPrefix", repoCfg.CollectionPrefix(),
				"dryRun", dryRun)

			// Get index configuration
			indexConfig := getIndexConfig(repoCfg.CollectionPrefix())

			// Create fireconf client
			client, err := fireconf.NewClient(ctx, repoCfg.ProjectID(), databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx, indexConfig); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.ShiftRunsCollection),
				Indexes: []fireconf.Index{
					// ListByUser: user_id ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "user_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
					// ListByStatus: status ASC, updated_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "status", Order: fireconf.OrderAscending},
							{Path: "updated_at", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
