package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/service/archive"
	"github.com/urfave/cli/v3"
)

type Archive struct {
	bucket string
	prefix string
}

func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket to keep a copy of every generated track",
			Category:    "Archive",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("TIMESHIFT_ARCHIVE_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix in the archive bucket",
			Value:       "tracks",
			Category:    "Archive",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("TIMESHIFT_ARCHIVE_PREFIX"),
		},
	}
}

func (x Archive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// Configure returns nil when no bucket is set
func (x *Archive) Configure(ctx context.Context) (archive.Service, error) {
	if x.bucket == "" {
		return nil, nil
	}

	svc, err := archive.New(ctx, x.bucket, archive.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive", goerr.V("bucket", x.bucket))
	}
	return svc, nil
}
