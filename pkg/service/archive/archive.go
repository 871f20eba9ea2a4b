// Package archive keeps a copy of every generated track file in Cloud Storage.
package archive

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// Service stores generated track files
type Service interface {
	// Put stores data and returns its gs:// URI
	Put(ctx context.Context, athleteID, activityID int64, contentType string, data []byte) (string, error)
}

// ObjectName returns the object path of an activity's shifted track
func ObjectName(prefix string, athleteID, activityID int64) string {
	name := fmt.Sprintf("%d/%d-shifted.gpx", athleteID, activityID)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		return prefix + "/" + name
	}
	return name
}

type gcsArchive struct {
	client *storage.Client
	bucket string
	prefix string
}

// Option configures the archive
type Option func(*gcsArchive)

// WithPrefix stores objects under a path prefix
func WithPrefix(prefix string) Option {
	return func(a *gcsArchive) {
		a.prefix = prefix
	}
}

// New creates a GCS backed archive
func New(ctx context.Context, bucket string, opts ...Option) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	a := &gcsArchive{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *gcsArchive) Put(ctx context.Context, athleteID, activityID int64, contentType string, data []byte) (string, error) {
	name := ObjectName(a.prefix, athleteID, activityID)

	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write archive object",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize archive object",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}

	return "gs://" + a.bucket + "/" + name, nil
}
