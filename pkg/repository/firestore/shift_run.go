package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ShiftRunsCollection is the collection name of the run ledger
const ShiftRunsCollection = "shift_runs"

type shiftRunDocument struct {
	ID            string    `firestore:"id"`
	UserID        string    `firestore:"user_id"`
	AthleteID     int64     `firestore:"athlete_id"`
	ActivityID    int64     `firestore:"activity_id"`
	UploadID      int64     `firestore:"upload_id"`
	NewActivityID int64     `firestore:"new_activity_id"`
	Status        string    `firestore:"status"`
	OriginalStart time.Time `firestore:"original_start"`
	ShiftedStart  time.Time `firestore:"shifted_start"`
	ShiftedEnd    time.Time `firestore:"shifted_end"`
	DeltaSeconds  int64     `firestore:"delta_seconds"`
	Error         string    `firestore:"error"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type shiftRunRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newShiftRunRepository(client *firestore.Client) *shiftRunRepository {
	return &shiftRunRepository{client: client}
}

func (r *shiftRunRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, ShiftRunsCollection))
}

func shiftRunToDocument(run *model.ShiftRun) *shiftRunDocument {
	return &shiftRunDocument{
		ID:            run.ID.String(),
		UserID:        run.UserID.String(),
		AthleteID:     run.AthleteID,
		ActivityID:    run.ActivityID,
		UploadID:      run.UploadID,
		NewActivityID: run.NewActivityID,
		Status:        run.Status.String(),
		OriginalStart: run.OriginalStart,
		ShiftedStart:  run.ShiftedStart,
		ShiftedEnd:    run.ShiftedEnd,
		DeltaSeconds:  run.DeltaSeconds,
		Error:         run.Error,
		CreatedAt:     run.CreatedAt,
		UpdatedAt:     run.UpdatedAt,
	}
}

func shiftRunToModel(doc *shiftRunDocument) *model.ShiftRun {
	return &model.ShiftRun{
		ID:            model.ShiftRunID(doc.ID),
		UserID:        model.UserID(doc.UserID),
		AthleteID:     doc.AthleteID,
		ActivityID:    doc.ActivityID,
		UploadID:      doc.UploadID,
		NewActivityID: doc.NewActivityID,
		Status:        types.RunStatus(doc.Status),
		OriginalStart: doc.OriginalStart,
		ShiftedStart:  doc.ShiftedStart,
		ShiftedEnd:    doc.ShiftedEnd,
		DeltaSeconds:  doc.DeltaSeconds,
		Error:         doc.Error,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func (r *shiftRunRepository) Put(ctx context.Context, run *model.ShiftRun) error {
	if run.ID == "" {
		return goerr.New("shift run ID is required")
	}

	if _, err := r.collection().Doc(run.ID.String()).Set(ctx, shiftRunToDocument(run)); err != nil {
		return goerr.Wrap(err, "failed to put shift run", goerr.V("id", run.ID))
	}
	return nil
}

func (r *shiftRunRepository) Get(ctx context.Context, id model.ShiftRunID) (*model.ShiftRun, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "shift run not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get shift run", goerr.V("id", id))
	}

	var runDoc shiftRunDocument
	if err := doc.DataTo(&runDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal shift run", goerr.V("id", id))
	}
	return shiftRunToModel(&runDoc), nil
}

func (r *shiftRunRepository) GetByActivityID(ctx context.Context, activityID int64) (*model.ShiftRun, error) {
	iter := r.collection().Where("activity_id", "==", activityID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query shift run by activity", goerr.V("activity_id", activityID))
	}

	var runDoc shiftRunDocument
	if err := doc.DataTo(&runDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal shift run", goerr.V("activity_id", activityID))
	}
	return shiftRunToModel(&runDoc), nil
}

func (r *shiftRunRepository) ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ShiftRun, error) {
	q := r.collection().Where("user_id", "==", userID.String()).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	runs, err := r.query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list shift runs by user", goerr.V("user_id", userID))
	}
	return runs, nil
}

func (r *shiftRunRepository) ListByStatus(ctx context.Context, status types.RunStatus, updatedBefore time.Time, limit int) ([]*model.ShiftRun, error) {
	q := r.collection().
		Where("status", "==", status.String()).
		Where("updated_at", "<", updatedBefore).
		OrderBy("updated_at", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	runs, err := r.query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list shift runs by status", goerr.V("status", status))
	}
	return runs, nil
}

func (r *shiftRunRepository) query(ctx context.Context, q firestore.Query) ([]*model.ShiftRun, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var runs []*model.ShiftRun
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate shift runs")
		}

		var runDoc shiftRunDocument
		if err := doc.DataTo(&runDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal shift run", goerr.V("id", doc.Ref.ID))
		}
		runs = append(runs, shiftRunToModel(&runDoc))
	}
	return runs, nil
}
