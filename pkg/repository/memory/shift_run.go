package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

type shiftRunRepository struct {
	mu   sync.RWMutex
	runs map[model.ShiftRunID]*model.ShiftRun
}

func newShiftRunRepository() *shiftRunRepository {
	return &shiftRunRepository{
		runs: make(map[model.ShiftRunID]*model.ShiftRun),
	}
}

func copyShiftRun(run *model.ShiftRun) *model.ShiftRun {
	copied := *run
	return &copied
}

func (r *shiftRunRepository) Put(ctx context.Context, run *model.ShiftRun) error {
	if run.ID == "" {
		return goerr.New("shift run ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.ID] = copyShiftRun(run)
	return nil
}

func (r *shiftRunRepository) Get(ctx context.Context, id model.ShiftRunID) (*model.ShiftRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "shift run not found", goerr.V("id", id))
	}
	return copyShiftRun(run), nil
}

func (r *shiftRunRepository) GetByActivityID(ctx context.Context, activityID int64) (*model.ShiftRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, run := range r.runs {
		if run.ActivityID == activityID {
			return copyShiftRun(run), nil
		}
	}
	return nil, nil
}

func (r *shiftRunRepository) ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ShiftRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var runs []*model.ShiftRun
	for _, run := range r.runs {
		if run.UserID == userID {
			runs = append(runs, copyShiftRun(run))
		}
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *shiftRunRepository) ListByStatus(ctx context.Context, status types.RunStatus, updatedBefore time.Time, limit int) ([]*model.ShiftRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var runs []*model.ShiftRun
	for _, run := range r.runs {
		if run.Status == status && run.UpdatedAt.Before(updatedBefore) {
			runs = append(runs, copyShiftRun(run))
		}
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].UpdatedAt.Before(runs[j].UpdatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
