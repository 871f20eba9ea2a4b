package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
	"github.com/secmon-lab/timeshift/pkg/repository/memory"
	"github.com/secmon-lab/timeshift/pkg/usecase"
)

func TestListByAthlete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	user := seedUser(t, repo, 100, "")

	for i := range 3 {
		run := &model.ShiftRun{
			ID:         model.NewShiftRunID(),
			UserID:     user.ID,
			AthleteID:  100,
			ActivityID: int64(500 + i),
			Status:     types.RunStatusCompleted,
			CreatedAt:  testNow.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  testNow.Add(time.Duration(i) * time.Minute),
		}
		gt.NoError(t, repo.ShiftRun().Put(ctx, run)).Required()
	}

	uc := newUseCases(repo)
	runs, err := uc.Run.ListByAthlete(ctx, 100, 2)
	gt.NoError(t, err).Required()
	gt.Array(t, runs).Length(2).Required()
	gt.Value(t, runs[0].ActivityID).Equal(int64(502))
	gt.Value(t, runs[1].ActivityID).Equal(int64(501))

	_, err = uc.Run.ListByAthlete(ctx, 999, 0)
	gt.Error(t, err).Is(usecase.ErrUserNotFound)
}
