package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

const defaultRunListLimit = 20

type RunUseCase struct {
	*UseCases
}

func newRunUseCase(uc *UseCases) *RunUseCase {
	return &RunUseCase{UseCases: uc}
}

// ListByAthlete returns the latest runs of an athlete, newest first
func (uc *RunUseCase) ListByAthlete(ctx context.Context, athleteID int64, limit int) ([]*model.ShiftRun, error) {
	if limit <= 0 {
		limit = defaultRunListLimit
	}

	user, err := uc.repo.User().GetByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(AthleteIDKey, athleteID))
	}
	if user == nil {
		return nil, goerr.Wrap(ErrUserNotFound, "no user for athlete", goerr.V(AthleteIDKey, athleteID))
	}

	runs, err := uc.repo.ShiftRun().ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list shift runs", goerr.V(UserIDKey, user.ID))
	}
	return runs, nil
}
