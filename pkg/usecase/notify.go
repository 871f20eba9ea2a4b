package usecase

import (
	"context"

	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/service/loops"
	"github.com/secmon-lab/timeshift/pkg/utils/errutil"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

// notify tells the user that the shifted activity is available. Every
// failure is logged and swallowed.
func (uc *TimeShiftUseCase) notify(ctx context.Context, user *model.User, oldActivityID, newActivityID int64) {
	logger := logging.From(ctx)

	if !user.HasEmail() {
		logger.Info("user has no email, skipping notification")
		return
	}
	if uc.loops == nil {
		logger.Info("email is not configured, skipping notification")
		return
	}

	contact := &loops.Contact{
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Subscribed: true,
		UserID:     user.ID.String(),
	}
	if err := uc.loops.UpsertContact(ctx, contact); err != nil {
		errutil.Handle(ctx, err, "failed to upsert contact")
		return
	}

	email := &loops.TransactionalEmail{
		TransactionalID: uc.transactionalID,
		Email:           user.Email,
		DataVariables: map[string]string{
			"firstName":      user.FirstName,
			"lastName":       user.LastName,
			"oldActivityURL": model.ActivityURL(oldActivityID),
			"newActivityURL": model.ActivityURL(newActivityID),
		},
	}
	if err := uc.loops.SendTransactional(ctx, email); err != nil {
		errutil.Handle(ctx, err, "failed to send notification email")
		return
	}

	logger.Info("notification sent", "new_activity_id", newActivityID)
}
