package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"github.com/secmon-lab/timeshift/pkg/domain/types"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	ShiftRun() ShiftRunRepository
	Close() error
}

// UserRepository stores connected accounts and their credentials
type UserRepository interface {
	// GetByAthleteID returns nil without error when no user owns the athlete ID
	GetByAthleteID(ctx context.Context, athleteID int64) (*model.User, error)

	// Get retrieves a user by ID. Returns ErrNotFound when missing.
	Get(ctx context.Context, id model.UserID) (*model.User, error)

	// Put creates or replaces a user
	Put(ctx context.Context, user *model.User) error

	// UpdateCredentials replaces only the token pair of a user
	UpdateCredentials(ctx context.Context, id model.UserID, creds model.Credentials) error
}

// ShiftRunRepository stores the ledger of processed activities
type ShiftRunRepository interface {
	Put(ctx context.Context, run *model.ShiftRun) error

	// Get returns ErrNotFound when missing
	Get(ctx context.Context, id model.ShiftRunID) (*model.ShiftRun, error)

	// GetByActivityID returns nil without error when the activity was never planned
	GetByActivityID(ctx context.Context, activityID int64) (*model.ShiftRun, error)

	// ListByUser returns the newest runs of a user first, up to limit
	ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ShiftRun, error)

	// ListByStatus returns runs in status that were last updated before the given time
	ListByStatus(ctx context.Context, status types.RunStatus, updatedBefore time.Time, limit int) ([]*model.ShiftRun, error)
}
