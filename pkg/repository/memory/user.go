package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[model.UserID]*model.User
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[model.UserID]*model.User),
	}
}

func copyUser(user *model.User) *model.User {
	copied := *user
	return &copied
}

func (r *userRepository) GetByAthleteID(ctx context.Context, athleteID int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.AthleteID == athleteID {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return copyUser(user), nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) UpdateCredentials(ctx context.Context, id model.UserID, creds model.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	user.Credentials = creds
	user.UpdatedAt = time.Now().UTC()
	return nil
}
