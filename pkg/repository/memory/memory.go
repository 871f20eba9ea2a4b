package memory

import (
	"github.com/secmon-lab/timeshift/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps everything in process. Used for tests and local runs.
type Memory struct {
	user     *userRepository
	shiftRun *shiftRunRepository
}

var _ interfaces.Repository = &Memory{}

var ErrNotFound = interfaces.ErrNotFound

func New() *Memory {
	return &Memory{
		user:     newUserRepository(),
		shiftRun: newShiftRunRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) ShiftRun() interfaces.ShiftRunRepository {
	return m.shiftRun
}

func (m *Memory) Close() error {
	return nil
}
